// internal/workers/chat/resolve-data/config.go
package resolvedata

import (
	"time"

	"rural-assist/internal/common/config"
)

type Config struct {
	CacheEnabled bool
	CacheTTL     time.Duration
	Timeout      time.Duration
}

func LoadConfig() *Config {
	return &Config{
		CacheEnabled: false,
		CacheTTL:     10 * time.Minute,
		Timeout:      30 * time.Second,
	}
}

func ConfigFromApp(app *config.Config) *Config {
	c := LoadConfig()
	if app == nil {
		return c
	}
	c.CacheEnabled = app.Cache.Enabled
	if app.Cache.TTL > 0 {
		c.CacheTTL = config.GetDuration(app.Cache.TTL)
	}
	if wc, ok := app.Workers[TaskType]; ok && wc.Timeout > 0 {
		c.Timeout = config.GetDuration(wc.Timeout)
	}
	return c
}
