// internal/workers/knowledge/search-faq/config.go
package searchfaq

import (
	"time"

	"rural-assist/internal/common/config"
)

type Config struct {
	Index   string
	MinHits int
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Index:   "faq",
		MinHits: 1,
		Timeout: 3 * time.Second,
	}
}

func ConfigFromApp(app *config.Config) *Config {
	c := LoadConfig()
	if app == nil {
		return c
	}
	if app.Knowledge.Index != "" {
		c.Index = app.Knowledge.Index
	}
	if app.Knowledge.MinHits > 0 {
		c.MinHits = app.Knowledge.MinHits
	}
	if app.Knowledge.Timeout > 0 {
		c.Timeout = config.GetDuration(app.Knowledge.Timeout)
	}
	return c
}
