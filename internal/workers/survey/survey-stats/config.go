// internal/workers/survey/survey-stats/config.go
package surveystats

import (
	"time"

	"rural-assist/internal/common/config"
)

type Config struct {
	RecentLimit int
	Timeout     time.Duration
}

func LoadConfig() *Config {
	return &Config{
		RecentLimit: 10,
		Timeout:     30 * time.Second,
	}
}

func ConfigFromApp(app *config.Config) *Config {
	c := LoadConfig()
	if app == nil {
		return c
	}
	if app.Survey.RecentLimit > 0 {
		c.RecentLimit = app.Survey.RecentLimit
	}
	if wc, ok := app.Workers[TaskType]; ok && wc.Timeout > 0 {
		c.Timeout = config.GetDuration(wc.Timeout)
	}
	return c
}
