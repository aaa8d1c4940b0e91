// internal/workers/chat/generate-response/config.go
package generateresponse

import (
	"time"

	"rural-assist/internal/common/config"
)

type Config struct {
	// RandomSeed seeds template choice. Zero seeds from the clock.
	RandomSeed int64
	Timeout    time.Duration
}

func LoadConfig() *Config {
	return &Config{Timeout: 5 * time.Second}
}

func ConfigFromApp(app *config.Config) *Config {
	c := LoadConfig()
	if app == nil {
		return c
	}
	c.RandomSeed = app.Responses.RandomSeed
	if wc, ok := app.Workers[TaskType]; ok && wc.Timeout > 0 {
		c.Timeout = config.GetDuration(wc.Timeout)
	}
	return c
}
