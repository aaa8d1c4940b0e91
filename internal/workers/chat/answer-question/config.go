// internal/workers/chat/answer-question/config.go
package answerquestion

import (
	"time"

	"rural-assist/internal/common/config"
)

type Config struct {
	MaxQuestionLength int
	SessionTTL        time.Duration
	Timeout           time.Duration
}

func LoadConfig() *Config {
	return &Config{
		MaxQuestionLength: 1000,
		SessionTTL:        30 * time.Minute,
		Timeout:           30 * time.Second,
	}
}

func ConfigFromApp(app *config.Config) *Config {
	c := LoadConfig()
	if app == nil {
		return c
	}
	if app.Session.TTL > 0 {
		c.SessionTTL = config.GetDuration(app.Session.TTL)
	}
	if wc, ok := app.Workers[TaskType]; ok && wc.Timeout > 0 {
		c.Timeout = config.GetDuration(wc.Timeout)
	}
	return c
}
