// internal/workers/survey/submit-survey/config.go
package submitsurvey

import (
	"time"

	"rural-assist/internal/common/config"
)

type Config struct {
	NotifyNegative bool
	SNSTopicARN    string
	SESFrom        string
	SESTo          []string
	Timeout        time.Duration
}

func LoadConfig() *Config {
	return &Config{
		NotifyNegative: false,
		Timeout:        10 * time.Second,
	}
}

func ConfigFromApp(app *config.Config) *Config {
	c := LoadConfig()
	if app == nil {
		return c
	}
	c.NotifyNegative = app.Survey.NotifyNegative
	c.SNSTopicARN = app.Survey.SNSTopicARN
	c.SESFrom = app.Survey.SESFrom
	c.SESTo = splitRecipients(app.Survey.SESTo)
	if wc, ok := app.Workers[TaskType]; ok && wc.Timeout > 0 {
		c.Timeout = config.GetDuration(wc.Timeout)
	}
	return c
}
