// internal/workers/chat/analyze-sentiment/config.go
package analyzesentiment

import (
	"time"

	"rural-assist/internal/common/config"
)

type Config struct {
	IntensifierWeight float64
	NeutralFloor      float64
	NegationWindow    int
	IntensifierWindow int
	BatchConcurrency  int
	Timeout           time.Duration
}

func LoadConfig() *Config {
	return &Config{
		IntensifierWeight: 1.5,
		NeutralFloor:      0.1,
		NegationWindow:    3,
		IntensifierWindow: 2,
		BatchConcurrency:  8,
		Timeout:           5 * time.Second,
	}
}

func ConfigFromApp(app *config.Config) *Config {
	c := LoadConfig()
	if app == nil {
		return c
	}
	sc := app.Sentiment
	if sc.IntensifierWeight > 0 {
		c.IntensifierWeight = sc.IntensifierWeight
	}
	if sc.NeutralFloor > 0 {
		c.NeutralFloor = sc.NeutralFloor
	}
	if sc.NegationWindow > 0 {
		c.NegationWindow = sc.NegationWindow
	}
	if sc.IntensifierWindow > 0 {
		c.IntensifierWindow = sc.IntensifierWindow
	}
	if sc.BatchConcurrency > 0 {
		c.BatchConcurrency = sc.BatchConcurrency
	}
	if wc, ok := app.Workers[TaskType]; ok && wc.Timeout > 0 {
		c.Timeout = config.GetDuration(wc.Timeout)
	}
	return c
}
