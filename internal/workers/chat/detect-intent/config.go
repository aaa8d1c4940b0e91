// internal/workers/chat/detect-intent/config.go
package detectintent

import (
	"time"

	"rural-assist/internal/common/config"
)

type Config struct {
	KeywordWeight       float64
	PatternWeight       float64
	FallbackConfidence  float64
	ValidationThreshold float64
	Timeout             time.Duration
}

func LoadConfig() *Config {
	return &Config{
		KeywordWeight:       0.6,
		PatternWeight:       0.4,
		FallbackConfidence:  0.1,
		ValidationThreshold: 0.5,
		Timeout:             5 * time.Second,
	}
}

// ConfigFromApp overlays the classifier calibration from the application config.
func ConfigFromApp(app *config.Config) *Config {
	c := LoadConfig()
	if app == nil {
		return c
	}
	cc := app.Classifier
	if cc.KeywordWeight > 0 || cc.PatternWeight > 0 {
		c.KeywordWeight = cc.KeywordWeight
		c.PatternWeight = cc.PatternWeight
	}
	if cc.FallbackConfidence > 0 {
		c.FallbackConfidence = cc.FallbackConfidence
	}
	if cc.ValidationThreshold > 0 {
		c.ValidationThreshold = cc.ValidationThreshold
	}
	if wc, ok := app.Workers[TaskType]; ok && wc.Timeout > 0 {
		c.Timeout = config.GetDuration(wc.Timeout)
	}
	return c
}
