package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

// ==========================
// Constructors
// ==========================

func TestNewStructured_Level(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{level: "debug", want: zapcore.DebugLevel},
		{level: "info", want: zapcore.InfoLevel},
		{level: "warn", want: zapcore.WarnLevel},
		{level: "error", want: zapcore.ErrorLevel},
		{level: "bogus", want: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l := NewStructured(tt.level, "json")
			z := Zap(l)
			assert.True(t, z.Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				assert.False(t, z.Core().Enabled(tt.want-1))
			}
		})
	}
}

func TestNewStructured_Chaining(t *testing.T) {
	l := NewStructured("debug", "console")
	child := l.WithFields(map[string]interface{}{"component": "test"}).WithError(errors.New("boom"))
	assert.NotPanics(t, func() {
		child.Info("hello", map[string]interface{}{"k": "v"})
	})
	assert.NotNil(t, Zap(child))
}

func TestZap_ForeignLogger(t *testing.T) {
	assert.NotNil(t, Zap(nil))
}
