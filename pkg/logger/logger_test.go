package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		" WARN ":  zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), "nivel %q", in)
	}
}

func TestNopNoFalla(t *testing.T) {
	l := Nop().Component("tips")
	l.Info().Str("k", "v").Msg("descartado")
	assert.Equal(t, zerolog.Disabled, l.Zerolog().GetLevel())
}
