package fulcrum

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/fulcrumhq/fulcrum/log"
	"github.com/stretchr/testify/assert"
)

// TestInitLogger tests the initLogger function
func TestInitLogger(t *testing.T) {
	originalLogger := logger
	var buf bytes.Buffer
	defer func() {
		logger = originalLogger
		log.SetOutput(os.Stdout)
	}()

	testCases := []struct {
		debug    bool
		expected log.Level
	}{
		{false, log.InfoLevel},
		{true, log.DebugLevel},
	}

	for _, tc := range testCases {
		initLogger(Config{Debug: tc.debug})
		assert.Equal(t, tc.expected, logger.GetLevel())

		log.SetOutput(&buf)

		log.Debug().Msg("Debug message")
		log.Info().Msg("Info message")
		log.Warn().Msg("Warn message")
		log.Error().Msg("Error message")

		output := buf.String()
		buf.Reset()

		hasDebug := strings.Contains(output, "Debug message")
		hasInfo := strings.Contains(output, "Info message")
		hasWarn := strings.Contains(output, "Warn message")
		hasError := strings.Contains(output, "Error message")

		if tc.expected == log.DebugLevel {
			assert.True(t, hasDebug && hasInfo && hasWarn && hasError)
		} else {
			assert.False(t, hasDebug)
			assert.True(t, hasInfo && hasWarn && hasError)
		}
	}
}

// TestDisplayStartupMessage tests the displayStartupMessage function
func TestDisplayStartupMessage(t *testing.T) {
	originalLogger := logger
	defer func() { logger = originalLogger }()

	var buf bytes.Buffer
	logger = log.New(&buf, log.InfoLevel)

	displayStartupMessage(":8080")

	output := buf.String()
	assert.Contains(t, output, "_   _            _           _")
	assert.Contains(t, output, "Server is running on :8080")
	assert.Contains(t, output, "Press Ctrl+C to stop the server")
}

// TestLoggerIntegration tests the integration of the logger with the rest of the system
func TestLoggerIntegration(t *testing.T) {
	originalStdout := os.Stdout
	defer func() { os.Stdout = originalStdout }()

	r, w, err := os.Pipe()
	assert.NoError(t, err)
	os.Stdout = w

	initLogger(Config{Debug: true})

	logger.Debug().Msg("This is a debug message")
	logger.Info().Msg("This is an info message")
	logger.Warn().Msg("This is a warning message")
	logger.Error().Msg("This is an error message")

	w.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	assert.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "This is a debug message")
	assert.Contains(t, output, "This is an info message")
	assert.Contains(t, output, "This is a warning message")
	assert.Contains(t, output, "This is an error message")
}
