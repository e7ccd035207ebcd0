package tests

import (
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/MihneaE/slot-machine-microservices/pkg/logger"

	"github.com/stretchr/testify/assert"
)

// This test runs a subprocess that initializes the logger and then panics.
// It verifies that the buffered logs are flushed to the file even after a panic.
func TestLoggerFlushOnPanic(t *testing.T) {
	if os.Getenv("RUN_PANIC_TEST") == "1" {
		doLoggerWork()
		return
	}

	// Run the test binary itself with the environment variable set; the
	// subprocess is expected to exit non-zero due to the panic
	cmd := exec.Command(os.Args[0], "-test.run=TestLoggerFlushOnPanic")
	cmd.Env = append(os.Environ(), "RUN_PANIC_TEST=1")
	_ = cmd.Run()

	logContent, err := os.ReadFile("panic_test.log")
	if err != nil {
		// If file doesn't exist, flush failed completely
		t.Fatalf("Failed to read log file: %v", err)
	}

	content := string(logContent)
	assert.Contains(t, content, "This message should be flushed before panic", "Buffered log was not flushed on panic")

	// Cleanup
	os.Remove("panic_test.log")
}

func doLoggerWork() {
	logger.InitWithFile("panic_test.log", "info", "json", false)

	// Ensure Flush is called on panic via defer
	defer logger.Flush()

	// Write a buffered log
	logger.InfoGlobal().Msg("This message should be flushed before panic")

	// Make sure the auto-flush interval has not elapsed before the panic
	time.Sleep(10 * time.Millisecond)

	panic("Intentional panic for testing")
}
