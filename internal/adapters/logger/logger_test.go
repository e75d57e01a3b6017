package logger_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"go.trai.ch/nativ/internal/adapters/logger"
)

func TestLogger_Info(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.New()
	lg.SetOutput(&buf)

	lg.Info("linking libfoo.so")

	output := buf.String()
	if !strings.Contains(output, "linking libfoo.so") {
		t.Errorf("Expected output to contain 'linking libfoo.so', got: %s", output)
	}
	if !strings.Contains(output, "INFO") {
		t.Errorf("Expected output to contain 'INFO', got: %s", output)
	}
}

func TestLogger_Warn(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.New()
	lg.SetOutput(&buf)

	lg.Warn("platform not registered")

	output := buf.String()
	if !strings.Contains(output, "platform not registered") {
		t.Errorf("Expected output to contain 'platform not registered', got: %s", output)
	}
	if !strings.Contains(output, "WARN") {
		t.Errorf("Expected output to contain 'WARN', got: %s", output)
	}
}

func TestLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.New()
	lg.SetOutput(&buf)

	lg.Error(os.ErrPermission)

	output := buf.String()
	if !strings.Contains(output, "permission denied") {
		t.Errorf("Expected output to contain 'permission denied', got: %s", output)
	}
	if !strings.Contains(output, "ERROR") {
		t.Errorf("Expected output to contain 'ERROR', got: %s", output)
	}
}
