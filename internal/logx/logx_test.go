package logx

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLogsAtOrAboveLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New("zurigen.test", &buf, "warning")

	log.Debug("should not appear")
	log.Warning("should appear")

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Errorf("debug message leaked through warning level: %q", out)
	}
	if !strings.Contains(out, "should appear") {
		t.Errorf("warning message missing from output: %q", out)
	}
}

func TestNewFallsBackToInfoOnBadLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New("zurigen.test2", &buf, "not-a-level")

	log.Info("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("expected info message to be logged at default level, got %q", buf.String())
	}
}
