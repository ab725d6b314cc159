package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// newBufferLogger returns a debug-level redacting logger writing to buf.
func newBufferLogger(buf *bytes.Buffer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	return slog.New(NewRedactHandler(slog.NewTextHandler(buf, opts)))
}

// TestRedactHandlerKeys tests masking by attribute key.
func TestRedactHandlerKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"registrant email key", "registrant_email", "admin@example.com"},
		{"phone key", "phone", "+1.5551234567"},
		{"abuse contact key", "abuse_email", "abuse@registrar.example"},
		{"keyword inside key", "whois_contact_line", "John Doe"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := newBufferLogger(&buf)

			logger.Info("probe output", tt.key, tt.value)

			out := buf.String()
			if strings.Contains(out, tt.value) {
				t.Errorf("output leaked value %q: %s", tt.value, out)
			}
			if !strings.Contains(out, MaskValue) {
				t.Errorf("output missing mask: %s", out)
			}
		})
	}
}

// TestRedactHandlerValues tests masking by value pattern.
func TestRedactHandlerValues(t *testing.T) {
	t.Parallel()

	t.Run("email-shaped value is masked under any key", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := newBufferLogger(&buf)

		logger.Debug("field", "line", "hostmaster@example.net")

		if strings.Contains(buf.String(), "hostmaster@example.net") {
			t.Errorf("output leaked email: %s", buf.String())
		}
	})

	t.Run("phone-shaped value is masked under any key", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := newBufferLogger(&buf)

		logger.Debug("field", "line", "+44 20 7946 0958")

		if strings.Contains(buf.String(), "7946") {
			t.Errorf("output leaked phone: %s", buf.String())
		}
	})

	t.Run("ordinary values pass through", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := newBufferLogger(&buf)

		logger.Info("probe completed", "probe", "dns", "domain", "example.com")

		out := buf.String()
		if !strings.Contains(out, "example.com") || !strings.Contains(out, "dns") {
			t.Errorf("ordinary attributes were masked: %s", out)
		}
	})
}

// TestRedactHandlerGroups tests recursion into attribute groups.
func TestRedactHandlerGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newBufferLogger(&buf)

	logger.Info("whois fields",
		slog.Group("registrant",
			slog.String("email", "owner@example.com"),
			slog.String("country", "JP"),
		),
	)

	out := buf.String()
	if strings.Contains(out, "owner@example.com") {
		t.Errorf("group leaked email: %s", out)
	}
	if !strings.Contains(out, "JP") {
		t.Errorf("non-sensitive group attribute was masked: %s", out)
	}
}

// TestNewLoggerLevels tests the verbose switch.
func TestNewLoggerLevels(t *testing.T) {
	t.Parallel()

	t.Run("default level suppresses debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, false)

		logger.Debug("hidden")
		logger.Warn("visible")

		out := buf.String()
		if strings.Contains(out, "hidden") {
			t.Errorf("debug output not suppressed: %s", out)
		}
		if !strings.Contains(out, "visible") {
			t.Errorf("warn output missing: %s", out)
		}
	})

	t.Run("verbose enables debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, true)

		logger.Debug("shown")

		if !strings.Contains(buf.String(), "shown") {
			t.Errorf("debug output missing: %s", buf.String())
		}
	})
}
