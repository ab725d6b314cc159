package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// sensitiveKeys contains attribute keys that are always masked.
// These keys commonly carry registrant contact data extracted from
// WHOIS responses.
var sensitiveKeys = map[string]bool{
	"email":            true,
	"e-mail":           true,
	"registrant":       true,
	"registrant_email": true,
	"registrant_phone": true,
	"admin_email":      true,
	"tech_email":       true,
	"abuse_email":      true,
	"phone":            true,
	"telephone":        true,
	"fax":              true,
}

// sensitivePatterns contains regex patterns that indicate contact data.
// Values matching these patterns are masked regardless of key name.
var sensitivePatterns = []*regexp.Regexp{
	// Email addresses
	regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`),

	// International phone numbers ("+1.5551234567", "+44 20 7946 0958")
	regexp.MustCompile(`^\+\d[\d .-]{6,}$`),
}

// MaskValue is the string used to replace masked values.
const MaskValue = "***REDACTED***"

// RedactHandler wraps an slog.Handler to mask registrant contact data.
// It intercepts log records and masks attribute values whose key or value
// looks like contact information before passing them to the underlying
// handler.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Callers keep the full slog feature set (groups, levels, attrs)
type RedactHandler struct {
	// handler is the underlying slog handler that receives masked records.
	handler slog.Handler
}

// NewRedactHandler creates a new RedactHandler wrapping the given handler.
// If handler is nil, the returned RedactHandler uses slog.Default().Handler().
func NewRedactHandler(handler slog.Handler) *RedactHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &RedactHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *RedactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the record's attributes and passes it to the underlying handler.
func (h *RedactHandler) Handle(ctx context.Context, r slog.Record) error {
	masked := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(h.maskAttr(a))
		return true
	})

	return h.handler.Handle(ctx, masked)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are masked before being added.
func (h *RedactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	maskedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		maskedAttrs[i] = h.maskAttr(a)
	}
	return &RedactHandler{handler: h.handler.WithAttrs(maskedAttrs)}
}

// WithGroup returns a new handler with the given group name.
func (h *RedactHandler) WithGroup(name string) slog.Handler {
	return &RedactHandler{handler: h.handler.WithGroup(name)}
}

// maskAttr masks a single attribute, recursively handling groups.
func (h *RedactHandler) maskAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		maskedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			maskedAttrs[i] = h.maskAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(maskedAttrs...)}
	}

	keyLower := strings.ToLower(a.Key)
	if sensitiveKeys[keyLower] || containsSensitiveKeyword(keyLower) {
		return slog.String(a.Key, MaskValue)
	}

	if a.Value.Kind() == slog.KindString && isSensitiveValue(a.Value.String()) {
		return slog.String(a.Key, MaskValue)
	}

	return a
}

// containsSensitiveKeyword checks if the key contains contact-data keywords.
// The bare "name" keyword is intentionally excluded: it appears in harmless
// keys like "probe_name" and "hostname".
func containsSensitiveKeyword(key string) bool {
	sensitiveKeywords := []string{"email", "phone", "registrant", "contact"}

	for _, keyword := range sensitiveKeywords {
		if strings.Contains(key, keyword) {
			return true
		}
	}
	return false
}

// isSensitiveValue checks if a value matches contact-data patterns.
func isSensitiveValue(value string) bool {
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(value) {
			return true
		}
	}
	return false
}

// NewLogger creates a new slog.Logger with contact-data redaction.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	return slog.New(NewRedactHandler(textHandler))
}

// NewJSONLogger creates a redacting slog.Logger that outputs JSON.
// Useful for structured log aggregation.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	jsonHandler := slog.NewJSONHandler(w, opts)
	return slog.New(NewRedactHandler(jsonHandler))
}
