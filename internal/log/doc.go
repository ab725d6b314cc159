// Package log provides structured logging with automatic redaction of
// personal contact data.
//
// WHOIS responses routinely carry registrant emails and phone numbers.
// Probes log response fragments at debug level while troubleshooting, so
// the handler in this package masks anything that looks like contact data
// before it reaches the underlying slog handler. Use NewLogger to get a
// *slog.Logger wired with the redacting handler.
package log
