// Package report renders finished scan results as human-readable text
// or Markdown. Section order always follows the probe registry order
// captured in the report slots.
package report
