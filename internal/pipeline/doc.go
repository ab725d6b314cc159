// Package pipeline runs the enabled probes concurrently against a
// single domain and collects their outcomes into ordered report slots.
package pipeline
