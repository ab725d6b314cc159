// Package config defines configuration structures and default values
// for domaincheck.
package config
