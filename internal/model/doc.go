// Package model defines the core data types shared across domaincheck:
// validated domain names, probe outcomes, report slots, and the platform
// signature table used for CMS fingerprinting.
//
// Types in this package are plain values with no I/O. All network access
// lives in the probe package; all synchronization lives in the pipeline
// package.
package model
