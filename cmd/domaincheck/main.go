// Package main provides the entry point for the domaincheck CLI.
//
// Domaincheck inspects a registered internet domain: registration data,
// DNS records, website reachability, spam blacklist presence, and the
// publishing platform behind the site.
//
// Usage:
//
//	domaincheck --domain example.com
//	domaincheck --domain example.com --markdown -o report.md
//
// See --help for all available options.
package main

// main is the entry point for domaincheck.
func main() {
	Execute()
}
