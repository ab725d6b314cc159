package model

import "strings"

// Signature is one (marker, platform) pair for content fingerprinting.
// Markers are matched case-insensitively as plain substrings.
type Signature struct {
	// Marker is the substring searched for in the page content.
	Marker string

	// Platform is the label reported when the marker matches.
	Platform string
}

// DefaultSignatures returns the ordered platform signature table.
//
// Order matters and encodes precedence: signatures are evaluated top to
// bottom and the first match wins. Specific brand markers come before
// generic path fragments because the generic ones ("/modules/",
// "/components/") also appear on sites built with other platforms.
// Reordering this table changes classification results.
func DefaultSignatures() []Signature {
	return []Signature{
		// WordPress: asset paths present on effectively every install.
		{Marker: "wp-content", Platform: "WordPress"},
		{Marker: "wp-includes", Platform: "WordPress"},
		{Marker: "/wp-json", Platform: "WordPress"},

		// Joomla: generator meta tag or media path.
		{Marker: "joomla", Platform: "Joomla"},
		{Marker: "/media/jui/", Platform: "Joomla"},

		// Drupal: generator meta tag or default site path.
		{Marker: "drupal", Platform: "Drupal"},
		{Marker: "/sites/default/files", Platform: "Drupal"},

		// Commerce platforms.
		{Marker: "magento", Platform: "Magento"},
		{Marker: "/skin/frontend/", Platform: "Magento"},
		{Marker: "prestashop", Platform: "PrestaShop"},
		{Marker: "cdn.shopify.com", Platform: "Shopify"},

		// Hosted site builders.
		{Marker: "wix.com", Platform: "Wix"},
		{Marker: "squarespace.com", Platform: "Squarespace"},

		// Generic path fragments. Weak signals: these directories exist on
		// stock Drupal and Joomla trees but also on unrelated sites, so
		// they must stay below every brand-specific marker above.
		{Marker: "/modules/", Platform: "Drupal"},
		{Marker: "/components/", Platform: "Joomla"},
	}
}

// Classify matches content against the signature table in order and
// returns the platform of the first matching signature.
// Returns ("", false) when no signature matches; unrecognized content is
// a valid outcome, not an error.
func Classify(content string, signatures []Signature) (string, bool) {
	lowered := strings.ToLower(content)
	for _, sig := range signatures {
		if strings.Contains(lowered, strings.ToLower(sig.Marker)) {
			return sig.Platform, true
		}
	}
	return "", false
}
