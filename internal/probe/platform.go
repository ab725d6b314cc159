package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/html"

	"github.com/domaincheck/domaincheck/internal/config"
	"github.com/domaincheck/domaincheck/internal/model"
)

// PlatformProbe fetches the domain's homepage and matches it against
// the ordered signature table to identify the publishing platform.
type PlatformProbe struct {
	client     *http.Client
	userAgent  string
	signatures []model.Signature
	maxBody    int64
}

// PlatformOption configures a PlatformProbe.
type PlatformOption func(*PlatformProbe)

// WithPlatformClient injects a custom HTTP client. Used by tests.
func WithPlatformClient(c *http.Client) PlatformOption {
	return func(p *PlatformProbe) {
		p.client = c
	}
}

// WithPlatformSignatures replaces the built-in signature table.
func WithPlatformSignatures(sigs []model.Signature) PlatformOption {
	return func(p *PlatformProbe) {
		p.signatures = sigs
	}
}

// NewPlatformProbe creates a platform-fingerprint probe with the
// built-in signature table.
func NewPlatformProbe(opts ...PlatformOption) *PlatformProbe {
	p := &PlatformProbe{
		client: &http.Client{
			Timeout: config.DefaultProbeTimeout,
		},
		userAgent:  config.DefaultUserAgent,
		signatures: model.DefaultSignatures(),
		maxBody:    config.DefaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the stable probe identity.
func (p *PlatformProbe) Name() string { return "platform" }

// Title returns the report section header.
func (p *PlatformProbe) Title() string { return "Platform Detection" }

// Run fetches the homepage, preferring HTTPS, and classifies the raw
// markup. An unreachable site is a Failure; a reachable site with no
// matching signature is Empty, including the page title when one could
// be parsed.
func (p *PlatformProbe) Run(ctx context.Context, domain model.Domain) model.Outcome {
	content, source, err := p.fetchHomepage(ctx, domain)
	if err != nil {
		return model.Failure(err.Error())
	}

	title := pageTitle(content)

	if platform, ok := model.Classify(content, p.signatures); ok {
		lines := []model.Line{
			{Label: "Platform", Value: platform},
			{Label: "Source", Value: source},
		}
		if title != "" {
			lines = append(lines, model.Line{Label: "Page Title", Value: title})
		}
		return model.Success(lines...)
	}

	reason := "no known platform signature matched"
	if title != "" {
		reason += " (page title: " + title + ")"
	}
	return model.Empty(reason)
}

// fetchHomepage retrieves the homepage markup, trying HTTPS first and
// falling back to plain HTTP. The returned source names the scheme that
// answered.
func (p *PlatformProbe) fetchHomepage(ctx context.Context, domain model.Domain) (string, string, error) {
	var firstErr error

	for _, scheme := range []string{"https", "http"} {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, scheme+"://"+domain.String()+"/", nil)
		if err != nil {
			return "", "", err
		}
		req.Header.Set("User-Agent", p.userAgent)

		resp, err := p.client.Do(req)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, p.maxBody))
		resp.Body.Close()
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		return string(body), strings.ToUpper(scheme), nil
	}

	return "", "", fmt.Errorf("homepage not reachable: %w", firstErr)
}

// pageTitle extracts the first <title> text from the markup, tolerating
// broken HTML. Returns the empty string when no title exists.
func pageTitle(content string) string {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return ""
	}

	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				title = strings.TrimSpace(n.FirstChild.Data)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return title
}
