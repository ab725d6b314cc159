package probe

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/domaincheck/domaincheck/internal/config"
	"github.com/domaincheck/domaincheck/internal/model"
)

// WebsiteProbe checks reachability of the domain's web presence over
// both plain HTTP and HTTPS. Each scheme reports its status code and
// round-trip time; the HTTPS attempt additionally reports certificate
// expiry. The probe only fails outright when neither scheme answers.
type WebsiteProbe struct {
	client    *http.Client
	userAgent string
}

// WebsiteOption configures a WebsiteProbe.
type WebsiteOption func(*WebsiteProbe)

// WithWebsiteClient injects a custom HTTP client. Used by tests.
func WithWebsiteClient(c *http.Client) WebsiteOption {
	return func(p *WebsiteProbe) {
		p.client = c
	}
}

// WithWebsiteUserAgent overrides the User-Agent header sent with
// every request.
func WithWebsiteUserAgent(ua string) WebsiteOption {
	return func(p *WebsiteProbe) {
		p.userAgent = ua
	}
}

// NewWebsiteProbe creates a reachability probe with sane transport
// defaults.
func NewWebsiteProbe(opts ...WebsiteOption) *WebsiteProbe {
	p := &WebsiteProbe{
		client: &http.Client{
			Timeout: config.DefaultProbeTimeout,
		},
		userAgent: config.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the stable probe identity.
func (p *WebsiteProbe) Name() string { return "website" }

// Title returns the report section header.
func (p *WebsiteProbe) Title() string { return "Website Reachability" }

// fetchResult holds the observations from a single scheme attempt.
type fetchResult struct {
	status     int
	rtt        time.Duration
	redirects  []string
	certEnd    time.Time
	htmlMarker bool
	err        error
}

// Run attempts http:// and https:// in that order. Results from both
// attempts are reported; a scheme that errors contributes a diagnostic
// line rather than failing the whole probe. Failure is reserved for the
// case where neither scheme produced a response.
func (p *WebsiteProbe) Run(ctx context.Context, domain model.Domain) model.Outcome {
	plain := p.fetch(ctx, "http://"+domain.String()+"/")
	secure := p.fetch(ctx, "https://"+domain.String()+"/")

	if plain.err != nil && secure.err != nil {
		return model.Failure(fmt.Sprintf("http: %v; https: %v", plain.err, secure.err))
	}

	var lines []model.Line
	lines = appendFetchLines(lines, "HTTP", plain)
	lines = appendFetchLines(lines, "HTTPS", secure)

	if secure.err == nil && !secure.certEnd.IsZero() {
		lines = append(lines, model.Line{
			Label: "Certificate Expires",
			Value: secure.certEnd.UTC().Format("2006-01-02"),
		})
	}

	// Content sanity from whichever scheme answered, preferring HTTPS.
	body := secure
	if body.err != nil {
		body = plain
	}
	if body.htmlMarker {
		lines = append(lines, model.Line{Label: "Content", Value: "HTML document detected"})
	} else {
		lines = append(lines, model.Line{Label: "Content", Value: "no HTML marker in response body"})
	}

	return model.Success(lines...)
}

// appendFetchLines renders one scheme's fetch result into report lines.
func appendFetchLines(lines []model.Line, scheme string, r fetchResult) []model.Line {
	if r.err != nil {
		return append(lines, model.Line{
			Label: scheme + " Status",
			Value: fmt.Sprintf("unreachable (%v)", r.err),
		})
	}

	lines = append(lines, model.Line{
		Label: scheme + " Status",
		Value: fmt.Sprintf("%d %s", r.status, http.StatusText(r.status)),
	})
	lines = append(lines, model.Line{
		Label: scheme + " Response Time",
		Value: r.rtt.Round(time.Millisecond).String(),
	})
	if len(r.redirects) > 0 {
		lines = append(lines, model.Line{
			Label: scheme + " Redirect",
			Value: strings.Join(r.redirects, " -> "),
		})
	}

	return lines
}

// fetch issues a single GET and records status, timing, redirect hops
// and the leaf certificate's expiry when TLS was negotiated. The client
// is shallow-copied so the redirect hook does not leak into concurrent
// probes sharing the injected client.
func (p *WebsiteProbe) fetch(ctx context.Context, rawURL string) fetchResult {
	var redirects []string

	client := *p.client
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= 10 {
			return http.ErrUseLastResponse
		}
		redirects = append(redirects, req.URL.String())
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fetchResult{err: err}
	}
	req.Header.Set("User-Agent", p.userAgent)

	start := time.Now()
	resp, err := client.Do(req)
	rtt := time.Since(start)
	if err != nil {
		return fetchResult{err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, config.DefaultMaxBodySize))

	result := fetchResult{
		status:     resp.StatusCode,
		rtt:        rtt,
		redirects:  redirects,
		htmlMarker: hasHTMLElement(body),
	}
	if resp.TLS != nil && len(resp.TLS.PeerCertificates) > 0 {
		result.certEnd = resp.TLS.PeerCertificates[0].NotAfter
	}

	return result
}

// hasHTMLElement tokenizes the body and reports whether it carries a
// literal <html> tag. The tokenizer is used instead of a substring scan
// so the marker is not fooled by the tag appearing inside text or
// comments.
func hasHTMLElement(body []byte) bool {
	z := html.NewTokenizer(bytes.NewReader(body))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.StartTagToken, html.SelfClosingTagToken:
			if name, _ := z.TagName(); string(name) == "html" {
				return true
			}
		}
	}
}
