package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/provenly/vouch/internal/model"
)

// DuckDuckGo scrapes the no-JS HTML endpoint. Result links are
// redirect wrappers; the real target sits in the uddg query parameter.
type DuckDuckGo struct {
	client   *http.Client
	robots   *RobotsGate
	pacing   DelayInterval
	maxBytes int64
}

// NewDuckDuckGo creates a DuckDuckGo provider
func NewDuckDuckGo(pc model.ProviderConfig, httpCfg model.HTTPConfig, robots *RobotsGate) *DuckDuckGo {
	return &DuckDuckGo{
		client:   newScrapeClient(httpCfg),
		robots:   robots,
		pacing:   DelayInterval{Min: pc.MinDelay, Max: pc.MaxDelay},
		maxBytes: httpCfg.MaxBodyBytes,
	}
}

// Name implements Provider
func (d *DuckDuckGo) Name() string { return "duckduckgo" }

// Pacing implements Provider
func (d *DuckDuckGo) Pacing() DelayInterval { return d.pacing }

// Search implements Provider
func (d *DuckDuckGo) Search(ctx context.Context, query string, maxResults int) ([]model.RawHit, error) {
	searchURL := "https://html.duckduckgo.com/html/?q=" + url.QueryEscape(query)

	if d.robots != nil && !d.robots.Allowed(ctx, searchURL) {
		return nil, &ProviderError{Provider: d.Name(), Err: errors.New("blocked by robots.txt")}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, &ProviderError{Provider: d.Name(), Err: err}
	}
	req.Header.Set("User-Agent", pickUserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, &ProviderError{Provider: d.Name(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ProviderError{Provider: d.Name(), StatusCode: resp.StatusCode}
	}

	root, err := html.Parse(io.LimitReader(resp.Body, d.maxBytes))
	if err != nil {
		return nil, &ProviderError{Provider: d.Name(), Err: fmt.Errorf("parse response: %w", err)}
	}
	return parseDuckDuckGoResults(root, maxResults), nil
}

// parseDuckDuckGoResults extracts hits from div.result blocks
// (a.result__a title/link, .result__snippet text).
func parseDuckDuckGoResults(root *html.Node, maxResults int) []model.RawHit {
	var hits []model.RawHit

	for _, div := range findAll(root, func(n *html.Node) bool {
		return n.Data == "div" && hasClass(n, "result")
	}) {
		a := findFirst(div, func(n *html.Node) bool {
			return n.Data == "a" && hasClass(n, "result__a")
		})
		if a == nil {
			continue
		}

		link := unwrapRedirect(attrVal(a, "href"))
		title := nodeText(a)
		if title == "" || !strings.HasPrefix(link, "http") {
			continue
		}

		snippet := ""
		if s := findFirst(div, func(n *html.Node) bool { return hasClass(n, "result__snippet") }); s != nil {
			snippet = nodeText(s)
		}

		hits = append(hits, model.RawHit{Title: title, URL: link, Snippet: snippet})
		if len(hits) >= maxResults {
			break
		}
	}
	return hits
}

// unwrapRedirect resolves DuckDuckGo's /l/?uddg= redirect links to the
// target URL. Non-redirect links pass through untouched.
func unwrapRedirect(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := parsed.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}
