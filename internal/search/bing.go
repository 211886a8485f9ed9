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

// Bing scrapes bing.com result pages. Bing tolerates automated
// querying better than most engines, which is why it leads the default
// chain.
type Bing struct {
	client   *http.Client
	robots   *RobotsGate
	pacing   DelayInterval
	maxBytes int64
}

// NewBing creates a Bing provider
func NewBing(pc model.ProviderConfig, httpCfg model.HTTPConfig, robots *RobotsGate) *Bing {
	return &Bing{
		client:   newScrapeClient(httpCfg),
		robots:   robots,
		pacing:   DelayInterval{Min: pc.MinDelay, Max: pc.MaxDelay},
		maxBytes: httpCfg.MaxBodyBytes,
	}
}

// Name implements Provider
func (b *Bing) Name() string { return "bing" }

// Pacing implements Provider
func (b *Bing) Pacing() DelayInterval { return b.pacing }

// Search implements Provider
func (b *Bing) Search(ctx context.Context, query string, maxResults int) ([]model.RawHit, error) {
	searchURL := fmt.Sprintf("https://www.bing.com/search?q=%s&count=%d", url.QueryEscape(query), maxResults)

	if b.robots != nil && !b.robots.Allowed(ctx, searchURL) {
		return nil, &ProviderError{Provider: b.Name(), Err: errors.New("blocked by robots.txt")}
	}

	root, err := b.fetch(ctx, searchURL)
	if err != nil {
		return nil, err
	}
	return parseBingResults(root, maxResults), nil
}

func (b *Bing) fetch(ctx context.Context, rawURL string) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &ProviderError{Provider: b.Name(), Err: err}
	}
	req.Header.Set("User-Agent", pickUserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, &ProviderError{Provider: b.Name(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ProviderError{Provider: b.Name(), StatusCode: resp.StatusCode}
	}

	root, err := html.Parse(io.LimitReader(resp.Body, b.maxBytes))
	if err != nil {
		return nil, &ProviderError{Provider: b.Name(), Err: fmt.Errorf("parse response: %w", err)}
	}
	return root, nil
}

// parseBingResults extracts hits from the organic result list
// (li.b_algo: h2>a title/link, p caption).
func parseBingResults(root *html.Node, maxResults int) []model.RawHit {
	var hits []model.RawHit

	for _, li := range findAll(root, func(n *html.Node) bool {
		return n.Data == "li" && hasClass(n, "b_algo")
	}) {
		h2 := findFirst(li, func(n *html.Node) bool { return n.Data == "h2" })
		if h2 == nil {
			continue
		}
		a := findFirst(h2, func(n *html.Node) bool { return n.Data == "a" })
		if a == nil {
			continue
		}

		link := attrVal(a, "href")
		title := nodeText(a)
		if title == "" || !strings.HasPrefix(link, "http") {
			continue
		}

		snippet := ""
		if p := findFirst(li, func(n *html.Node) bool { return n.Data == "p" }); p != nil {
			snippet = nodeText(p)
		}

		hits = append(hits, model.RawHit{Title: title, URL: link, Snippet: snippet})
		if len(hits) >= maxResults {
			break
		}
	}
	return hits
}
