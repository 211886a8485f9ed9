package collect

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provenly/vouch/internal/logger"
	"github.com/provenly/vouch/internal/model"
	"github.com/provenly/vouch/internal/score"
	"github.com/provenly/vouch/internal/search"
)

// fakeSearcher scripts the chain: every query gets the same response.
type fakeSearcher struct {
	hits    []model.RawHit
	reached bool
	calls   int
}

func (f *fakeSearcher) Search(_ context.Context, _ string, _ int) ([]model.RawHit, bool) {
	f.calls++
	return f.hits, f.reached
}

func newTestCollector(chain Searcher) *Collector {
	cfg := model.DefaultConfig().Scoring
	return NewCollector(chain, score.NewScorer(&cfg), &cfg, 8, logger.Discard())
}

func TestCollectMalformedClaimYieldsZeroConfidence(t *testing.T) {
	chain := &fakeSearcher{}
	c := newTestCollector(chain)
	person := model.PersonClaim{Name: "Jane Doe"}

	ev := c.Collect(context.Background(), person, model.ClaimItem{Kind: model.ClaimEducation})

	assert.Zero(t, ev.Confidence)
	assert.False(t, ev.Verified)
	assert.True(t, ev.CleanRecord)
	assert.NotEmpty(t, ev.Err)
	assert.Empty(t, ev.Evidence)
	assert.Zero(t, chain.calls, "malformed claims must not spend queries")
}

func TestCollectEducationSaturates(t *testing.T) {
	chain := &fakeSearcher{
		reached: true,
		hits: []model.RawHit{
			{Title: "Jane Doe - Stanford graduate", URL: "https://a.example.com", Source: "bing"},
			{Title: "Jane Doe Stanford alumni page", URL: "https://b.example.com", Source: "bing"},
			{Title: "Stanford degree for Jane Doe", URL: "https://c.example.com", Source: "bing"},
		},
	}
	c := newTestCollector(chain)
	person := model.PersonClaim{Name: "Jane Doe"}
	claim := model.ClaimItem{Kind: model.ClaimEducation, School: "Stanford"}

	ev := c.Collect(context.Background(), person, claim)

	// 4 templates, same 3 URLs each time; dedupe leaves 3 pieces of
	// evidence and min(3/2, 1) saturates at 1.0.
	assert.Equal(t, 4, chain.calls)
	assert.Len(t, ev.Evidence, 3)
	assert.Equal(t, 1.0, ev.Confidence)
	assert.True(t, ev.Verified)
	assert.Equal(t, 4, ev.SourcesChecked)
	assert.Len(t, ev.Sources, 3)
}

func TestCollectNoProvidersReachable(t *testing.T) {
	chain := &fakeSearcher{reached: false}
	c := newTestCollector(chain)
	person := model.PersonClaim{Name: "Jane Doe"}
	claim := model.ClaimItem{Kind: model.ClaimEmployment, Company: "Acme Corporation", Role: "Engineer"}

	ev := c.Collect(context.Background(), person, claim)

	assert.Zero(t, ev.Confidence)
	assert.False(t, ev.Verified)
	assert.Empty(t, ev.Evidence)
	assert.Empty(t, ev.Sources)
	assert.Zero(t, ev.SourcesChecked)
}

func TestCollectBackgroundCoverageWithoutFindings(t *testing.T) {
	// Providers answer every query, but nothing adverse comes back.
	chain := &fakeSearcher{reached: true}
	c := newTestCollector(chain)
	person := model.PersonClaim{Name: "John Smith", Region: "Germany"}
	claim := model.ClaimItem{Kind: model.ClaimBackground, Category: model.BackgroundCourt}

	ev := c.Collect(context.Background(), person, claim)

	// Court has 3 query templates; coverage is min(3/5, 1) = 0.6.
	assert.Equal(t, 3, ev.SourcesChecked)
	assert.InDelta(t, 0.6, ev.Confidence, 1e-9)
	assert.True(t, ev.Verified)
	assert.True(t, ev.CleanRecord)
	assert.Empty(t, ev.Evidence)
}

// quietProvider answers every query without finding anything
type quietProvider struct {
	name  string
	calls int
}

func (p *quietProvider) Name() string                 { return p.name }
func (p *quietProvider) Pacing() search.DelayInterval { return search.DelayInterval{} }

func (p *quietProvider) Search(_ context.Context, _ string, _ int) ([]model.RawHit, error) {
	p.calls++
	return nil, nil
}

func TestCollectBackgroundCoverageThroughChain(t *testing.T) {
	// Same clean-record shape as above, but driven through the real
	// provider chain: zero-hit answers must still count as registry
	// coverage.
	p := &quietProvider{name: "bing"}
	chain := search.NewChain([]search.Provider{p}, search.NewLimiter(1000, 10), nil, logger.Discard())
	c := newTestCollector(chain)
	person := model.PersonClaim{Name: "John Smith", Region: "Germany"}
	claim := model.ClaimItem{Kind: model.ClaimBackground, Category: model.BackgroundCourt}

	ev := c.Collect(context.Background(), person, claim)

	assert.Equal(t, 3, p.calls)
	assert.Equal(t, 3, ev.SourcesChecked)
	assert.InDelta(t, 0.6, ev.Confidence, 1e-9)
	assert.True(t, ev.Verified)
	assert.True(t, ev.CleanRecord)
	assert.Empty(t, ev.Evidence)
}

func TestCollectBackgroundAdverseFindingFlipsCleanRecord(t *testing.T) {
	chain := &fakeSearcher{
		reached: true,
		hits: []model.RawHit{
			{Title: "John Smith convicted, court records show", URL: "https://court.example.com/js", Source: "bing"},
		},
	}
	c := newTestCollector(chain)
	person := model.PersonClaim{Name: "John Smith"}
	claim := model.ClaimItem{Kind: model.ClaimBackground, Category: model.BackgroundCourt}

	ev := c.Collect(context.Background(), person, claim)

	require.Len(t, ev.Evidence, 1)
	assert.False(t, ev.CleanRecord)
}

func TestCollectDedupeKeepsBestScoredPerURL(t *testing.T) {
	// Same URL twice with different scores plus one distinct URL. After
	// the stable score sort, first-wins dedupe keeps the stronger entry.
	chain := &fakeSearcher{
		reached: true,
		hits: []model.RawHit{
			{Title: "John at Acme", URL: "https://dup.example.com", Source: "bing"},
			{Title: "John Smith, Engineer at Acme Corporation", URL: "https://dup.example.com", Source: "bing"},
			{Title: "John Smith joins Acme", URL: "https://other.example.com", Source: "bing"},
		},
	}
	c := newTestCollector(chain)
	person := model.PersonClaim{Name: "John Smith"}
	claim := model.ClaimItem{Kind: model.ClaimEmployment, Company: "Acme Corporation", Role: "Engineer"}

	ev := c.Collect(context.Background(), person, claim)

	require.Len(t, ev.Evidence, 2)
	assert.Equal(t, "https://dup.example.com", ev.Evidence[0].URL)
	assert.Equal(t, 1.0, ev.Evidence[0].Score)
	for i := 1; i < len(ev.Evidence); i++ {
		assert.LessOrEqual(t, ev.Evidence[i].Score, ev.Evidence[i-1].Score)
	}
}

func TestCollectStopsOnCancelledContext(t *testing.T) {
	chain := &fakeSearcher{reached: true}
	c := newTestCollector(chain)
	person := model.PersonClaim{Name: "Jane Doe"}
	claim := model.ClaimItem{Kind: model.ClaimEducation, School: "Stanford"}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ev := c.Collect(ctx, person, claim)

	assert.Zero(t, chain.calls)
	assert.Zero(t, ev.SourcesChecked)
	assert.Zero(t, ev.Confidence)
}
