package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Iterio-app/Iterio-Platform-sub000/internal/artifactstore"
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/cache"
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/publication/domain"
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/quote/compiler"
	quotedomain "github.com/Iterio-app/Iterio-Platform-sub000/internal/quote/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap/zaptest"
)

// stepClock returns strictly increasing instants.
type stepClock struct {
	mu sync.Mutex
	at time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.at = c.at.Add(time.Millisecond)
	return c.at
}

type memoryPointers struct {
	mu       sync.Mutex
	pointers map[snowflake.ID]domain.Pointer
	Upserts  int
	FailUp   bool
}

func newMemoryPointers() *memoryPointers {
	return &memoryPointers{pointers: make(map[snowflake.ID]domain.Pointer)}
}

func (r *memoryPointers) Get(_ context.Context, quoteID snowflake.ID) (*domain.Pointer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pointer, ok := r.pointers[quoteID]
	if !ok {
		return nil, nil
	}
	cp := pointer
	return &cp, nil
}

func (r *memoryPointers) Upsert(_ context.Context, pointer domain.Pointer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Upserts++
	if r.FailUp {
		return domain.ErrPointerUpdate
	}
	pointer.UpdatedAt = time.Now().UTC()
	r.pointers[pointer.QuoteID] = pointer
	return nil
}

func (r *memoryPointers) MarkStale(_ context.Context, quoteID snowflake.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if pointer, ok := r.pointers[quoteID]; ok {
		pointer.Stale = true
		r.pointers[quoteID] = pointer
	}
	return nil
}

type fakeRenderer struct {
	Calls   int
	Markups []string
	Err     error
}

func (r *fakeRenderer) Render(_ context.Context, markup string) ([]byte, error) {
	r.Calls++
	r.Markups = append(r.Markups, markup)
	if r.Err != nil {
		return nil, r.Err
	}
	return []byte("%PDF " + markup[:minInt(16, len(markup))]), nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

type memoryQuotes struct {
	mu       sync.Mutex
	quotes   map[snowflake.ID]*quotedomain.Quote
	DocURLs  []string
	FailDoc  bool
}

func newMemoryQuotes() *memoryQuotes {
	return &memoryQuotes{quotes: make(map[snowflake.ID]*quotedomain.Quote)}
}

func (r *memoryQuotes) GetByID(_ context.Context, id snowflake.ID) (*quotedomain.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	quote, ok := r.quotes[id]
	if !ok {
		return nil, quotedomain.ErrQuoteNotFound
	}
	return quote, nil
}

func (r *memoryQuotes) Save(_ context.Context, quote *quotedomain.Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quotes[quote.ID] = quote
	return nil
}

func (r *memoryQuotes) UpdateSnapshot(_ context.Context, id snowflake.ID, data quotedomain.QuoteData, presentation quotedomain.PresentationConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	quote, ok := r.quotes[id]
	if !ok {
		return quotedomain.ErrQuoteNotFound
	}
	quote.Data, _ = json.Marshal(data)
	quote.Presentation, _ = json.Marshal(presentation)
	return nil
}

func (r *memoryQuotes) UpdateDocument(_ context.Context, id snowflake.ID, publicURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailDoc {
		return quotedomain.ErrMetadataUpdate
	}
	if quote, ok := r.quotes[id]; ok {
		quote.Status = quotedomain.QuoteStatusDocumented
		quote.DocumentURL = &publicURL
	}
	r.DocURLs = append(r.DocURLs, publicURL)
	return nil
}

type fixture struct {
	store    *artifactstore.MemoryStore
	pointers *memoryPointers
	quotes   *memoryQuotes
	renderer *fakeRenderer
	sync     *Synchronizer
	coord    *Coordinator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := zaptest.NewLogger(t)
	store := artifactstore.NewMemoryStore()
	pointers := newMemoryPointers()
	quotes := newMemoryQuotes()
	rend := &fakeRenderer{}
	clk := &stepClock{at: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}

	sync := &Synchronizer{
		store:    store,
		pointers: pointers,
		clk:      clk,
		log:      log.Named("publication.synchronizer"),
	}
	coord := &Coordinator{
		compiler: compiler.New(),
		renderer: rend,
		store:    store,
		quotes:   quotes,
		pointers: pointers,
		sync:     sync,
		markup:   cache.NewTTLCache[snowflake.ID, string](),
		clk:      clk,
		log:      log.Named("publication.coordinator"),
	}
	return &fixture{store: store, pointers: pointers, quotes: quotes, renderer: rend, sync: sync, coord: coord}
}

func testQuoteData() quotedomain.QuoteData {
	price := 150.0
	return quotedomain.QuoteData{
		Destination:    quotedomain.Destination{Country: "Portugal", City: "Lisbon"},
		GlobalCurrency: "USD",
		ShowTotal:      true,
		Accommodations: []quotedomain.Accommodation{{
			Price: quotedomain.Price{Amount: &price, ShowPrice: true},
			Name:  "Hotel Tejo",
		}},
	}
}

func seedQuote(t *testing.T, f *fixture, id snowflake.ID) {
	t.Helper()
	data, err := json.Marshal(testQuoteData())
	if err != nil {
		t.Fatal(err)
	}
	presentation, err := json.Marshal(quotedomain.PresentationConfig{AgencyName: "Iterio"})
	if err != nil {
		t.Fatal(err)
	}
	if err := f.quotes.Save(context.Background(), &quotedomain.Quote{
		ID:           id,
		Status:       quotedomain.QuoteStatusDraft,
		Data:         data,
		Presentation: presentation,
	}); err != nil {
		t.Fatal(err)
	}
}

func TestPublishCleansUpPreviousObject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	quoteID := snowflake.ID(42)

	firstURL, err := f.sync.Publish(ctx, quoteID, []byte("one"))
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	secondURL, err := f.sync.Publish(ctx, quoteID, []byte("two"))
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if firstURL == secondURL {
		t.Fatal("expected distinct object paths per publish")
	}

	firstPath := objectPathFromURL(firstURL)
	deleted := false
	for _, p := range f.store.Deletes {
		if p == firstPath {
			deleted = true
		}
	}
	if !deleted {
		t.Fatalf("expected deletion attempt against %q, got %v", firstPath, f.store.Deletes)
	}

	pointer, err := f.pointers.Get(ctx, quoteID)
	if err != nil || pointer == nil {
		t.Fatalf("expected live pointer, got %v, %v", pointer, err)
	}
	if pointer.PublicURL != secondURL {
		t.Fatalf("expected pointer overwritten to %q, got %q", secondURL, pointer.PublicURL)
	}
}

func TestPublishPointerFailureLeavesOrphan(t *testing.T) {
	f := newFixture(t)
	f.pointers.FailUp = true
	ctx := context.Background()

	_, err := f.sync.Publish(ctx, snowflake.ID(7), []byte("doc"))
	if !errors.Is(err, domain.ErrPointerUpdate) {
		t.Fatalf("expected pointer update error, got %v", err)
	}
	if len(f.store.Uploads) != 1 {
		t.Fatalf("expected one upload, got %d", len(f.store.Uploads))
	}
	if _, ok := f.store.Object(f.store.Uploads[0]); !ok {
		t.Fatal("expected orphaned object to remain in store")
	}
}

func TestDownloadCacheHit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	quoteID := snowflake.ID(10)
	seedQuote(t, f, quoteID)

	url, err := f.sync.Publish(ctx, quoteID, []byte("doc"))
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	upsertsBefore := f.pointers.Upserts

	result, err := f.coord.Download(ctx, quoteID)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if !result.Cached {
		t.Fatal("expected cache hit")
	}
	if result.URL != url {
		t.Fatalf("expected existing URL %q, got %q", url, result.URL)
	}
	if f.renderer.Calls != 0 {
		t.Fatalf("expected zero renders, got %d", f.renderer.Calls)
	}
	if f.pointers.Upserts != upsertsBefore {
		t.Fatal("expected zero pointer writes on cache hit")
	}
}

func TestDownloadCacheMissAfterPreview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	quoteID := snowflake.ID(11)
	seedQuote(t, f, quoteID)

	firstURL, err := f.sync.Publish(ctx, quoteID, []byte("doc"))
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	preview, err := f.coord.Preview(ctx, quoteID, testQuoteData(), quotedomain.PresentationConfig{AgencyName: "Iterio"})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if preview.HTML == "" {
		t.Fatal("expected compiled markup")
	}

	result, err := f.coord.Download(ctx, quoteID)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if result.Cached {
		t.Fatal("expected full cycle after preview invalidation")
	}
	if result.URL == firstURL {
		t.Fatal("expected a new URL after republish")
	}
	if f.renderer.Calls != 1 {
		t.Fatalf("expected one render, got %d", f.renderer.Calls)
	}
	if f.renderer.Markups[0] != preview.HTML {
		t.Fatal("expected download to reuse the previewed markup")
	}
	if len(f.quotes.DocURLs) != 1 || f.quotes.DocURLs[0] != result.URL {
		t.Fatalf("expected quote metadata updated with %q, got %v", result.URL, f.quotes.DocURLs)
	}
}

func TestDownloadProbeMissTriggersRepublish(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	quoteID := snowflake.ID(12)
	seedQuote(t, f, quoteID)

	url, err := f.sync.Publish(ctx, quoteID, []byte("doc"))
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	// The object disappears out from under the pointer.
	if err := f.store.Delete(ctx, objectPathFromURL(url)); err != nil {
		t.Fatal(err)
	}

	result, err := f.coord.Download(ctx, quoteID)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if result.Cached {
		t.Fatal("expected republish when probe fails")
	}
	if f.renderer.Calls != 1 {
		t.Fatalf("expected one render, got %d", f.renderer.Calls)
	}
}

func TestDownloadWithoutPointerCompilesFromSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	quoteID := snowflake.ID(13)
	seedQuote(t, f, quoteID)

	result, err := f.coord.Download(ctx, quoteID)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if result.Cached {
		t.Fatal("expected full cycle with no pointer")
	}
	if !strings.Contains(f.renderer.Markups[0], "Hotel Tejo") {
		t.Fatal("expected markup recompiled from the stored snapshot")
	}
}

func TestDownloadUnknownQuote(t *testing.T) {
	f := newFixture(t)
	_, err := f.coord.Download(context.Background(), snowflake.ID(99))
	if !errors.Is(err, quotedomain.ErrQuoteNotFound) {
		t.Fatalf("expected ErrQuoteNotFound, got %v", err)
	}
}

func TestClientRenderedPublish(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	quoteID := snowflake.ID(14)
	seedQuote(t, f, quoteID)

	url, err := f.coord.PublishClientRendered(ctx, quoteID, []byte("%PDF client"))
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if f.renderer.Calls != 0 {
		t.Fatal("expected no server-side render for client-supplied bytes")
	}
	path := objectPathFromURL(url)
	data, ok := f.store.Object(path)
	if !ok || string(data) != "%PDF client" {
		t.Fatalf("expected client bytes stored at %q", path)
	}
	if len(f.quotes.DocURLs) != 1 {
		t.Fatal("expected quote metadata update")
	}
}

func TestRenderFailurePropagates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	quoteID := snowflake.ID(15)
	seedQuote(t, f, quoteID)
	f.renderer.Err = errors.New("rasterization_timeout")

	_, err := f.coord.Download(ctx, quoteID)
	if err == nil {
		t.Fatal("expected render failure to propagate")
	}
	if f.pointers.Upserts != 0 {
		t.Fatal("expected no pointer writes after render failure")
	}
}
