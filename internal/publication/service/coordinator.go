package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Iterio-app/Iterio-Platform-sub000/internal/artifactstore"
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/cache"
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/clock"
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/observability/metrics"
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/publication/domain"
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/quote/compiler"
	quotedomain "github.com/Iterio-app/Iterio-Platform-sub000/internal/quote/domain"
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/renderer"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Compiled markup is kept between a preview and the following download so
// the download does not recompile unnecessarily.
const markupTTL = 15 * time.Minute

// Coordinator decides, per download, whether the published artifact can be
// served as-is or a fresh compile, render and publish cycle is needed.
type Coordinator struct {
	compiler *compiler.Compiler
	renderer renderer.Renderer
	store    artifactstore.Store
	quotes   quotedomain.Repository
	pointers domain.PointerRepository
	sync     *Synchronizer
	markup   cache.Cache[snowflake.ID, string]
	clk      clock.Clock
	log      *zap.Logger
}

type CoordinatorParams struct {
	fx.In

	Compiler *compiler.Compiler
	Renderer renderer.Renderer
	Store    artifactstore.Store
	Quotes   quotedomain.Repository
	Pointers domain.PointerRepository
	Sync     *Synchronizer
	Clock    clock.Clock
	Log      *zap.Logger
}

func NewCoordinator(p CoordinatorParams) *Coordinator {
	return &Coordinator{
		compiler: p.Compiler,
		renderer: p.Renderer,
		store:    p.Store,
		quotes:   p.Quotes,
		pointers: p.Pointers,
		sync:     p.Sync,
		markup:   cache.NewTTLCache[snowflake.ID, string](),
		clk:      p.Clock,
		log:      p.Log.Named("publication.coordinator"),
	}
}

type PreviewResult struct {
	HTML        string
	GeneratedAt time.Time
}

// Preview compiles the markup document for display. For a persisted quote
// the pointer is marked stale: the quote data may have changed, so the next
// download must republish instead of serving the old artifact.
func (c *Coordinator) Preview(ctx context.Context, quoteID snowflake.ID, data quotedomain.QuoteData, presentation quotedomain.PresentationConfig) (PreviewResult, error) {
	at := c.clk.Now()
	html, err := c.compiler.Compile(data, presentation, at)
	if err != nil {
		return PreviewResult{}, err
	}

	if quoteID != 0 {
		c.markup.Set(quoteID, html, markupTTL)
		if err := c.pointers.MarkStale(ctx, quoteID); err != nil {
			return PreviewResult{}, domain.ErrPointerUpdate
		}
	}
	return PreviewResult{HTML: html, GeneratedAt: at}, nil
}

type DownloadResult struct {
	URL    string
	Cached bool
}

// Download serves the existing artifact when the pointer is live and the
// object is still retrievable; otherwise it runs the full cycle.
func (c *Coordinator) Download(ctx context.Context, quoteID snowflake.ID) (DownloadResult, error) {
	pointer, err := c.pointers.Get(ctx, quoteID)
	if err != nil {
		return DownloadResult{}, err
	}
	if pointer != nil && !pointer.Stale {
		ok, probeErr := c.store.Exists(ctx, objectPathFromURL(pointer.PublicURL))
		if probeErr == nil && ok {
			metrics.Pipeline().IncCacheDecision("hit")
			return DownloadResult{URL: pointer.PublicURL, Cached: true}, nil
		}
		if probeErr != nil {
			c.log.Warn("existence probe failed, republishing",
				zap.String("quote_id", quoteID.String()), zap.Error(probeErr))
		}
	}

	metrics.Pipeline().IncCacheDecision("miss")
	markup, err := c.markupFor(ctx, quoteID)
	if err != nil {
		return DownloadResult{}, err
	}
	pdf, err := c.renderer.Render(ctx, markup)
	if err != nil {
		return DownloadResult{}, err
	}
	publicURL, err := c.sync.Publish(ctx, quoteID, pdf)
	if err != nil {
		return DownloadResult{}, err
	}
	if err := c.quotes.UpdateDocument(ctx, quoteID, publicURL); err != nil {
		return DownloadResult{}, err
	}
	return DownloadResult{URL: publicURL, Cached: false}, nil
}

// PublishClientRendered accepts artifact bytes produced by the requester's
// own environment. The server only transports and publishes; the bytes are
// interchangeable with server-rendered ones.
func (c *Coordinator) PublishClientRendered(ctx context.Context, quoteID snowflake.ID, pdf []byte) (string, error) {
	publicURL, err := c.sync.Publish(ctx, quoteID, pdf)
	if err != nil {
		return "", err
	}
	if err := c.quotes.UpdateDocument(ctx, quoteID, publicURL); err != nil {
		return "", err
	}
	return publicURL, nil
}

// markupFor reuses the markup compiled during the most recent preview, or
// recompiles from the stored quote snapshot.
func (c *Coordinator) markupFor(ctx context.Context, quoteID snowflake.ID) (string, error) {
	if html, ok := c.markup.Get(quoteID); ok {
		return html, nil
	}

	quote, err := c.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return "", err
	}
	var data quotedomain.QuoteData
	if len(quote.Data) > 0 {
		if err := json.Unmarshal(quote.Data, &data); err != nil {
			return "", quotedomain.ErrInvalidSnapshot
		}
	}
	var presentation quotedomain.PresentationConfig
	if len(quote.Presentation) > 0 {
		if err := json.Unmarshal(quote.Presentation, &presentation); err != nil {
			return "", quotedomain.ErrInvalidSnapshot
		}
	}
	return c.compiler.Compile(data, presentation, c.clk.Now())
}
