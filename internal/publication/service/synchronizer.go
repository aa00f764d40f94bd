package service

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/Iterio-app/Iterio-Platform-sub000/internal/artifactstore"
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/clock"
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/events"
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/observability/metrics"
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/publication/domain"
	quotedomain "github.com/Iterio-app/Iterio-Platform-sub000/internal/quote/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const artifactContentType = "application/pdf"

// Synchronizer publishes an artifact and keeps the quote's pointer record
// in step. The four steps (pointer lookup, old-object delete, upload,
// pointer upsert) run without a cross-step transaction: a failure after
// upload but before the pointer write leaves an orphaned object behind.
type Synchronizer struct {
	store    artifactstore.Store
	pointers domain.PointerRepository
	outbox   *events.Outbox
	clk      clock.Clock
	log      *zap.Logger
}

type SynchronizerParams struct {
	fx.In

	Store    artifactstore.Store
	Pointers domain.PointerRepository
	Outbox   *events.Outbox `optional:"true"`
	Clock    clock.Clock
	Log      *zap.Logger
}

func NewSynchronizer(p SynchronizerParams) *Synchronizer {
	return &Synchronizer{
		store:    p.Store,
		pointers: p.Pointers,
		outbox:   p.Outbox,
		clk:      p.Clock,
		log:      p.Log.Named("publication.synchronizer"),
	}
}

// ObjectPath builds a collision-free object path from the quote id and a
// nanosecond timestamp, so concurrent publishes never overwrite each other.
func ObjectPath(quoteID snowflake.ID, at time.Time) string {
	return fmt.Sprintf("%s_%d.pdf", quoteID.String(), at.UnixNano())
}

// Publish uploads the artifact and updates the pointer. Deletion of the
// previously published object is attempted first and is best-effort only.
func (s *Synchronizer) Publish(ctx context.Context, quoteID snowflake.ID, pdf []byte) (string, error) {
	if quoteID == 0 {
		return "", quotedomain.ErrInvalidQuoteID
	}

	current, err := s.pointers.Get(ctx, quoteID)
	if err != nil {
		s.log.Warn("pointer lookup failed, skipping cleanup",
			zap.String("quote_id", quoteID.String()), zap.Error(err))
		current = nil
	}
	if current != nil {
		if oldPath := objectPathFromURL(current.PublicURL); oldPath != "" {
			if err := s.store.Delete(ctx, oldPath); err != nil {
				s.log.Warn("previous artifact deletion failed",
					zap.String("path", oldPath), zap.Error(err))
			}
		}
	}

	objectPath := ObjectPath(quoteID, s.clk.Now())
	if err := s.store.Upload(ctx, objectPath, pdf, artifactContentType); err != nil {
		metrics.Pipeline().IncPublish("upload_failed")
		return "", err
	}

	publicURL := s.store.PublicURL(objectPath)
	if err := s.pointers.Upsert(ctx, domain.Pointer{
		QuoteID:   quoteID,
		PublicURL: publicURL,
		Stale:     false,
	}); err != nil {
		// The uploaded object is now orphaned; there is no compensating
		// delete here.
		metrics.Pipeline().IncPublish("pointer_failed")
		s.log.Error("pointer update failed after upload",
			zap.String("quote_id", quoteID.String()),
			zap.String("path", objectPath))
		return "", err
	}

	if s.outbox != nil {
		if err := s.outbox.Publish(ctx, events.Event{
			QuoteID: quoteID,
			Type:    events.EventDocumentPublished,
			Payload: events.DocumentPublishedPayload{URL: publicURL, Bytes: len(pdf)}.ToMap(),
		}); err != nil {
			s.log.Warn("document event not recorded", zap.Error(err))
		}
	}

	metrics.Pipeline().IncPublish("success")
	metrics.Pipeline().ObserveArtifactSize(len(pdf))
	s.log.Info("artifact published",
		zap.String("quote_id", quoteID.String()),
		zap.String("path", objectPath),
		zap.Int("bytes", len(pdf)))
	return publicURL, nil
}

func objectPathFromURL(publicURL string) string {
	publicURL = strings.TrimSpace(publicURL)
	if publicURL == "" {
		return ""
	}
	parsed, err := url.Parse(publicURL)
	if err != nil {
		return ""
	}
	base := path.Base(parsed.Path)
	if base == "." || base == "/" {
		return ""
	}
	return base
}
