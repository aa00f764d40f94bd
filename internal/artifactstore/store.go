package artifactstore

import (
	"context"
	"errors"
)

// Store is the object-store surface the publication pipeline needs:
// no-overwrite uploads, best-effort deletes, and a HEAD-equivalent
// existence probe.
type Store interface {
	// Upload writes an object under path. An existing object at the same
	// path is an error, never a silent replace.
	Upload(ctx context.Context, path string, data []byte, contentType string) error
	Delete(ctx context.Context, path string) error
	// Exists probes retrievability without transferring the body.
	Exists(ctx context.Context, path string) (bool, error)
	// PublicURL derives the public URL for an object path.
	PublicURL(path string) string
}

var (
	ErrObjectExists = errors.New("object_already_exists")
	ErrUpload       = errors.New("upload_failed")
	ErrNotFound     = errors.New("object_not_found")
)
