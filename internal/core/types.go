package core

import (
	"context"
	"time"

	"github.com/crguezl/tinyclonec/internal/id"
)

// Link is a stored mapping from a destination URL to its identifier.
// Identifiers are assigned by the store in creation order and never
// reused. Only the view counter changes after creation.
type Link struct {
	ID        int64     `json:"id"`
	URL       string    `json:"url"`
	ViewCount int64     `json:"view_count"`
	CreatedAt time.Time `json:"created_at"`
}

// Code returns the base-36 short code for the link's identifier. The
// value receiver lets templates call it while ranging over []Link.
func (l Link) Code() string { return id.Encode(l.ID) }

// Store abstracts persistence for links.
type Store interface {
	// Create persists a new link and writes the assigned identifier
	// back into l.ID. Must fail with ErrDuplicateURL if the url is
	// already stored.
	Create(ctx context.Context, l *Link) error
	// FindByURL returns the link holding exactly url, or ErrNotFound.
	FindByURL(ctx context.Context, url string) (*Link, error)
	// FindByID returns the link for an identifier, or ErrNotFound.
	FindByID(ctx context.Context, identifier int64) (*Link, error)
	// RecordView atomically adds one to the link's view counter.
	// Returns ErrNotFound if the identifier is unassigned.
	RecordView(ctx context.Context, identifier int64) error
	// Recent returns up to limit links, newest first.
	Recent(ctx context.Context, limit int) ([]Link, error)
	// Close releases the underlying connections.
	Close() error
}
