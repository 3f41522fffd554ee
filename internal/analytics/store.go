package analytics

import "context"

// Store defines the interface for persisting click events.
type Store interface {
	// SaveClick appends one click event. Insert-only; clicks are never
	// updated or deleted by this service.
	SaveClick(ctx context.Context, click *ClickEvent) error
}
