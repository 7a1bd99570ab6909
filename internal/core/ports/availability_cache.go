package ports

import "context"

// AvailabilityCache is an optional short-TTL cache consulted by the
// check-availability pre-check. Results are advisory only; the storage
// layer's unique indexes remain the source of truth.
type AvailabilityCache interface {
	// Get returns (taken, found). found is false on a cache miss or any
	// backend error, in which case the caller falls through to storage.
	Get(ctx context.Context, field, value string) (taken bool, found bool)
	// Mark records that the given field/value pair is taken.
	Mark(ctx context.Context, field, value string)
}
