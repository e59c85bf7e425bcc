package ports

import (
	"context"

	"printshop/internal/core/domain/model/draft"
)

// ObjectStorage is the gateway to the external object store that holds
// uploaded print files. Objects are addressed by the random keys the draft
// registry reserves at staging time.
type ObjectStorage interface {
	// Exists reports whether the object was actually uploaded.
	Exists(ctx context.Context, object draft.StoredObject) (bool, error)

	// DeleteObject removes a single object. Deleting a missing object is
	// not an error.
	DeleteObject(ctx context.Context, object draft.StoredObject) error

	// DeleteObjects removes a batch of objects, best effort: it keeps going
	// past individual failures and reports them joined.
	DeleteObjects(ctx context.Context, objects []draft.StoredObject) error
}
