package ports

import "context"

// SettingsRepository persists the shop-wide settings row, currently the
// order number sequence position. The sequence is restored on startup so a
// restart does not hand out numbers already issued in the current cycle.
type SettingsRepository interface {
	// LoadQueueSeq reads the persisted sequence position.
	LoadQueueSeq(ctx context.Context) (uint16, error)

	// SaveQueueSeq persists the sequence position.
	SaveQueueSeq(ctx context.Context, seq uint16) error
}
