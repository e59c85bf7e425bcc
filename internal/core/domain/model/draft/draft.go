// Package draft provides the ephemeral order-under-construction entities. A
// draft exists only in process memory, holds the files a client has staged
// for upload, and is either promoted into a persisted order by a build or
// reclaimed by the expiry sweep after its time-to-live elapses.
package draft

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/pkg/errs"
)

// TTL is how long a draft may live before the sweep reclaims it,
// together with its uploaded objects.
const TTL = 15 * time.Minute

// File is a staged upload slot on a draft. Its object key is generated
// randomly, never derived from the filename or content, so keys cannot
// collide or leak information.
type File struct {
	id        kernel.UUID
	filetype  order.FileType
	filesize  int64
	objectKey string
}

// ID returns the staged file's unique identifier.
func (f File) ID() kernel.UUID { return f.id }

// Filetype returns the declared format of the upload.
func (f File) Filetype() order.FileType { return f.filetype }

// Filesize returns the declared size of the upload in bytes.
func (f File) Filesize() int64 { return f.filesize }

// ObjectKey returns the random storage address reserved for the upload.
func (f File) ObjectKey() string { return f.objectKey }

// StoredObject is the (key, filetype) pair the object store addresses an
// upload by. Used for existence checks and best-effort deletion.
type StoredObject struct {
	Key      string
	Filetype order.FileType
}

// StoredObject returns the storage address of the staged file.
func (f File) StoredObject() StoredObject {
	return StoredObject{Key: f.objectKey, Filetype: f.filetype}
}

// Order is a draft order under construction for a single owner. It is not
// safe for concurrent use by itself; the registry serializes access per
// owner.
type Order struct {
	id        kernel.UUID
	createdAt time.Time
	files     []File
}

// NewOrder creates an empty draft with a fresh creation timestamp.
func NewOrder(id kernel.UUID) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &Order{
		id:        id,
		createdAt: time.Now().UTC(),
		files:     make([]File, 0, order.MaxFileLimit),
	}, nil
}

// ID returns the draft's order identifier, which the built order reuses.
func (o *Order) ID() kernel.UUID { return o.id }

// CreatedAt returns when the draft was started; it governs the TTL.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// FilesLen returns the number of staged files.
func (o *Order) FilesLen() int { return len(o.files) }

// Files returns a copy of the staged files in staging order.
func (o *Order) Files() []File {
	return append([]File(nil), o.files...)
}

// ContainsFile reports whether a staged file with the given id exists.
func (o *Order) ContainsFile(id kernel.UUID) bool {
	for _, f := range o.files {
		if f.id.IsEqual(id) {
			return true
		}
	}
	return false
}

// GetFile returns the staged file with the given id.
func (o *Order) GetFile(id kernel.UUID) (File, error) {
	for _, f := range o.files {
		if f.id.IsEqual(id) {
			return f, nil
		}
	}
	return File{}, errs.NewObjectNotFoundError("fileId", id.String())
}

// AddFile stages a new file slot and returns it. Fails when the draft
// already carries order.MaxFileLimit files or when the declared metadata is
// invalid.
func (o *Order) AddFile(filetype order.FileType, filesize int64) (File, error) {
	if err := filetype.Validate(); err != nil {
		return File{}, err
	}

	if filesize <= 0 {
		return File{}, errs.NewValueIsInvalidErrorWithCause(
			"filesize is invalid",
			fmt.Errorf("%d is not greater than 0", filesize),
		)
	}

	if len(o.files) == order.MaxFileLimit {
		return File{}, errs.NewValueIsOutOfRangeError(
			"staged files", len(o.files)+1, 0, order.MaxFileLimit,
		)
	}

	key, err := newObjectKey()
	if err != nil {
		return File{}, err
	}

	f := File{
		id:        kernel.NewUUID(),
		filetype:  filetype,
		filesize:  filesize,
		objectKey: key,
	}
	o.files = append(o.files, f)

	return f, nil
}

// RemoveFile unstages the file with the given id. Removal is idempotent: a
// missing file is not an error.
func (o *Order) RemoveFile(id kernel.UUID) {
	kept := o.files[:0]
	for _, f := range o.files {
		if !f.id.IsEqual(id) {
			kept = append(kept, f)
		}
	}
	o.files = kept
}

// StoredObjects returns the storage addresses of all staged files, in
// staging order.
func (o *Order) StoredObjects() []StoredObject {
	objects := make([]StoredObject, 0, len(o.files))
	for _, f := range o.files {
		objects = append(objects, f.StoredObject())
	}
	return objects
}

// ExpiredAt reports whether the draft's TTL has elapsed at the given instant.
func (o *Order) ExpiredAt(now time.Time, ttl time.Duration) bool {
	return now.Sub(o.createdAt) > ttl
}

// newObjectKey generates a 16-byte random hex object key.
func newObjectKey() (string, error) {
	var raw [16]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", fmt.Errorf("generating object key: %w", err)
	}
	return hex.EncodeToString(raw[:]), nil
}
