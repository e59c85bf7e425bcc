package order

import (
	"errors"
	"fmt"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"
)

const (
	// MaxFileLimit is the maximum number of files a single order may carry.
	MaxFileLimit = 6

	// MaxFileRanges is the maximum number of print ranges a single file may
	// carry.
	MaxFileRanges = 5
)

// ErrFileIsNotConstructed is returned when a File instance was not created
// through the NewFile factory method.
var ErrFileIsNotConstructed = errors.New("File must be created via NewFile constructor")

// FileRange holds the print settings for one page range of a file: how many
// copies, which pages, on what paper, and how they go onto it.
type FileRange struct {
	id             kernel.UUID
	copies         int
	pageRange      string
	paperVariantID *int32
	orientation    PaperOrientation
	isColour       bool
	isDoubleSided  bool
}

// NewFileRange creates a validated FileRange. Copies must be positive and the
// orientation valid. An empty pageRange means the whole document;
// paperVariantID may be nil when the shop default applies.
func NewFileRange(
	id kernel.UUID,
	copies int,
	pageRange string,
	paperVariantID *int32,
	orientation PaperOrientation,
	isColour bool,
	isDoubleSided bool,
) (FileRange, error) {
	if err := errors.Join(id.Validate(), orientation.Validate()); err != nil {
		return FileRange{}, err
	}

	if copies < 1 {
		return FileRange{}, errs.NewValueIsInvalidErrorWithCause(
			"copies is invalid",
			fmt.Errorf("%d is not greater than 0", copies),
		)
	}

	return FileRange{
		id:             id,
		copies:         copies,
		pageRange:      pageRange,
		paperVariantID: paperVariantID,
		orientation:    orientation,
		isColour:       isColour,
		isDoubleSided:  isDoubleSided,
	}, nil
}

// ID returns the range's unique identifier.
func (r FileRange) ID() kernel.UUID { return r.id }

// Copies returns how many copies of the range are printed.
func (r FileRange) Copies() int { return r.copies }

// PageRange returns the page selection, empty for the whole document.
func (r FileRange) PageRange() string { return r.pageRange }

// PaperVariantID returns the requested paper variant, nil for the shop
// default.
func (r FileRange) PaperVariantID() *int32 { return r.paperVariantID }

// Orientation returns the print orientation.
func (r FileRange) Orientation() PaperOrientation { return r.orientation }

// IsColour reports whether the range is printed in colour.
func (r FileRange) IsColour() bool { return r.isColour }

// IsDoubleSided reports whether the range is printed double sided.
func (r FileRange) IsDoubleSided() bool { return r.isDoubleSided }

// File is a finalized print file on a persisted order. It merges the staged
// upload metadata (filetype, filesize, object key) with the client-supplied
// print specification (filename, ranges) at build time.
type File struct {
	id        kernel.UUID
	filename  string
	filetype  FileType
	filesize  int64
	objectKey string
	ranges    []FileRange

	isConstructed bool
}

// NewFile creates a validated File. The file must carry between 1 and
// MaxFileRanges ranges, a positive size, and a non-empty filename and object
// key.
func NewFile(
	id kernel.UUID,
	filename string,
	filetype FileType,
	filesize int64,
	objectKey string,
	ranges []FileRange,
) (File, error) {
	if err := errors.Join(id.Validate(), filetype.Validate()); err != nil {
		return File{}, err
	}

	if filename == "" {
		return File{}, errs.NewValueIsRequiredError("filename")
	}

	if filesize <= 0 {
		return File{}, errs.NewValueIsInvalidErrorWithCause(
			"filesize is invalid",
			fmt.Errorf("%d is not greater than 0", filesize),
		)
	}

	if objectKey == "" {
		return File{}, errs.NewValueIsRequiredError("objectKey")
	}

	if len(ranges) < 1 || len(ranges) > MaxFileRanges {
		return File{}, errs.NewValueIsOutOfRangeError("file ranges", len(ranges), 1, MaxFileRanges)
	}

	return File{
		id:            id,
		filename:      filename,
		filetype:      filetype,
		filesize:      filesize,
		objectKey:     objectKey,
		ranges:        append([]FileRange(nil), ranges...),
		isConstructed: true,
	}, nil
}

// Validate ensures the File instance was properly constructed through NewFile.
func (f File) Validate() error {
	if !f.isConstructed {
		return ErrFileIsNotConstructed
	}
	return nil
}

// ID returns the file's unique identifier, carried over from the staged
// draft file.
func (f File) ID() kernel.UUID { return f.id }

// Filename returns the client-facing name of the file.
func (f File) Filename() string { return f.filename }

// Filetype returns the format of the file.
func (f File) Filetype() FileType { return f.filetype }

// Filesize returns the size of the uploaded object in bytes.
func (f File) Filesize() int64 { return f.filesize }

// ObjectKey returns the random storage address of the uploaded object.
func (f File) ObjectKey() string { return f.objectKey }

// Ranges returns the file's print ranges in order.
func (f File) Ranges() []FileRange {
	return append([]FileRange(nil), f.ranges...)
}
