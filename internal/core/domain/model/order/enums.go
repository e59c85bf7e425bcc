package order

import (
	"fmt"

	"printshop/internal/pkg/errs"
)

// FileType identifies the format of an uploaded print file. The set is
// closed: the shop only prints PDF documents and PNG/JPG images.
type FileType int

const (
	// FileTypeUnknown represents an invalid or undefined file type.
	FileTypeUnknown FileType = iota

	// FileTypePDF is a PDF document.
	FileTypePDF

	// FileTypePNG is a PNG image.
	FileTypePNG

	// FileTypeJPG is a JPG image.
	FileTypeJPG
)

func getFileTypeStrings() map[FileType]string {
	return map[FileType]string{
		FileTypeUnknown: "unknown",
		FileTypePDF:     "pdf",
		FileTypePNG:     "png",
		FileTypeJPG:     "jpg",
	}
}

// FileTypeFromString parses the lowercase wire representation of a file type.
func FileTypeFromString(s string) (FileType, error) {
	for ft, str := range getFileTypeStrings() {
		if ft != FileTypeUnknown && str == s {
			return ft, nil
		}
	}
	return FileTypeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"filetype is invalid",
		fmt.Errorf("%q is not a valid filetype", s),
	)
}

// String returns the lowercase name of the file type, which doubles as the
// object-key extension in storage.
func (f FileType) String() string {
	if str, ok := getFileTypeStrings()[f]; ok {
		return str
	}
	return "unknown"
}

// Validate checks if the FileType value is valid.
func (f FileType) Validate() error {
	if f != FileTypePDF && f != FileTypePNG && f != FileTypeJPG {
		return errs.NewValueIsInvalidErrorWithCause(
			"filetype is invalid",
			fmt.Errorf("%d is not a valid filetype", f),
		)
	}
	return nil
}

// PaperOrientation selects how a range is printed on the page.
type PaperOrientation int

const (
	// OrientationUnknown represents an invalid or undefined orientation.
	OrientationUnknown PaperOrientation = iota

	// OrientationPortrait prints upright.
	OrientationPortrait

	// OrientationLandscape prints rotated.
	OrientationLandscape
)

// String returns the lowercase name of the orientation.
func (o PaperOrientation) String() string {
	switch o {
	case OrientationPortrait:
		return "portrait"
	case OrientationLandscape:
		return "landscape"
	default:
		return "unknown"
	}
}

// PaperOrientationFromString parses the lowercase wire representation of an
// orientation.
func PaperOrientationFromString(s string) (PaperOrientation, error) {
	switch s {
	case "portrait":
		return OrientationPortrait, nil
	case "landscape":
		return OrientationLandscape, nil
	default:
		return OrientationUnknown, errs.NewValueIsInvalidErrorWithCause(
			"orientation is invalid",
			fmt.Errorf("%q is not a valid orientation", s),
		)
	}
}

// Validate checks if the PaperOrientation value is valid.
func (o PaperOrientation) Validate() error {
	if o != OrientationPortrait && o != OrientationLandscape {
		return errs.NewValueIsInvalidErrorWithCause(
			"orientation is invalid",
			fmt.Errorf("%d is not a valid orientation", o),
		)
	}
	return nil
}

// ServiceType identifies an ancillary service applied to order files.
type ServiceType int

const (
	// ServiceTypeUnknown represents an invalid or undefined service type.
	ServiceTypeUnknown ServiceType = iota

	// ServiceTypeBookbinding binds the referenced files together.
	ServiceTypeBookbinding

	// ServiceTypeBookbindingWithCover binds the referenced files with a cover.
	ServiceTypeBookbindingWithCover

	// ServiceTypeLaminate laminates the referenced files.
	ServiceTypeLaminate
)

func getServiceTypeStrings() map[ServiceType]string {
	return map[ServiceType]string{
		ServiceTypeUnknown:              "unknown",
		ServiceTypeBookbinding:          "bookbinding",
		ServiceTypeBookbindingWithCover: "bookbinding_with_cover",
		ServiceTypeLaminate:             "laminate",
	}
}

// ServiceTypeFromString parses the snake_case wire representation of a
// service type.
func ServiceTypeFromString(s string) (ServiceType, error) {
	for st, str := range getServiceTypeStrings() {
		if st != ServiceTypeUnknown && str == s {
			return st, nil
		}
	}
	return ServiceTypeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"service type is invalid",
		fmt.Errorf("%q is not a valid service type", s),
	)
}

// String returns the snake_case name of the service type.
func (s ServiceType) String() string {
	if str, ok := getServiceTypeStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks if the ServiceType value is valid.
func (s ServiceType) Validate() error {
	if s != ServiceTypeBookbinding && s != ServiceTypeBookbindingWithCover && s != ServiceTypeLaminate {
		return errs.NewValueIsInvalidErrorWithCause(
			"service type is invalid",
			fmt.Errorf("%d is not a valid service type", s),
		)
	}
	return nil
}
