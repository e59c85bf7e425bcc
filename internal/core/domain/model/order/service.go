package order

import (
	"errors"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"
)

// Service is an ancillary service request on an order, such as binding or
// lamination, referencing the order files it applies to.
type Service struct {
	kind            ServiceType
	bindingColourID *int32
	notes           string
	fileIDs         []kernel.UUID
}

// NewService creates a validated Service. At least one file reference is
// required; bindingColourID may be nil for services without a colour choice.
func NewService(
	kind ServiceType,
	bindingColourID *int32,
	notes string,
	fileIDs []kernel.UUID,
) (Service, error) {
	if err := kind.Validate(); err != nil {
		return Service{}, err
	}

	if len(fileIDs) == 0 {
		return Service{}, errs.NewValueIsRequiredError("service file ids")
	}

	for _, id := range fileIDs {
		if err := id.Validate(); err != nil {
			return Service{}, errors.Join(errs.NewValueIsInvalidError("service file id"), err)
		}
	}

	return Service{
		kind:            kind,
		bindingColourID: bindingColourID,
		notes:           notes,
		fileIDs:         append([]kernel.UUID(nil), fileIDs...),
	}, nil
}

// Kind returns the type of the service.
func (s Service) Kind() ServiceType { return s.kind }

// BindingColourID returns the chosen binding colour, nil when not applicable.
func (s Service) BindingColourID() *int32 { return s.bindingColourID }

// Notes returns free-form instructions for the merchant.
func (s Service) Notes() string { return s.notes }

// FileIDs returns the ids of the order files the service applies to.
func (s Service) FileIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), s.fileIDs...)
}
