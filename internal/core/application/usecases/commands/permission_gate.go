package commands

import (
	"context"
	"errors"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/user"
	"printshop/internal/core/ports"
	"printshop/internal/pkg/errs"
)

// CheckOrderAccess is the single authorization primitive for operations on a
// persisted order. Merchant sessions pass without a database round trip when
// allowMerchant is set; every other session must own the order. A missing
// order is reported as a permission failure, so callers cannot probe for
// order ids they do not own.
func CheckOrderAccess(
	ctx context.Context,
	repo ports.OrderRepository,
	orderID kernel.UUID,
	session user.Session,
	allowMerchant bool,
) error {
	if err := errors.Join(session.Validate(), orderID.Validate()); err != nil {
		return err
	}

	if session.Role().IsMerchant() {
		if allowMerchant {
			return nil
		}
		return errs.NewPermissionDeniedError("order " + orderID.String())
	}

	owned, err := repo.IsOwnedBy(ctx, orderID, session.UserID())
	if err != nil {
		return err
	}
	if !owned {
		return errs.NewPermissionDeniedError("order " + orderID.String())
	}

	return nil
}
