package user

import (
	"fmt"

	"printshop/internal/pkg/errs"
)

// Role classifies an authenticated caller. Students and teachers are clients
// placing print orders; merchants are shop staff working the fulfillment
// queue.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleStudent is a client role for students placing print orders.
	RoleStudent

	// RoleTeacher is a client role for teachers placing print orders.
	RoleTeacher

	// RoleMerchant is the shop-staff role that drives orders through the
	// fulfillment pipeline.
	RoleMerchant
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "unknown",
		RoleStudent:  "student",
		RoleTeacher:  "teacher",
		RoleMerchant: "merchant",
	}
}

// RoleFromString parses the lowercase wire representation of a role.
// Returns an error for anything that is not "student", "teacher" or
// "merchant".
func RoleFromString(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if role != RoleUnknown && str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role is invalid",
		fmt.Errorf("%q is not a valid role", s),
	)
}

// String returns the lowercase name of the role, "unknown" for invalid values.
// Implements fmt.Stringer and matches the wire representation used in session
// tokens.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Validate checks if the Role value is valid.
// Valid roles are: RoleStudent, RoleTeacher, RoleMerchant.
func (r Role) Validate() error {
	if r != RoleStudent && r != RoleTeacher && r != RoleMerchant {
		return errs.NewValueIsInvalidErrorWithCause(
			"role is invalid",
			fmt.Errorf("%d is not a valid role", r),
		)
	}
	return nil
}

// IsMerchant reports whether the role is the shop-staff role.
func (r Role) IsMerchant() bool {
	return r == RoleMerchant
}

// IsClient reports whether the role places orders (student or teacher).
func (r Role) IsClient() bool {
	return r == RoleStudent || r == RoleTeacher
}
