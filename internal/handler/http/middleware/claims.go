package middleware

import (
	"context"
	"errors"

	"github.com/go-chi/jwtauth/v5"
)

var ErrMissingClaims = errors.New("missing identity claims")

// Identity is the caller's tenant-scoped identity, extracted from the
// verified access token. CompanyID and UserID are always present;
// EmployeeID is nil for users without an employee profile.
type Identity struct {
	UserID     string
	CompanyID  string
	EmployeeID *string
	IsAdmin    bool
}

// IdentityFromContext pulls the identity claims set by the auth service
// into a typed struct. Call only below AuthRequired.
func IdentityFromContext(ctx context.Context) (Identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Identity{}, err
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Identity{}, ErrMissingClaims
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return Identity{}, ErrMissingClaims
	}

	identity := Identity{
		UserID:    userID,
		CompanyID: companyID,
	}

	if employeeID, ok := claims["employee_id"].(string); ok && employeeID != "" {
		identity.EmployeeID = &employeeID
	}
	if admin, ok := claims["is_admin"].(bool); ok {
		identity.IsAdmin = admin
	}

	return identity, nil
}
