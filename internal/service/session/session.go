// Package session extracts the authenticated actor from JWT claims.
package session

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
)

// Roles carried in the JWT, lowest to highest.
const (
	RoleCrew       = "crew"
	RoleSupervisor = "supervisor"
	RoleManager    = "manager"
	RoleAdmin      = "admin"
)

var roleRank = map[string]int{
	RoleCrew:       0,
	RoleSupervisor: 1,
	RoleManager:    2,
	RoleAdmin:      3,
}

// Session is the authenticated actor on a request.
type Session struct {
	CompanyID  int64
	EmployeeID int64
	Role       string
}

// AtLeast reports whether the session role ranks at or above role.
func (s Session) AtLeast(role string) bool {
	return roleRank[s.Role] >= roleRank[role]
}

// FromContext pulls the session out of the JWT claims on the context.
func FromContext(ctx context.Context) (Session, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Session{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(float64)
	if !ok || companyID == 0 {
		return Session{}, fmt.Errorf("company_id claim is missing or invalid")
	}

	employeeID, _ := claims["employee_id"].(float64)

	role, _ := claims["role"].(string)
	if role == "" {
		role = RoleCrew
	}

	return Session{
		CompanyID:  int64(companyID),
		EmployeeID: int64(employeeID),
		Role:       role,
	}, nil
}
