package model

import "github.com/google/uuid"

// Principal identifies the authenticated caller for the duration of one
// request. It is passed explicitly into every service operation; there is no
// ambient session state.
type Principal struct {
	UserID uuid.UUID
	Role   Role
	Name   string
}

func (p Principal) Permits(action Action) bool {
	return Permits(p.Role, action)
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
