package domain

import "github.com/google/uuid"

// Role is the user role issued by the auth backend
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleProfessional Role = "professional"
	RoleClient       Role = "client"
)

// Session authenticated caller, resolved per request and passed explicitly to use cases
type Session struct {
	UserID      uuid.UUID
	Email       string
	Role        Role
	AccessToken string
}

// IsAdmin returns true for administrators
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// IsProfessional returns true for staff members
func (s *Session) IsProfessional() bool {
	return s != nil && s.Role == RoleProfessional
}

// IsStaff returns true for administrators and professionals
func (s *Session) IsStaff() bool {
	return s.IsAdmin() || s.IsProfessional()
}

// CanManage returns true if the session may act on data of the given professional
func (s *Session) CanManage(professionalID uuid.UUID) bool {
	if s.IsAdmin() {
		return true
	}
	return s.IsProfessional() && s.UserID == professionalID
}
