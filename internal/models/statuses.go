package models

type UserRole string
type ApplicationStatus string

const (
	UserRoleMember  UserRole = "member"
	UserRoleTrainer UserRole = "trainer"
	UserRoleAdmin   UserRole = "admin"

	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusAccepted  ApplicationStatus = "accepted"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
	ApplicationStatusCancelled ApplicationStatus = "cancelled"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleMember, UserRoleTrainer, UserRoleAdmin:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed.
func (s ApplicationStatus) IsTerminal() bool {
	switch s {
	case ApplicationStatusAccepted, ApplicationStatusRejected, ApplicationStatusCancelled:
		return true
	}
	return false
}

// IsDecision reports whether s is a status an admin may resolve an application to.
func (s ApplicationStatus) IsDecision() bool {
	return s.IsTerminal()
}
