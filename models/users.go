package models

import "time"

type Role string

const (
	RoleCustomer   Role = "customer"
	RoleCashier    Role = "cashier"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleCashier, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// IsStaff is true for admin, cashier and super_admin.
func (r Role) IsStaff() bool {
	switch r {
	case RoleAdmin, RoleCashier, RoleSuperAdmin:
		return true
	}
	return false
}

type UserStatus string

const (
	UserStatusPending  UserStatus = "pending"
	UserStatusApproved UserStatus = "approved"
)

type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"type:varchar(255);not null" json:"name"`
	Email     string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"type:varchar(255);not null" json:"-"`
	Role      Role       `gorm:"type:varchar(20);not null;index" json:"role"`
	Status    UserStatus `gorm:"type:varchar(20)" json:"status,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// The predicates below accept a nil receiver so callers can pass the
// current user straight through when nobody is signed in.

func (u *User) IsStaff() bool {
	return u != nil && u.Role.IsStaff()
}

func (u *User) IsSuperAdmin() bool {
	return u != nil && u.Role == RoleSuperAdmin
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

func (u *User) IsCashier() bool {
	return u != nil && u.Role == RoleCashier
}

func (u *User) IsCustomer() bool {
	return u != nil && u.Role == RoleCustomer
}

// HasRole reports whether the user holds any of the given roles.
func (u *User) HasRole(roles ...Role) bool {
	if u == nil {
		return false
	}
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// IsPendingCashier is true for a cashier still waiting for approval. Such
// an account must never be treated as authenticated staff.
func (u *User) IsPendingCashier() bool {
	return u != nil && u.Role == RoleCashier && u.Status == UserStatusPending
}
