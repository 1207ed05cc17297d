package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the access level of an admin console user.
type Role string

const (
	// RoleAdmin is a regular admin; capabilities are taken from the
	// user's permission set.
	RoleAdmin Role = "admin"
	// RoleSuperadmin implicitly holds every capability and may manage
	// other user accounts.
	RoleSuperadmin Role = "superadmin"
)

// Valid returns whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

// Capability strings grant a non-superadmin user access to one management
// area of the admin console.
const (
	CapabilityManageGallery = "manage_gallery"
	CapabilityManageContent = "manage_content"
	CapabilityManageUsers   = "manage_users"
)

// AllCapabilities lists every known capability; superadmins are seeded with
// the full set even though their role alone already grants everything.
var AllCapabilities = []string{
	CapabilityManageUsers,
	CapabilityManageContent,
	CapabilityManageGallery,
}

// User represents an account that can access the admin console.
type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`

	// Username is the unique identifier for login
	Username string `gorm:"uniqueIndex" json:"username"`
	// Name is optional, for UI friendliness
	Name string `json:"name,omitempty"`
	// PasswordHash stores a PHC-formatted argon2id hash of the user's password
	PasswordHash string `json:"-"`
	// Role decides superadmin-only access; defaults to admin
	Role Role `json:"role"`
	// Permissions is only consulted for RoleAdmin users
	Permissions []string `gorm:"serializer:json" json:"permissions"`
}

// BeforeCreate assigns an opaque identifier when none was set.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleAdmin
	}
	if u.Permissions == nil {
		u.Permissions = []string{}
	}
	return nil
}

// UserUpdate carries the mutable fields for a superadmin-initiated user
// update; nil pointers leave the stored value untouched.
type UserUpdate struct {
	Username    *string  `json:"username"`
	Name        *string  `json:"name"`
	Password    *string  `json:"password"`
	Role        *Role    `json:"role"`
	Permissions []string `json:"permissions"`
}

// UsersStore abstracts CRUD and authentication helpers for admin users.
type UsersStore interface {
	// List returns all users (without password hashes), newest first
	List() ([]User, error)
	// GetByUsername returns a user by username
	GetByUsername(username string) (*User, error)
	// GetByID returns a user by id
	GetByID(id string) (*User, error)
	// Create creates a user; the implementation must hash the password
	Create(username, name, password string, role Role, permissions []string) (*User, error)
	// Update applies a partial update to the user with the given id
	Update(id string, update UserUpdate) (*User, error)
	// UpdateProfile changes a user's own username and display name
	UpdateProfile(id, username, name string) (*User, error)
	// UpdatePassword hashes and stores a new password for the user
	UpdatePassword(id, newPassword string) error
	// ResetPassword sets the user's password to the known default value
	ResetPassword(id string) error
	// Delete deletes a user by id; deleting an unknown id is not an error
	Delete(id string) error
	// Authenticate checks a username/password combo and returns the user
	Authenticate(username, password string) (*User, error)
	// VerifyPassword re-proves a user's current password
	VerifyPassword(id, password string) (bool, error)
	// EnsureSuperadmin creates or refreshes the bootstrap superadmin account
	EnsureSuperadmin(username, name, password string) (*User, error)
}
