package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeamMember is an entry on the team page, ordered like photos.
type TeamMember struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`

	Name  string `json:"name"`
	Role  string `json:"role"`
	Image string `gorm:"type:text" json:"image"`
	Order int    `gorm:"column:display_order;default:0" json:"order"`
}

// BeforeCreate assigns an opaque identifier when none was set.
func (m *TeamMember) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// AddTeamMember carries the fields for creating or updating a team member.
type AddTeamMember struct {
	Name  string `json:"name" validate:"required,max=60"`
	Role  string `json:"role" validate:"required,max=60"`
	Image string `json:"image" validate:"required"`
	Order *int   `json:"order"`
}

// TeamStore is the abstraction used by handlers.
type TeamStore interface {
	// List returns all team members sorted by order asc, created_at desc
	List() ([]TeamMember, error)
	// Create persists a new member and returns it with its generated id
	Create(add AddTeamMember) (*TeamMember, error)
	// Update applies a partial update; NotFoundError if id is unknown
	Update(id string, update AddTeamMember) (*TeamMember, error)
	// Delete removes a member; deleting an unknown id is a soft success
	Delete(id string) error
	// Reorder assigns order = position for each id in orderedIDs
	Reorder(orderedIDs []string) error
}
