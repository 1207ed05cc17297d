package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Photo is a gallery entry. Its position in the gallery is controlled by
// Order (lower sorts first); ties are broken by CreatedAt, newest first.
// Order values need not be unique or dense at all times; the reorder
// operation reassigns a dense 0..N-1 sequence for the submitted ids.
type Photo struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`

	Src          string `gorm:"type:text" json:"src"`
	Title        string `json:"title"`
	Photographer string `json:"photographer"`
	// Order is stored as display_order because "order" is a reserved word
	// in most SQL dialects.
	Order int `gorm:"column:display_order;default:0" json:"order"`
}

// BeforeCreate assigns an opaque identifier when none was set.
func (p *Photo) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// AddPhoto carries the fields for creating or updating a photo.
type AddPhoto struct {
	Src          string `json:"src" validate:"required"`
	Title        string `json:"title" validate:"required,max=60"`
	Photographer string `json:"photographer" validate:"required"`
	Order        *int   `json:"order"`
}

// Pagination describes the page window of a listing response.
type Pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
	HasMore bool  `json:"hasMore"`
}

// PhotosStore is the abstraction used by handlers.
type PhotosStore interface {
	// List returns all photos sorted by order asc, created_at desc
	List() ([]Photo, error)
	// Page returns one page of the sorted listing plus pagination info
	Page(page, limit int) ([]Photo, Pagination, error)
	// Create persists a new photo and returns it with its generated id
	Create(add AddPhoto) (*Photo, error)
	// Update applies a partial update; NotFoundError if id is unknown
	Update(id string, update AddPhoto) (*Photo, error)
	// Delete removes a photo; deleting an unknown id is a soft success
	Delete(id string) error
	// Reorder assigns order = position for each id in orderedIDs;
	// unknown ids are ignored, omitted ids keep their previous order
	Reorder(orderedIDs []string) error
	// Seed unconditionally inserts the canonical photo set (additive)
	Seed() error
}
