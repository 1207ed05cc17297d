package model

import (
	"time"

	"gorm.io/datatypes"
)

// ContentEntry stores a piece of editable site text or settings.
//
// Values are serialized using the database JSON type when available
// (e.g. PostgreSQL, MySQL) and fall back to TEXT in others (e.g. SQLite),
// so a value may be a plain string, a number or a structured object.
type ContentEntry struct {
	UpdatedAt time.Time `json:"updated_at"`

	// Key is the unique identifier of the entry.
	Key string `gorm:"primaryKey" json:"key"`

	// Value is stored as native JSON/JSONB (where supported).
	Value datatypes.JSON `json:"value"`
}

// ContentStore abstracts read and upsert access to site content.
// Writes honor upsert semantics: create if absent, overwrite if present.
type ContentStore interface {
	// GetValue returns the raw JSON value for key. Returns (nil, nil) if not found.
	GetValue(key string) (datatypes.JSON, error)

	// Map returns all entries as a key -> raw JSON value map.
	Map() (map[string]datatypes.JSON, error)

	// Set stores/replaces the value for key.
	Set(key string, value datatypes.JSON) error

	// SetAny marshals v to JSON and stores it at key.
	SetAny(key string, v any) error

	// Delete removes the entry for key. No error if missing.
	Delete(key string) error
}
