package storage

import (
	"database/sql"
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/darkroom-cms/darkroom/storage/model"
)

// ContentStorage implements model.ContentStore using GORM.
type ContentStorage struct {
	db *gorm.DB
}

// GetValue returns the raw JSON value for key. If not found, returns nil, nil.
func (s *ContentStorage) GetValue(key string) (datatypes.JSON, error) {
	// Read the JSON/JSONB value as raw bytes to support scalar JSON (e.g., strings).
	var raw []byte
	row := s.db.Model(&model.ContentEntry{}).
		Select("value").
		Where(&model.ContentEntry{Key: key}).
		Row()
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	return raw, nil
}

// Map returns all entries as a key -> raw JSON value map.
func (s *ContentStorage) Map() (map[string]datatypes.JSON, error) {
	var entries []model.ContentEntry
	if err := s.db.Find(&entries).Error; err != nil {
		return nil, err
	}
	out := make(map[string]datatypes.JSON, len(entries))
	for _, e := range entries {
		out[e.Key] = e.Value
	}
	return out, nil
}

// Set upserts the JSON value for key.
func (s *ContentStorage) Set(key string, value datatypes.JSON) error {
	entry := model.ContentEntry{
		Key:   key,
		Value: value,
	}
	return s.db.Clauses(
		clause.OnConflict{
			Columns: []clause.Column{
				{Name: "key"},
			},
			DoUpdates: clause.AssignmentColumns(
				[]string{
					"value",
					"updated_at",
				},
			),
		},
	).Create(&entry).Error
}

// SetAny marshals v to JSON and stores it at key.
func (s *ContentStorage) SetAny(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(key, datatypes.JSON(b))
}

// Delete removes the entry for key. No error if it's missing.
func (s *ContentStorage) Delete(key string) error {
	return s.db.Where(&model.ContentEntry{Key: key}).Delete(&model.ContentEntry{}).Error
}
