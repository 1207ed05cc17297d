package storage

import (
	"fmt"
	"strings"

	"github.com/darkroom-cms/darkroom/storage/model"

	"gorm.io/gorm"
)

// Storage is a GORM-based storage implementation
type Storage struct {
	db         *gorm.DB
	userParams Argon2idParams
}

var models = []any{
	&model.User{},
	&model.Photo{},
	&model.TeamMember{},
	&model.ContentEntry{},
}

// NewStorage creates a new GORM-based storage
func NewStorage(config Config) (*Storage, error) {
	db, err := Connect(config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto migrate the schemas
	if err = db.AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Fill user hash params with defaults if zero values
	params := config.UsersHash
	if params.Time == 0 {
		params = defaultArgon2idParams()
	}

	return &Storage{
		db:         db,
		userParams: params,
	}, nil
}

// UsersStorage returns a UsersStorage
func (s *Storage) UsersStorage() *UsersStorage {
	return &UsersStorage{db: s.db, params: s.userParams}
}

// PhotosStorage returns a PhotosStorage
func (s *Storage) PhotosStorage() *PhotosStorage {
	return &PhotosStorage{db: s.db}
}

// TeamStorage returns a TeamStorage
func (s *Storage) TeamStorage() *TeamStorage {
	return &TeamStorage{db: s.db}
}

// ContentStorage returns a ContentStorage
func (s *Storage) ContentStorage() *ContentStorage {
	return &ContentStorage{db: s.db}
}

// isUniqueConstraintError performs a cheap check across supported drivers.
func isUniqueConstraintError(err error) bool {
	msg := err.Error()
	// sqlite | mysql | postgres common markers
	if
	// SQLite
	(containsAny(msg, "UNIQUE constraint failed", "constraint failed")) ||
		// MySQL
		(containsAny(msg, "Duplicate entry", "Error 1062")) ||
		// Postgres
		(containsAny(msg, "duplicate key value", "violates unique constraint")) {
		return true
	}
	return false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// applyReorder sets display_order = position for every id in orderedIDs that
// exists in the given table. Each update is applied independently; ids not
// present in the collection are skipped silently and ids missing from
// orderedIDs keep their previous order. This mirrors a persistence-level
// bulk write: partial application on failure is possible and not rolled
// back.
func applyReorder(db *gorm.DB, entity any, orderedIDs []string) error {
	positions := make(map[string]int, len(orderedIDs))
	for i, id := range orderedIDs {
		positions[id] = i
	}
	for id, pos := range positions {
		if err := db.Model(entity).Where("id = ?", id).Update("display_order", pos).Error; err != nil {
			return err
		}
	}
	return nil
}
