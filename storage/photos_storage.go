package storage

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/darkroom-cms/darkroom/storage/model"
)

// Listing defaults for the public gallery.
const (
	DefaultPageLimit = 12
	MaxPageLimit     = 100
)

// listingOrder sorts by explicit position first; among equal positions the
// newest record wins.
const listingOrder = "display_order asc, created_at desc"

// canonicalPhotos is the fixed set re-inserted by the "restore defaults"
// seed operation.
var canonicalPhotos = []model.Photo{
	{Src: "/photo-1.jpg", Title: "Photo 1", Photographer: "Alpha Crew", Order: 1},
	{Src: "/photo-2.jpeg", Title: "Photo 2", Photographer: "Alpha Crew", Order: 2},
	{Src: "/photo-3.jpg", Title: "Photo 3", Photographer: "Alpha Crew", Order: 3},
	{Src: "/photo-4.jpeg", Title: "Photo 4", Photographer: "Alpha Crew", Order: 4},
	{Src: "/photo-5.jpg", Title: "Photo 5", Photographer: "Alpha Crew", Order: 5},
	{Src: "/photo-6.jpeg", Title: "Photo 6", Photographer: "Alpha Crew", Order: 6},
	{Src: "/photo-7.jpg", Title: "Photo 7", Photographer: "Alpha Crew", Order: 7},
	{Src: "/photo-8.jpg", Title: "Photo 8", Photographer: "Alpha Crew", Order: 8},
	{Src: "/photo-9.jpg", Title: "Photo 9", Photographer: "Alpha Crew", Order: 9},
	{Src: "/photo-10.jpg", Title: "Photo 10", Photographer: "Alpha Crew", Order: 10},
	{Src: "/photo-11.jpg", Title: "Photo 11", Photographer: "Alpha Crew", Order: 11},
	{Src: "/photo-12.jpg", Title: "Photo 12", Photographer: "Alpha Crew", Order: 12},
}

// PhotosStorage implements model.PhotosStore using GORM
type PhotosStorage struct {
	db *gorm.DB
}

// List returns all photos sorted by order asc, created_at desc
func (s *PhotosStorage) List() ([]model.Photo, error) {
	var photos []model.Photo
	if err := s.db.Order(listingOrder).Find(&photos).Error; err != nil {
		return nil, errors.Wrap(err, "photos: list failed")
	}
	return photos, nil
}

// Page returns one page of the sorted listing plus pagination info.
// page defaults to 1, limit to DefaultPageLimit and is capped at
// MaxPageLimit. A concurrent insert between page fetches may shift later
// pages by one; that drift is accepted.
func (s *PhotosStorage) Page(page, limit int) ([]model.Photo, model.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	var total int64
	if err := s.db.Model(&model.Photo{}).Count(&total).Error; err != nil {
		return nil, model.Pagination{}, errors.Wrap(err, "photos: count failed")
	}
	pages := int((total + int64(limit) - 1) / int64(limit))

	var photos []model.Photo
	if err := s.db.Order(listingOrder).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&photos).Error; err != nil {
		return nil, model.Pagination{}, errors.Wrap(err, "photos: page failed")
	}
	return photos, model.Pagination{
		Current: page,
		Pages:   pages,
		Total:   total,
		HasMore: page < pages,
	}, nil
}

// Create persists a new photo and returns it with its generated id
func (s *PhotosStorage) Create(add model.AddPhoto) (*model.Photo, error) {
	if strings.TrimSpace(add.Src) == "" || strings.TrimSpace(add.Title) == "" ||
		strings.TrimSpace(add.Photographer) == "" {
		return nil, model.ValidationError("src, title and photographer are required")
	}
	photo := model.Photo{
		Src:          add.Src,
		Title:        add.Title,
		Photographer: add.Photographer,
	}
	if add.Order != nil {
		photo.Order = *add.Order
	}
	if err := s.db.Create(&photo).Error; err != nil {
		return nil, errors.Wrap(err, "photos: create failed")
	}
	return &photo, nil
}

// Update applies a partial update; NotFoundError if id is unknown
func (s *PhotosStorage) Update(id string, update model.AddPhoto) (*model.Photo, error) {
	var photo model.Photo
	if err := s.db.Where("id = ?", id).First(&photo).Error; err != nil {
		return nil, model.NotFoundErrorFmt("photo not found: %s", id)
	}
	if update.Src != "" {
		photo.Src = update.Src
	}
	if update.Title != "" {
		photo.Title = update.Title
	}
	if update.Photographer != "" {
		photo.Photographer = update.Photographer
	}
	if update.Order != nil {
		photo.Order = *update.Order
	}
	if err := s.db.Save(&photo).Error; err != nil {
		return nil, errors.Wrap(err, "photos: update failed")
	}
	return &photo, nil
}

// Delete removes a photo. Deleting an unknown id is a soft success.
func (s *PhotosStorage) Delete(id string) error {
	if id == "" {
		return model.ValidationError("photo id is required")
	}
	if err := s.db.Where("id = ?", id).Delete(&model.Photo{}).Error; err != nil {
		return errors.Wrap(err, "photos: delete failed")
	}
	return nil
}

// Reorder assigns order = position for each id in orderedIDs.
func (s *PhotosStorage) Reorder(orderedIDs []string) error {
	if err := applyReorder(s.db, &model.Photo{}, orderedIDs); err != nil {
		return errors.Wrap(err, "photos: reorder failed")
	}
	return nil
}

// Seed unconditionally inserts the canonical photo set. It is additive and
// duplicates records on repeated invocation; it exists as a manual recovery
// action, not routine maintenance.
func (s *PhotosStorage) Seed() error {
	for _, p := range canonicalPhotos {
		photo := p
		if err := s.db.Create(&photo).Error; err != nil {
			return errors.Wrap(err, "photos: seed failed")
		}
	}
	return nil
}
