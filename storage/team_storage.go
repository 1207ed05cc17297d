package storage

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/darkroom-cms/darkroom/storage/model"
)

// TeamStorage implements model.TeamStore using GORM
type TeamStorage struct {
	db *gorm.DB
}

// List returns all team members sorted by order asc, created_at desc
func (s *TeamStorage) List() ([]model.TeamMember, error) {
	var team []model.TeamMember
	if err := s.db.Order(listingOrder).Find(&team).Error; err != nil {
		return nil, errors.Wrap(err, "team: list failed")
	}
	return team, nil
}

// Create persists a new member and returns it with its generated id
func (s *TeamStorage) Create(add model.AddTeamMember) (*model.TeamMember, error) {
	if strings.TrimSpace(add.Name) == "" || strings.TrimSpace(add.Role) == "" ||
		strings.TrimSpace(add.Image) == "" {
		return nil, model.ValidationError("name, role and image are required")
	}
	member := model.TeamMember{
		Name:  add.Name,
		Role:  add.Role,
		Image: add.Image,
	}
	if add.Order != nil {
		member.Order = *add.Order
	}
	if err := s.db.Create(&member).Error; err != nil {
		return nil, errors.Wrap(err, "team: create failed")
	}
	return &member, nil
}

// Update applies a partial update; NotFoundError if id is unknown
func (s *TeamStorage) Update(id string, update model.AddTeamMember) (*model.TeamMember, error) {
	var member model.TeamMember
	if err := s.db.Where("id = ?", id).First(&member).Error; err != nil {
		return nil, model.NotFoundErrorFmt("team member not found: %s", id)
	}
	if update.Name != "" {
		member.Name = update.Name
	}
	if update.Role != "" {
		member.Role = update.Role
	}
	if update.Image != "" {
		member.Image = update.Image
	}
	if update.Order != nil {
		member.Order = *update.Order
	}
	if err := s.db.Save(&member).Error; err != nil {
		return nil, errors.Wrap(err, "team: update failed")
	}
	return &member, nil
}

// Delete removes a member. The id parameter is required; deleting an id
// that is already gone is a soft success.
func (s *TeamStorage) Delete(id string) error {
	if id == "" {
		return model.ValidationError("team member id is required")
	}
	if err := s.db.Where("id = ?", id).Delete(&model.TeamMember{}).Error; err != nil {
		return errors.Wrap(err, "team: delete failed")
	}
	return nil
}

// Reorder assigns order = position for each id in orderedIDs.
func (s *TeamStorage) Reorder(orderedIDs []string) error {
	if err := applyReorder(s.db, &model.TeamMember{}, orderedIDs); err != nil {
		return errors.Wrap(err, "team: reorder failed")
	}
	return nil
}
