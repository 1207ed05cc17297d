package storage

import (
	"strings"

	arrayOperations "github.com/adam-hanna/arrayOperations"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/darkroom-cms/darkroom/storage/model"
)

// DefaultResetPassword is the known value an admin-initiated password reset
// sets; it must be communicated to the affected user out-of-band.
const DefaultResetPassword = "alpha123"

// UsersStorage implements model.UsersStore using GORM
type UsersStorage struct {
	db     *gorm.DB
	params Argon2idParams
}

// List returns all users (without password hashes), newest first
func (s *UsersStorage) List() ([]model.User, error) {
	var users []model.User
	if err := s.db.Model(&model.User{}).Order("created_at desc").Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "users: list failed")
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// GetByUsername returns a user by username
func (s *UsersStorage) GetByUsername(username string) (*model.User, error) {
	var u model.User
	if err := s.db.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, model.NotFoundErrorFmt("user not found: %s", username)
	}
	u.PasswordHash = ""
	return &u, nil
}

// GetByID returns a user by id
func (s *UsersStorage) GetByID(id string) (*model.User, error) {
	var u model.User
	if err := s.db.Where("id = ?", id).First(&u).Error; err != nil {
		return nil, model.NotFoundErrorFmt("user not found: %s", id)
	}
	u.PasswordHash = ""
	return &u, nil
}

// Create creates a user with an Argon2id-hashed password
func (s *UsersStorage) Create(username, name, password string, role model.Role, permissions []string) (
	*model.User, error,
) {
	username = strings.TrimSpace(username)
	if len(username) == 0 || len(password) == 0 {
		return nil, model.ValidationError("username and password are required")
	}
	if role == "" {
		role = model.RoleAdmin
	}
	if !role.Valid() {
		return nil, model.ValidationErrorFmt("unknown role: %s", role)
	}
	var existing int64
	if err := s.db.Model(&model.User{}).Where("username = ?", username).Count(&existing).Error; err != nil {
		return nil, errors.Wrap(err, "users: create failed")
	}
	if existing > 0 {
		return nil, model.AlreadyExistsErrorFmt("user already exists: %s", username)
	}
	hash, err := hashPasswordArgon2id(password, s.params)
	if err != nil {
		return nil, err
	}
	u := model.User{
		Username:     username,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		Role:         role,
		Permissions:  normalizePermissions(permissions),
	}
	if err := s.db.Create(&u).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, model.AlreadyExistsErrorFmt("user already exists: %s", username)
		}
		return nil, errors.Wrap(err, "users: create failed")
	}
	u.PasswordHash = ""
	return &u, nil
}

// Update applies a partial update to the user with the given id
func (s *UsersStorage) Update(id string, update model.UserUpdate) (*model.User, error) {
	var u model.User
	if err := s.db.Where("id = ?", id).First(&u).Error; err != nil {
		return nil, model.NotFoundErrorFmt("user not found: %s", id)
	}
	if update.Username != nil {
		username := strings.TrimSpace(*update.Username)
		if username == "" {
			return nil, model.ValidationError("username cannot be empty")
		}
		if err := s.checkUsernameFree(username, id); err != nil {
			return nil, err
		}
		u.Username = username
	}
	if update.Name != nil {
		u.Name = strings.TrimSpace(*update.Name)
	}
	if update.Role != nil {
		if !update.Role.Valid() {
			return nil, model.ValidationErrorFmt("unknown role: %s", *update.Role)
		}
		u.Role = *update.Role
	}
	if update.Permissions != nil {
		u.Permissions = normalizePermissions(update.Permissions)
	}
	if update.Password != nil && strings.TrimSpace(*update.Password) != "" {
		hash, err := hashPasswordArgon2id(*update.Password, s.params)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	if err := s.db.Save(&u).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, model.AlreadyExistsErrorFmt("user already exists: %s", u.Username)
		}
		return nil, errors.Wrap(err, "users: update failed")
	}
	u.PasswordHash = ""
	return &u, nil
}

// UpdateProfile changes a user's own username and display name
func (s *UsersStorage) UpdateProfile(id, username, name string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if err := s.checkUsernameFree(username, id); err != nil {
		return nil, err
	}
	var u model.User
	if err := s.db.Where("id = ?", id).First(&u).Error; err != nil {
		return nil, model.NotFoundErrorFmt("user not found: %s", id)
	}
	u.Username = username
	u.Name = strings.TrimSpace(name)
	if err := s.db.Save(&u).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, model.AlreadyExistsErrorFmt("username already taken: %s", username)
		}
		return nil, errors.Wrap(err, "users: profile update failed")
	}
	u.PasswordHash = ""
	return &u, nil
}

// UpdatePassword hashes and stores a new password for the user
func (s *UsersStorage) UpdatePassword(id, newPassword string) error {
	return s.setPassword(id, newPassword)
}

// ResetPassword sets the user's password to the known default value
func (s *UsersStorage) ResetPassword(id string) error {
	return s.setPassword(id, DefaultResetPassword)
}

func (s *UsersStorage) setPassword(id, password string) error {
	var u model.User
	if err := s.db.Where("id = ?", id).First(&u).Error; err != nil {
		return model.NotFoundErrorFmt("user not found: %s", id)
	}
	hash, err := hashPasswordArgon2id(password, s.params)
	if err != nil {
		return err
	}
	if err := s.db.Model(&model.User{}).Where("id = ?", id).Update("password_hash", hash).Error; err != nil {
		return errors.Wrap(err, "users: password update failed")
	}
	return nil
}

// Delete deletes a user by id. Deleting an unknown id is not an error.
func (s *UsersStorage) Delete(id string) error {
	if id == "" {
		return model.ValidationError("user id is required")
	}
	if err := s.db.Where("id = ?", id).Delete(&model.User{}).Error; err != nil {
		return errors.Wrap(err, "users: delete failed")
	}
	return nil
}

// Authenticate validates username/password and auto-upgrades hash if params changed
func (s *UsersStorage) Authenticate(username, password string) (*model.User, error) {
	var u model.User
	if err := s.db.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, errors.Errorf("invalid credentials")
	}
	ok, err := verifyPasswordArgon2id(u.PasswordHash, password)
	if err != nil || !ok {
		return nil, errors.Errorf("invalid credentials")
	}
	if stored, err := extractArgon2idParams(u.PasswordHash); err == nil && !argon2idParamsEqual(stored, s.params) {
		if newHash, err := hashPasswordArgon2id(password, s.params); err == nil {
			_ = s.db.Model(&model.User{}).Where("id = ?", u.ID).Update("password_hash", newHash).Error
		}
	}
	u.PasswordHash = ""
	return &u, nil
}

// VerifyPassword re-proves a user's current password. Any verification
// failure counts as "not verified", never as an upstream error.
func (s *UsersStorage) VerifyPassword(id, password string) (bool, error) {
	var u model.User
	if err := s.db.Where("id = ?", id).First(&u).Error; err != nil {
		return false, model.NotFoundErrorFmt("user not found: %s", id)
	}
	ok, err := verifyPasswordArgon2id(u.PasswordHash, password)
	if err != nil {
		return false, nil
	}
	return ok, nil
}

// EnsureSuperadmin creates or refreshes the bootstrap superadmin account.
// An existing account with the given username gets its password reset and
// role lifted to superadmin with the full capability set.
func (s *UsersStorage) EnsureSuperadmin(username, name, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if len(username) == 0 || len(password) == 0 {
		return nil, model.ValidationError("username and password are required")
	}
	hash, err := hashPasswordArgon2id(password, s.params)
	if err != nil {
		return nil, err
	}
	var u model.User
	err = s.db.Where("username = ?", username).First(&u).Error
	if err == nil {
		u.PasswordHash = hash
		u.Role = model.RoleSuperadmin
		u.Permissions = append([]string{}, model.AllCapabilities...)
		if name != "" {
			u.Name = strings.TrimSpace(name)
		}
		if err = s.db.Save(&u).Error; err != nil {
			return nil, errors.Wrap(err, "users: bootstrap update failed")
		}
		u.PasswordHash = ""
		return &u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "users: bootstrap lookup failed")
	}
	u = model.User{
		Username:     username,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		Role:         model.RoleSuperadmin,
		Permissions:  append([]string{}, model.AllCapabilities...),
	}
	if err = s.db.Create(&u).Error; err != nil {
		return nil, errors.Wrap(err, "users: bootstrap create failed")
	}
	u.PasswordHash = ""
	return &u, nil
}

// checkUsernameFree errors when another user (id != selfID) holds username.
func (s *UsersStorage) checkUsernameFree(username, selfID string) error {
	var count int64
	if err := s.db.Model(&model.User{}).
		Where("username = ? AND id <> ?", username, selfID).
		Count(&count).Error; err != nil {
		return errors.Wrap(err, "users: username check failed")
	}
	if count > 0 {
		return model.AlreadyExistsErrorFmt("username already taken: %s", username)
	}
	return nil
}

// normalizePermissions trims entries and removes duplicates while keeping
// the stored set non-nil.
func normalizePermissions(perms []string) []string {
	cleaned := make([]string, 0, len(perms))
	for _, p := range perms {
		if p = strings.TrimSpace(p); p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return arrayOperations.Distinct(cleaned)
}
