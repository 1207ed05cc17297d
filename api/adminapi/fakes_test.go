package adminapi

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/darkroom-cms/darkroom/storage/model"
)

// In-memory store fakes so handler behavior can be tested without a
// database.

type fakeUsers struct {
	users     map[string]*model.User
	passwords map[string]string
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		users:     make(map[string]*model.User),
		passwords: make(map[string]string),
	}
}

func (f *fakeUsers) add(username string, role model.Role, permissions []string, password string) *model.User {
	u := &model.User{
		ID:          uuid.NewString(),
		Username:    username,
		Role:        role,
		Permissions: permissions,
	}
	f.users[u.ID] = u
	f.passwords[u.ID] = password
	return u
}

func (f *fakeUsers) byUsername(username string) *model.User {
	for _, u := range f.users {
		if u.Username == username {
			return u
		}
	}
	return nil
}

func (f *fakeUsers) List() ([]model.User, error) {
	list := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		list = append(list, *u)
	}
	return list, nil
}

func (f *fakeUsers) GetByUsername(username string) (*model.User, error) {
	if u := f.byUsername(username); u != nil {
		return u, nil
	}
	return nil, model.NotFoundError("user not found")
}

func (f *fakeUsers) GetByID(id string) (*model.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, model.NotFoundError("user not found")
}

func (f *fakeUsers) Create(username, name, password string, role model.Role, permissions []string) (
	*model.User, error,
) {
	if f.byUsername(username) != nil {
		return nil, model.AlreadyExistsError("user already exists")
	}
	u := f.add(username, role, permissions, password)
	u.Name = name
	return u, nil
}

func (f *fakeUsers) Update(id string, update model.UserUpdate) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, model.NotFoundError("user not found")
	}
	if update.Username != nil {
		u.Username = *update.Username
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Role != nil {
		u.Role = *update.Role
	}
	if update.Permissions != nil {
		u.Permissions = update.Permissions
	}
	if update.Password != nil {
		f.passwords[id] = *update.Password
	}
	return u, nil
}

func (f *fakeUsers) UpdateProfile(id, username, name string) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, model.NotFoundError("user not found")
	}
	if other := f.byUsername(username); other != nil && other.ID != id {
		return nil, model.AlreadyExistsError("username already taken")
	}
	u.Username = username
	u.Name = name
	return u, nil
}

func (f *fakeUsers) UpdatePassword(id, newPassword string) error {
	if _, ok := f.users[id]; !ok {
		return model.NotFoundError("user not found")
	}
	f.passwords[id] = newPassword
	return nil
}

func (f *fakeUsers) ResetPassword(id string) error {
	if _, ok := f.users[id]; !ok {
		return model.NotFoundError("user not found")
	}
	f.passwords[id] = "alpha123"
	return nil
}

func (f *fakeUsers) Delete(id string) error {
	delete(f.users, id)
	delete(f.passwords, id)
	return nil
}

func (f *fakeUsers) Authenticate(username, password string) (*model.User, error) {
	u := f.byUsername(username)
	if u == nil || f.passwords[u.ID] != password {
		return nil, model.ValidationError("invalid credentials")
	}
	return u, nil
}

func (f *fakeUsers) VerifyPassword(id, password string) (bool, error) {
	if _, ok := f.users[id]; !ok {
		return false, model.NotFoundError("user not found")
	}
	return f.passwords[id] == password, nil
}

func (f *fakeUsers) EnsureSuperadmin(username, name, password string) (*model.User, error) {
	if u := f.byUsername(username); u != nil {
		u.Role = model.RoleSuperadmin
		f.passwords[u.ID] = password
		return u, nil
	}
	u := f.add(username, model.RoleSuperadmin, model.AllCapabilities, password)
	u.Name = name
	return u, nil
}

type fakePhotos struct {
	photos []model.Photo
	seeded int
}

func (f *fakePhotos) List() ([]model.Photo, error) {
	return f.photos, nil
}

func (f *fakePhotos) Page(page, limit int) ([]model.Photo, model.Pagination, error) {
	return f.photos, model.Pagination{Current: page, Pages: 1, Total: int64(len(f.photos))}, nil
}

func (f *fakePhotos) Create(add model.AddPhoto) (*model.Photo, error) {
	p := model.Photo{
		ID:           uuid.NewString(),
		Src:          add.Src,
		Title:        add.Title,
		Photographer: add.Photographer,
	}
	if add.Order != nil {
		p.Order = *add.Order
	}
	f.photos = append(f.photos, p)
	return &p, nil
}

func (f *fakePhotos) Update(id string, update model.AddPhoto) (*model.Photo, error) {
	for i := range f.photos {
		if f.photos[i].ID == id {
			if update.Title != "" {
				f.photos[i].Title = update.Title
			}
			return &f.photos[i], nil
		}
	}
	return nil, model.NotFoundError("photo not found")
}

func (f *fakePhotos) Delete(id string) error {
	for i := range f.photos {
		if f.photos[i].ID == id {
			f.photos = append(f.photos[:i], f.photos[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakePhotos) Reorder(orderedIDs []string) error {
	positions := make(map[string]int, len(orderedIDs))
	for i, id := range orderedIDs {
		positions[id] = i
	}
	for i := range f.photos {
		if pos, ok := positions[f.photos[i].ID]; ok {
			f.photos[i].Order = pos
		}
	}
	return nil
}

func (f *fakePhotos) Seed() error {
	f.seeded++
	return nil
}

type fakeTeam struct {
	members []model.TeamMember
}

func (f *fakeTeam) List() ([]model.TeamMember, error) {
	return f.members, nil
}

func (f *fakeTeam) Create(add model.AddTeamMember) (*model.TeamMember, error) {
	m := model.TeamMember{ID: uuid.NewString(), Name: add.Name, Role: add.Role, Image: add.Image}
	f.members = append(f.members, m)
	return &m, nil
}

func (f *fakeTeam) Update(id string, update model.AddTeamMember) (*model.TeamMember, error) {
	for i := range f.members {
		if f.members[i].ID == id {
			if update.Name != "" {
				f.members[i].Name = update.Name
			}
			return &f.members[i], nil
		}
	}
	return nil, model.NotFoundError("team member not found")
}

func (f *fakeTeam) Delete(id string) error {
	for i := range f.members {
		if f.members[i].ID == id {
			f.members = append(f.members[:i], f.members[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeTeam) Reorder(orderedIDs []string) error {
	return nil
}

type fakeContent struct {
	entries map[string]datatypes.JSON
}

func newFakeContent() *fakeContent {
	return &fakeContent{entries: make(map[string]datatypes.JSON)}
}

func (f *fakeContent) GetValue(key string) (datatypes.JSON, error) {
	return f.entries[key], nil
}

func (f *fakeContent) Map() (map[string]datatypes.JSON, error) {
	return f.entries, nil
}

func (f *fakeContent) Set(key string, value datatypes.JSON) error {
	f.entries[key] = value
	return nil
}

func (f *fakeContent) SetAny(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	f.entries[key] = data
	return nil
}

func (f *fakeContent) Delete(key string) error {
	delete(f.entries, key)
	return nil
}
