package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkroom-cms/darkroom/storage/model"
)

func TestUsersCreateAndAuthenticate(t *testing.T) {
	users := newTestStorage(t).UsersStorage()

	created, err := users.Create("alice", "Alice", "s3cret", model.RoleAdmin, []string{model.CapabilityManageGallery})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Empty(t, created.PasswordHash, "hash must never leave storage")

	u, err := users.Authenticate("alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)
	assert.Equal(t, model.RoleAdmin, u.Role)

	_, err = users.Authenticate("alice", "wrong")
	assert.Error(t, err)
	_, err = users.Authenticate("nobody", "s3cret")
	assert.Error(t, err)
}

func TestUsersGetByUsername(t *testing.T) {
	users := newTestStorage(t).UsersStorage()

	created, err := users.Create("alice", "Alice", "pw", model.RoleAdmin, nil)
	require.NoError(t, err)

	u, err := users.GetByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)
	assert.Empty(t, u.PasswordHash)

	_, err = users.GetByUsername("nobody")
	var notFoundError model.NotFoundError
	assert.ErrorAs(t, err, &notFoundError)
}

func TestUsersCreateDuplicateUsername(t *testing.T) {
	users := newTestStorage(t).UsersStorage()

	_, err := users.Create("alice", "", "pw", "", nil)
	require.NoError(t, err)
	_, err = users.Create("alice", "", "pw2", "", nil)
	require.Error(t, err)
	var alreadyExistsError model.AlreadyExistsError
	assert.ErrorAs(t, err, &alreadyExistsError)
}

func TestUsersCreateValidation(t *testing.T) {
	users := newTestStorage(t).UsersStorage()

	_, err := users.Create("", "", "pw", "", nil)
	var validationError model.ValidationError
	assert.ErrorAs(t, err, &validationError)

	_, err = users.Create("bob", "", "", "", nil)
	assert.ErrorAs(t, err, &validationError)

	_, err = users.Create("bob", "", "pw", "editor", nil)
	assert.ErrorAs(t, err, &validationError)
}

func TestUsersPermissionsDeduplicated(t *testing.T) {
	users := newTestStorage(t).UsersStorage()

	u, err := users.Create(
		"alice", "", "pw", model.RoleAdmin,
		[]string{model.CapabilityManageGallery, model.CapabilityManageGallery, " ", model.CapabilityManageContent},
	)
	require.NoError(t, err)
	assert.Len(t, u.Permissions, 2)
	assert.Contains(t, u.Permissions, model.CapabilityManageGallery)
	assert.Contains(t, u.Permissions, model.CapabilityManageContent)
}

func TestUsersUpdatePartial(t *testing.T) {
	users := newTestStorage(t).UsersStorage()

	u, err := users.Create("alice", "Alice", "pw", model.RoleAdmin, nil)
	require.NoError(t, err)

	name := "Alice B"
	role := model.RoleSuperadmin
	updated, err := users.Update(u.ID, model.UserUpdate{Name: &name, Role: &role})
	require.NoError(t, err)
	assert.Equal(t, "alice", updated.Username, "unset fields stay untouched")
	assert.Equal(t, "Alice B", updated.Name)
	assert.Equal(t, model.RoleSuperadmin, updated.Role)

	_, err = users.Update("no-such-id", model.UserUpdate{Name: &name})
	var notFoundError model.NotFoundError
	assert.ErrorAs(t, err, &notFoundError)
}

func TestUsersUpdateUsernameConflict(t *testing.T) {
	users := newTestStorage(t).UsersStorage()

	_, err := users.Create("alice", "", "pw", "", nil)
	require.NoError(t, err)
	bob, err := users.Create("bob", "", "pw", "", nil)
	require.NoError(t, err)

	taken := "alice"
	_, err = users.Update(bob.ID, model.UserUpdate{Username: &taken})
	var alreadyExistsError model.AlreadyExistsError
	assert.ErrorAs(t, err, &alreadyExistsError)

	// Setting the username to its current value must not conflict with self.
	same := "bob"
	_, err = users.Update(bob.ID, model.UserUpdate{Username: &same})
	assert.NoError(t, err)
}

func TestUsersUpdatePasswordChangesLogin(t *testing.T) {
	users := newTestStorage(t).UsersStorage()

	u, err := users.Create("alice", "", "oldpw", "", nil)
	require.NoError(t, err)

	require.NoError(t, users.UpdatePassword(u.ID, "newpw"))
	_, err = users.Authenticate("alice", "oldpw")
	assert.Error(t, err)
	_, err = users.Authenticate("alice", "newpw")
	assert.NoError(t, err)
}

func TestUsersResetPassword(t *testing.T) {
	users := newTestStorage(t).UsersStorage()

	u, err := users.Create("alice", "", "somepw", "", nil)
	require.NoError(t, err)

	require.NoError(t, users.ResetPassword(u.ID))
	_, err = users.Authenticate("alice", DefaultResetPassword)
	assert.NoError(t, err)

	var notFoundError model.NotFoundError
	assert.ErrorAs(t, users.ResetPassword("no-such-id"), &notFoundError)
}

func TestUsersVerifyPassword(t *testing.T) {
	users := newTestStorage(t).UsersStorage()

	u, err := users.Create("alice", "", "pw", "", nil)
	require.NoError(t, err)

	ok, err := users.VerifyPassword(u.ID, "pw")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = users.VerifyPassword(u.ID, "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUsersDeleteSoftSuccess(t *testing.T) {
	users := newTestStorage(t).UsersStorage()

	u, err := users.Create("alice", "", "pw", "", nil)
	require.NoError(t, err)
	require.NoError(t, users.Delete(u.ID))
	// Repeating the delete is fine, only an empty id is rejected.
	assert.NoError(t, users.Delete(u.ID))
	var validationError model.ValidationError
	assert.ErrorAs(t, users.Delete(""), &validationError)
}

func TestUsersListStripsHashes(t *testing.T) {
	users := newTestStorage(t).UsersStorage()

	_, err := users.Create("alice", "", "pw", "", nil)
	require.NoError(t, err)
	_, err = users.Create("bob", "", "pw", "", nil)
	require.NoError(t, err)

	list, err := users.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, u := range list {
		assert.Empty(t, u.PasswordHash)
	}
}

func TestEnsureSuperadmin(t *testing.T) {
	users := newTestStorage(t).UsersStorage()

	u, err := users.EnsureSuperadmin("root", "Root", "initialpw")
	require.NoError(t, err)
	assert.Equal(t, model.RoleSuperadmin, u.Role)
	assert.ElementsMatch(t, model.AllCapabilities, u.Permissions)

	// Re-running refreshes the password and keeps a single account.
	_, err = users.EnsureSuperadmin("root", "", "rotatedpw")
	require.NoError(t, err)
	list, err := users.List()
	require.NoError(t, err)
	assert.Len(t, list, 1)
	_, err = users.Authenticate("root", "rotatedpw")
	assert.NoError(t, err)
	_, err = users.Authenticate("root", "initialpw")
	assert.Error(t, err)
}

func TestAuthenticateUpgradesHashParams(t *testing.T) {
	s := newTestStorage(t)
	users := s.UsersStorage()

	u, err := users.Create("alice", "", "pw", "", nil)
	require.NoError(t, err)

	// Same storage with different hashing params must still authenticate
	// and transparently rewrite the stored hash.
	stronger := *users
	stronger.params.Time = 2
	_, err = stronger.Authenticate("alice", "pw")
	require.NoError(t, err)

	var raw model.User
	require.NoError(t, s.db.Where("id = ?", u.ID).First(&raw).Error)
	params, err := extractArgon2idParams(raw.PasswordHash)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), params.Time)
}
