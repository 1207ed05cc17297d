package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkroom-cms/darkroom/storage/model"
)

func addMember(t *testing.T, team *TeamStorage, name string, order int) *model.TeamMember {
	t.Helper()
	m, err := team.Create(
		model.AddTeamMember{
			Name:  name,
			Role:  "Photographer",
			Image: "/" + name + ".jpg",
			Order: &order,
		},
	)
	require.NoError(t, err)
	return m
}

func TestTeamCreateValidation(t *testing.T) {
	team := newTestStorage(t).TeamStorage()

	_, err := team.Create(model.AddTeamMember{Name: "no image", Role: "x"})
	var validationError model.ValidationError
	assert.ErrorAs(t, err, &validationError)
}

func TestTeamListSorted(t *testing.T) {
	team := newTestStorage(t).TeamStorage()

	addMember(t, team, "second", 2)
	addMember(t, team, "first", 1)

	list, err := team.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Name)
	assert.Equal(t, "second", list[1].Name)
}

func TestTeamUpdate(t *testing.T) {
	team := newTestStorage(t).TeamStorage()

	m := addMember(t, team, "old", 1)
	updated, err := team.Update(m.ID, model.AddTeamMember{Role: "Editor"})
	require.NoError(t, err)
	assert.Equal(t, "old", updated.Name)
	assert.Equal(t, "Editor", updated.Role)

	_, err = team.Update("no-such-id", model.AddTeamMember{Name: "x"})
	var notFoundError model.NotFoundError
	assert.ErrorAs(t, err, &notFoundError)
}

func TestTeamDeleteRequiresID(t *testing.T) {
	team := newTestStorage(t).TeamStorage()

	m := addMember(t, team, "doomed", 1)
	require.NoError(t, team.Delete(m.ID))
	// Deleting an id that is already gone is a soft success, but the id
	// parameter itself is mandatory.
	assert.NoError(t, team.Delete(m.ID))
	var validationError model.ValidationError
	assert.ErrorAs(t, team.Delete(""), &validationError)
}

func TestTeamReorder(t *testing.T) {
	team := newTestStorage(t).TeamStorage()

	a := addMember(t, team, "a", 0)
	b := addMember(t, team, "b", 1)

	require.NoError(t, team.Reorder([]string{b.ID, a.ID}))
	list, err := team.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID)
	assert.Equal(t, a.ID, list[1].ID)
}
