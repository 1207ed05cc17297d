package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestContentSetAndGetValue(t *testing.T) {
	content := newTestStorage(t).ContentStorage()

	require.NoError(t, content.Set("hero_title", datatypes.JSON(`"Welcome"`)))
	v, err := content.GetValue("hero_title")
	require.NoError(t, err)
	assert.JSONEq(t, `"Welcome"`, string(v))
}

func TestContentGetValueMissing(t *testing.T) {
	content := newTestStorage(t).ContentStorage()

	v, err := content.GetValue("nope")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestContentSetOverwrites(t *testing.T) {
	content := newTestStorage(t).ContentStorage()

	require.NoError(t, content.Set("about", datatypes.JSON(`"v1"`)))
	require.NoError(t, content.Set("about", datatypes.JSON(`"v2"`)))

	v, err := content.GetValue("about")
	require.NoError(t, err)
	assert.JSONEq(t, `"v2"`, string(v))

	m, err := content.Map()
	require.NoError(t, err)
	assert.Len(t, m, 1)
}

func TestContentSetAnyStructured(t *testing.T) {
	content := newTestStorage(t).ContentStorage()

	require.NoError(t, content.SetAny("socials", map[string]string{"instagram": "@darkroom"}))
	v, err := content.GetValue("socials")
	require.NoError(t, err)
	assert.JSONEq(t, `{"instagram":"@darkroom"}`, string(v))
}

func TestContentMapAndDelete(t *testing.T) {
	content := newTestStorage(t).ContentStorage()

	require.NoError(t, content.Set("a", datatypes.JSON(`1`)))
	require.NoError(t, content.Set("b", datatypes.JSON(`2`)))

	m, err := content.Map()
	require.NoError(t, err)
	assert.Len(t, m, 2)

	require.NoError(t, content.Delete("a"))
	// Deleting a missing key is fine.
	assert.NoError(t, content.Delete("a"))

	m, err = content.Map()
	require.NoError(t, err)
	assert.Len(t, m, 1)
}
