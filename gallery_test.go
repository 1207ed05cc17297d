package darkroom

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/darkroom-cms/darkroom/storage/model"
)

type stubContent struct {
	entries map[string]datatypes.JSON
}

func (s *stubContent) GetValue(key string) (datatypes.JSON, error) {
	return s.entries[key], nil
}

func (s *stubContent) Map() (map[string]datatypes.JSON, error) {
	return s.entries, nil
}

func (s *stubContent) Set(key string, value datatypes.JSON) error {
	s.entries[key] = value
	return nil
}

func (s *stubContent) SetAny(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.entries[key] = data
	return nil
}

func (s *stubContent) Delete(key string) error {
	delete(s.entries, key)
	return nil
}

func contentApp(entries map[string]datatypes.JSON) *fiber.App {
	app := fiber.New()
	registerPublicRoutes(app, model.Backends{Content: &stubContent{entries: entries}}, nil)
	return app
}

type contentEnvelope struct {
	Success bool                       `json:"success"`
	Data    map[string]json.RawMessage `json:"data"`
}

func TestPublicContentByKey(t *testing.T) {
	app := contentApp(map[string]datatypes.JSON{"hero": datatypes.JSON(`{"title":"Welcome"}`)})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/content?key=hero", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope contentEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.True(t, envelope.Success)
	assert.JSONEq(t, `{"title":"Welcome"}`, string(envelope.Data["hero"]))
}

func TestPublicContentMissingKey(t *testing.T) {
	app := contentApp(map[string]datatypes.JSON{})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/content?key=nope", nil), -1)
	require.NoError(t, err)
	// An unknown key yields a successful response carrying a null value.
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope contentEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, "null", string(envelope.Data["nope"]))
}
