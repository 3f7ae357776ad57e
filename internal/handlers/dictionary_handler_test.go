package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"recruitops/pipeline-api/internal/models"
)

type stubDictionaryRepo struct {
	entry     models.DictionaryEntry
	lastPatch map[string]interface{}
}

func (s *stubDictionaryRepo) ListByCategory(_ context.Context, category string) ([]models.DictionaryEntry, error) {
	if s.entry.Category == category {
		return []models.DictionaryEntry{s.entry}, nil
	}
	return nil, nil
}

func (s *stubDictionaryRepo) FindByID(_ context.Context, id uuid.UUID) (*models.DictionaryEntry, error) {
	if s.entry.ID == id {
		entry := s.entry
		return &entry, nil
	}
	return nil, models.ErrDictionaryEntryNotFound
}

func (s *stubDictionaryRepo) Create(_ context.Context, entry *models.DictionaryEntry) error {
	s.entry = *entry
	return nil
}

func (s *stubDictionaryRepo) Update(_ context.Context, _ uuid.UUID, patch map[string]interface{}) error {
	s.lastPatch = patch
	return nil
}

func (s *stubDictionaryRepo) Delete(_ context.Context, _ uuid.UUID) error {
	return nil
}

type stubResolver struct {
	invalidated []string
}

func (s *stubResolver) ResolveValue(_ context.Context, _, name string) (string, error) {
	return name, nil
}

func (s *stubResolver) ResolveDefault(_ context.Context, _ string) (string, error) {
	return "", models.ErrMissingDictionaryDefault
}

func (s *stubResolver) ResolveAll(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

func (s *stubResolver) Invalidate(categories ...string) {
	s.invalidated = append(s.invalidated, categories...)
}

func dictionaryTestApp(repo *stubDictionaryRepo, resolver *stubResolver) *fiber.App {
	handler := NewDictionaryHandler(repo, resolver, zap.NewNop())
	app := fiber.New()
	app.Put("/dictionaries/:id", handler.HandleUpdate)
	return app
}

func putJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestDictionaryUpdate_OmittedDisplayOrderKept(t *testing.T) {
	repo := &stubDictionaryRepo{entry: models.DictionaryEntry{
		ID:           uuid.New(),
		Category:     models.CategoryInterviewMethod,
		Name:         "onsite",
		DisplayOrder: 3,
	}}
	resolver := &stubResolver{}
	app := dictionaryTestApp(repo, resolver)

	resp := putJSON(t, app, "/dictionaries/"+repo.entry.ID.String(), fiber.Map{"name": "on-site"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "on-site", repo.lastPatch["name"])
	// A rename must not reset the order to 0 and shuffle the category
	// default.
	_, patched := repo.lastPatch["display_order"]
	assert.False(t, patched)
	assert.Equal(t, []string{models.CategoryInterviewMethod}, resolver.invalidated)
}

func TestDictionaryUpdate_ExplicitZeroOrderApplied(t *testing.T) {
	repo := &stubDictionaryRepo{entry: models.DictionaryEntry{
		ID:           uuid.New(),
		Category:     models.CategoryInterviewMethod,
		Name:         "onsite",
		DisplayOrder: 3,
	}}
	app := dictionaryTestApp(repo, &stubResolver{})

	resp := putJSON(t, app, "/dictionaries/"+repo.entry.ID.String(), fiber.Map{"display_order": 0})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, repo.lastPatch["display_order"])
}
