package http

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placify-resume/internal/model"
	"placify-resume/internal/usecase"
)

type fakeCapturer struct{}

func (fakeCapturer) CapturePNG(ctx context.Context, html string) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 20, 40))); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func testApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	factory := func(userID uuid.UUID) *usecase.Builder {
		return usecase.NewBuilder(nil)
	}
	NewHandler(factory, usecase.NewExporter(fakeCapturer{})).Register(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, userID string, body interface{}) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestGetResumeIssuesSession(t *testing.T) {
	app := testApp(t)

	resp := doJSON(t, app, http.MethodGet, "/resume", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	issued := resp.Header.Get("X-User-ID")
	_, err := uuid.Parse(issued)
	assert.NoError(t, err, "response should carry a session id")

	var body struct {
		Document   model.ResumeDocument   `json:"document"`
		Validation model.ValidationResult `json:"validation"`
	}
	decode(t, resp, &body)
	assert.False(t, body.Validation.Valid)
	assert.Empty(t, body.Document.Personal.Name)
}

func TestResumeEditFlow(t *testing.T) {
	app := testApp(t)
	user := uuid.NewString()

	resp := doJSON(t, app, http.MethodPut, "/resume/personal", user, map[string]string{
		"name":  "John Doe",
		"email": "john@example.com",
		"phone": "+1 555-123-4567",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/resume/experience/entries", user, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID string `json:"id"`
	}
	decode(t, resp, &created)
	require.NotEmpty(t, created.ID)

	resp = doJSON(t, app, http.MethodPatch, "/resume/experience/entries/"+created.ID, user,
		map[string]string{"field": "company", "value": "TechCorp"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPatch, "/resume/experience/entries/"+created.ID+"/current", user,
		map[string]bool{"current": true})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var state struct {
		Document model.ResumeDocument `json:"document"`
	}
	decode(t, resp, &state)
	require.Len(t, state.Document.Experience, 1)
	assert.Equal(t, "TechCorp", state.Document.Experience[0].Company)
	assert.True(t, state.Document.Experience[0].Current)
	assert.Empty(t, state.Document.Experience[0].EndDate)
}

func TestSkillRoutes(t *testing.T) {
	app := testApp(t)
	user := uuid.NewString()

	doJSON(t, app, http.MethodPost, "/resume/skills", user, map[string]string{"name": "React"})
	resp := doJSON(t, app, http.MethodPost, "/resume/skills", user, map[string]string{"name": "React"})

	var body struct {
		Skills []string `json:"skills"`
	}
	decode(t, resp, &body)
	assert.Equal(t, []string{"React"}, body.Skills)

	resp = doJSON(t, app, http.MethodDelete, "/resume/skills/React", user, nil)
	decode(t, resp, &body)
	assert.Empty(t, body.Skills)
}

func TestUnknownListIs404(t *testing.T) {
	app := testApp(t)
	resp := doJSON(t, app, http.MethodPost, "/resume/hobbies/entries", uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInvalidUserIDRejected(t *testing.T) {
	app := testApp(t)
	resp := doJSON(t, app, http.MethodGet, "/resume", "not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExportRejectsInvalidDocument(t *testing.T) {
	app := testApp(t)
	user := uuid.NewString()

	resp := doJSON(t, app, http.MethodPost, "/resume/export", user, map[string]string{"fileName": "cv"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	decode(t, resp, &body)
	assert.Contains(t, body.Errors, "name")
	assert.Contains(t, body.Errors, "email")
	assert.Contains(t, body.Errors, "phone")
}

func TestExportReturnsPDFAttachment(t *testing.T) {
	app := testApp(t)
	user := uuid.NewString()

	doJSON(t, app, http.MethodPut, "/resume/personal", user, map[string]string{
		"name":  "John Doe",
		"email": "john@example.com",
		"phone": "+1 555-123-4567",
	})

	resp := doJSON(t, app, http.MethodPost, "/resume/export", user, map[string]string{"fileName": "cv"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, strings.Contains(resp.Header.Get("Content-Disposition"), "cv.pdf"))

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}
