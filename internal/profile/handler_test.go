package profile

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mellow/internal/pregnancy"
)

func newTestRouter(t *testing.T) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(newTestService(t), zap.NewNop()))
	return r
}

func serve(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestHandler_OnboardingAndTimeline(t *testing.T) {
	router := newTestRouter(t)

	rec := serve(router, http.MethodPost, "/profile/onboarding", `{"name":"Ana","due_date":"2026-06-01"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var p Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.True(t, p.OnboardingCompleted)

	rec = serve(router, http.MethodGet, "/profile/timeline", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var tl pregnancy.Timeline
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tl))
	require.NotNil(t, tl.GestationalAge)
	assert.Equal(t, 26, tl.GestationalAge.Week)
	assert.Equal(t, 2, tl.Trimester)
}

func TestHandler_UpdateProfileValidation(t *testing.T) {
	router := newTestRouter(t)

	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodPut, "/profile", `{"due_date":"June 1st"}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodPut, "/profile", `{"reminder_time":"25:00"}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodPut, "/profile", `{"unknown":true}`).Code)

	rec := serve(router, http.MethodPut, "/profile", `{"reminder_time":"07:30"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"reminder_time":"07:30"`)
}

func TestHandler_Contacts(t *testing.T) {
	router := newTestRouter(t)

	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodPost, "/contacts", `{"name":"Sam"}`).Code)

	rec := serve(router, http.MethodPost, "/contacts", `{"name":"Sam","number":"555-0100","relationship":"partner"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var c Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))

	rec = serve(router, http.MethodGet, "/contacts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].ID)

	assert.Equal(t, http.StatusNoContent, serve(router, http.MethodDelete, "/contacts/"+c.ID.String(), "").Code)
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodDelete, "/contacts/"+c.ID.String(), "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodDelete, "/contacts/not-a-uuid", "").Code)
}
