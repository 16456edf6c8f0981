package healthqa

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(defaultIndex(t)))
	return r
}

func TestHandler_Search(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health-qa/search?q="+url.QueryEscape("papaya safe to eat"), nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Results)
	assert.LessOrEqual(t, len(resp.Results), MaxResults)
	assert.Equal(t, "papaya-safety", resp.Results[0].Entry.ID)
	assert.Positive(t, resp.Results[0].Score)
}

func TestHandler_SearchTrimesterFilter(t *testing.T) {
	router := newTestRouter(t)

	for _, trimester := range []string{"1", "2", "3"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health-qa/search?q=exercise+safe+pain&trimester="+trimester, nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp SearchResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.LessOrEqual(t, len(resp.Results), MaxResults)
		for _, m := range resp.Results {
			n := int(trimester[0] - '0')
			assert.True(t, m.Entry.AppliesTo(n), m.Entry.ID)
		}
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health-qa/search?q=papaya&trimester=4", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_EmptyQuery(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health-qa/search?q=is+it", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"query":"is it","results":[]}`, rec.Body.String())
}

func TestHandler_GetEntry(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health-qa/entries/papaya-safety", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health-qa/entries/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
