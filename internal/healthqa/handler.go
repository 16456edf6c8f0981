package healthqa

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"mellow/internal/platform/web"
)

type Handler struct {
	index *Index
}

func NewHandler(index *Index) *Handler {
	return &Handler{index: index}
}

type SearchResponse struct {
	Query   string  `json:"query"`
	Results []Match `json:"results"`
}

// Search ranks entries for q. An optional trimester (1-3) drops entries
// that do not apply to it before the result cap.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	trimester := 0
	if v := r.URL.Query().Get("trimester"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 3 {
			web.Error(w, http.StatusBadRequest, "trimester must be 1, 2 or 3")
			return
		}
		trimester = n
	}

	results := make([]Match, 0, MaxResults)
	for _, m := range h.index.Rank(q) {
		if trimester != 0 && !m.Entry.AppliesTo(trimester) {
			continue
		}
		results = append(results, m)
		if len(results) == MaxResults {
			break
		}
	}
	web.JSON(w, http.StatusOK, SearchResponse{Query: q, Results: results})
}

func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	e, ok := h.index.Get(chi.URLParam(r, "id"))
	if !ok {
		web.Error(w, http.StatusNotFound, "entry not found")
		return
	}
	web.JSON(w, http.StatusOK, e)
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/health-qa/search", h.Search)
	r.Get("/health-qa/entries/{id}", h.GetEntry)
}
