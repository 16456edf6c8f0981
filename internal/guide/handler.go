package guide

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"mellow/internal/platform/web"
)

type Handler struct {
	library *Library
}

func NewHandler(library *Library) *Handler {
	return &Handler{library: library}
}

func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	web.JSON(w, http.StatusOK, h.library.FilterArticles(r.URL.Query().Get("q")))
}

func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	a, ok := h.library.Article(chi.URLParam(r, "id"))
	if !ok {
		web.Error(w, http.StatusNotFound, "article not found")
		return
	}
	web.JSON(w, http.StatusOK, a)
}

// ListFoods returns the food list grouped by category.
func (h *Handler) ListFoods(w http.ResponseWriter, r *http.Request) {
	web.JSON(w, http.StatusOK, h.library.FoodsByCategory(r.URL.Query().Get("q")))
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/guide/articles", h.ListArticles)
	r.Get("/guide/articles/{id}", h.GetArticle)
	r.Get("/guide/foods", h.ListFoods)
}
