package dailylog

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"mellow/internal/platform/web"
	"mellow/internal/pregnancy"
)

type Handler struct {
	svc    Service
	logger *zap.Logger
}

func NewHandler(svc Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) GetLog(w http.ResponseWriter, r *http.Request) {
	l, err := h.svc.Get(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		h.fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, l)
}

// PutLog replaces the whole log for the date in the path.
func (h *Handler) PutLog(w http.ResponseWriter, r *http.Request) {
	var req DailyLog
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request")
		return
	}
	req.Date = chi.URLParam(r, "date")
	l, err := h.svc.Save(r.Context(), req)
	if err != nil {
		h.fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, l)
}

func (h *Handler) PatchLog(w http.ResponseWriter, r *http.Request) {
	var req Update
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request")
		return
	}
	l, err := h.svc.Update(r.Context(), chi.URLParam(r, "date"), req)
	if err != nil {
		h.fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, l)
}

func (h *Handler) ListLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	logs, err := h.svc.List(r.Context(), q.Get("from"), q.Get("to"))
	if err != nil {
		h.fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, logs)
}

func (h *Handler) GetMeals(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.GetMeals(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		h.fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, m)
}

func (h *Handler) PutMeals(w http.ResponseWriter, r *http.Request) {
	var req MealLog
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request")
		return
	}
	req.Date = chi.URLParam(r, "date")
	m, err := h.svc.SaveMeals(r.Context(), req)
	if err != nil {
		h.fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, m)
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		web.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidLog), errors.Is(err, pregnancy.ErrInvalidDate):
		web.Error(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("Daily log request failed", zap.Error(err))
		web.Error(w, http.StatusInternalServerError, "Internal error")
	}
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/logs", h.ListLogs)
	r.Get("/logs/{date}", h.GetLog)
	r.Put("/logs/{date}", h.PutLog)
	r.Patch("/logs/{date}", h.PatchLog)
	r.Get("/meals/{date}", h.GetMeals)
	r.Put("/meals/{date}", h.PutMeals)
}
