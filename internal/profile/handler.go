package profile

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
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

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProfile(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, p)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req Update
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request")
		return
	}
	p, err := h.svc.UpdateProfile(r.Context(), req)
	if err != nil {
		h.fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, p)
}

func (h *Handler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	var req Update
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request")
		return
	}
	p, err := h.svc.CompleteOnboarding(r.Context(), req)
	if err != nil {
		h.fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, p)
}

func (h *Handler) Timeline(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Timeline(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, t)
}

func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.svc.ListContacts(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, contacts)
}

type AddContactRequest struct {
	Name         string `json:"name"`
	Number       string `json:"number"`
	Relationship string `json:"relationship"`
}

func (h *Handler) AddContact(w http.ResponseWriter, r *http.Request) {
	var req AddContactRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request")
		return
	}
	c, err := h.svc.AddContact(r.Context(), Contact{
		Name:         req.Name,
		Number:       req.Number,
		Relationship: req.Relationship,
	})
	if err != nil {
		h.fail(w, err)
		return
	}
	web.JSON(w, http.StatusCreated, c)
}

func (h *Handler) RemoveContact(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid contact ID")
		return
	}
	if err := h.svc.RemoveContact(r.Context(), id); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		web.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidProfile), errors.Is(err, ErrInvalidContact), errors.Is(err, pregnancy.ErrInvalidDate):
		web.Error(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("Profile request failed", zap.Error(err))
		web.Error(w, http.StatusInternalServerError, "Internal error")
	}
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/profile", h.GetProfile)
	r.Put("/profile", h.UpdateProfile)
	r.Post("/profile/onboarding", h.CompleteOnboarding)
	r.Get("/profile/timeline", h.Timeline)
	r.Get("/contacts", h.ListContacts)
	r.Post("/contacts", h.AddContact)
	r.Delete("/contacts/{id}", h.RemoveContact)
}
