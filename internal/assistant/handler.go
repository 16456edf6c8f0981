package assistant

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"mellow/internal/platform/web"
)

type Handler struct {
	svc    Service
	logger *zap.Logger
}

func NewHandler(svc Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// MessageView is a message as shown in the chat: sources are attached but
// only the top citation is surfaced.
type MessageView struct {
	Message
	Citation string `json:"citation,omitempty"`
}

type ConversationView struct {
	ID        uuid.UUID     `json:"id"`
	History   []MessageView `json:"history"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func NewConversationView(c *Conversation) ConversationView {
	history := make([]MessageView, len(c.History))
	for i, m := range c.History {
		history[i] = MessageView{Message: m, Citation: m.Citation()}
	}
	return ConversationView{
		ID:        c.ID,
		History:   history,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type SendMessageRequest struct {
	Text string `json:"text"`
}

func (h *Handler) StartConversation(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.StartConversation(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	web.JSON(w, http.StatusCreated, NewConversationView(c))
}

func (h *Handler) GetConversation(w http.ResponseWriter, r *http.Request) {
	id, ok := h.conversationID(w, r)
	if !ok {
		return
	}
	c, err := h.svc.GetConversation(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, NewConversationView(c))
}

// SendMessage answers once the reply is stored. A client that goes away
// before then takes the pending reply with it.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.conversationID(w, r)
	if !ok {
		return
	}
	var req SendMessageRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request")
		return
	}

	c, err := h.svc.SendMessage(r.Context(), id, req.Text)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			h.logger.Debug("Client left before reply", zap.String("conversation_id", id.String()))
			return
		}
		h.fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, NewConversationView(c))
}

func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.conversationID(w, r)
	if !ok {
		return
	}
	if err := h.svc.ClearHistory(r.Context(), id); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) conversationID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid conversation ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		web.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrEmptyMessage):
		web.Error(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("Conversation request failed", zap.Error(err))
		web.Error(w, http.StatusInternalServerError, "Processing failed")
	}
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/conversations", h.StartConversation)
	r.Get("/conversations/{id}", h.GetConversation)
	r.Post("/conversations/{id}/messages", h.SendMessage)
	r.Delete("/conversations/{id}/messages", h.ClearHistory)
}
