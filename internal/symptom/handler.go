package symptom

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"mellow/internal/dailylog"
	"mellow/internal/platform/web"
	"mellow/internal/pregnancy"
	"mellow/internal/profile"
)

// LogRecorder stores assessed symptom names in a day's log.
type LogRecorder interface {
	RecordAssessment(ctx context.Context, date string, symptoms []string) (*dailylog.DailyLog, error)
}

type ContactLister interface {
	ListContacts(ctx context.Context) ([]profile.Contact, error)
}

type Handler struct {
	classifier *Classifier
	logs       LogRecorder
	contacts   ContactLister
	logger     *zap.Logger
}

func NewHandler(classifier *Classifier, logs LogRecorder, contacts ContactLister, logger *zap.Logger) *Handler {
	return &Handler{classifier: classifier, logs: logs, contacts: contacts, logger: logger}
}

type CatalogResponse struct {
	Symptoms   []Symptom              `json:"symptoms"`
	BySeverity map[Severity][]Symptom `json:"by_severity"`
}

func (h *Handler) ListSymptoms(w http.ResponseWriter, r *http.Request) {
	catalog := h.classifier.Catalog()
	web.JSON(w, http.StatusOK, CatalogResponse{
		Symptoms:   catalog.Symptoms(),
		BySeverity: catalog.BySeverity(),
	})
}

type AssessRequest struct {
	SymptomIDs []string `json:"symptom_ids"`
	// LogDate, when set, records the selected symptoms in that day's log.
	LogDate string `json:"log_date"`
}

type AssessResponse struct {
	Assessment RiskAssessment     `json:"assessment"`
	Symptoms   []Symptom          `json:"symptoms"`
	Log        *dailylog.DailyLog `json:"log,omitempty"`
}

func (h *Handler) Assess(w http.ResponseWriter, r *http.Request) {
	var req AssessRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request")
		return
	}

	selected := h.classifier.Catalog().Resolve(req.SymptomIDs)
	resp := AssessResponse{
		Assessment: h.classifier.Assess(req.SymptomIDs),
		Symptoms:   selected,
	}

	if req.LogDate != "" && h.logs != nil {
		names := make([]string, len(selected))
		for i, s := range selected {
			names[i] = s.Name
		}
		l, err := h.logs.RecordAssessment(r.Context(), req.LogDate, names)
		if err != nil {
			if errors.Is(err, dailylog.ErrInvalidLog) || errors.Is(err, pregnancy.ErrInvalidDate) {
				web.Error(w, http.StatusBadRequest, err.Error())
				return
			}
			h.logger.Error("Failed to record assessment", zap.Error(err))
			web.Error(w, http.StatusInternalServerError, "Failed to record assessment")
			return
		}
		resp.Log = l
	}

	h.logger.Info("Symptoms assessed",
		zap.String("level", string(resp.Assessment.Level)),
		zap.Int("selected", len(selected)),
	)
	web.JSON(w, http.StatusOK, resp)
}

type EmergencyContactsResponse struct {
	Hotlines []EmergencyContact `json:"hotlines"`
	Personal []profile.Contact  `json:"personal"`
}

func (h *Handler) EmergencyContacts(w http.ResponseWriter, r *http.Request) {
	resp := EmergencyContactsResponse{
		Hotlines: h.classifier.Catalog().EmergencyContacts(),
		Personal: []profile.Contact{},
	}
	if h.contacts != nil {
		personal, err := h.contacts.ListContacts(r.Context())
		if err != nil {
			h.logger.Error("Failed to list contacts", zap.Error(err))
			web.Error(w, http.StatusInternalServerError, "Failed to list contacts")
			return
		}
		resp.Personal = personal
	}
	web.JSON(w, http.StatusOK, resp)
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/symptoms", h.ListSymptoms)
	r.Post("/symptoms/assess", h.Assess)
	r.Get("/emergency-contacts", h.EmergencyContacts)
}
