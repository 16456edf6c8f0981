package report

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"mellow/internal/dailylog"
	"mellow/internal/platform/web"
	"mellow/internal/pregnancy"
	"mellow/internal/profile"
)

// DefaultWindowDays is how many days of logs a report covers.
const DefaultWindowDays = 30

type ProfileReader interface {
	GetProfile(ctx context.Context) (*profile.Profile, error)
	Timeline(ctx context.Context) (pregnancy.Timeline, error)
	ListContacts(ctx context.Context) ([]profile.Contact, error)
}

type LogReader interface {
	List(ctx context.Context, from, to string) ([]dailylog.DailyLog, error)
}

type Handler struct {
	svc      *Service
	profiles ProfileReader
	logs     LogReader
	now      func() time.Time
	logger   *zap.Logger
}

func NewHandler(svc *Service, profiles ProfileReader, logs LogReader, now func() time.Time, logger *zap.Logger) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{svc: svc, profiles: profiles, logs: logs, now: now, logger: logger}
}

func (h *Handler) PDF(w http.ResponseWriter, r *http.Request) {
	sum, err := h.summary(r)
	if err != nil {
		h.fail(w, err)
		return
	}
	data, err := h.svc.BuildPDF(r.Context(), sum)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.send(w, data, "application/pdf", fmt.Sprintf("mellow-summary-%s.pdf", sum.GeneratedAt.Format("20060102")))
}

func (h *Handler) Spreadsheet(w http.ResponseWriter, r *http.Request) {
	sum, err := h.summary(r)
	if err != nil {
		h.fail(w, err)
		return
	}
	data, err := h.svc.BuildSpreadsheet(r.Context(), sum.Logs)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.send(w, data, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		fmt.Sprintf("mellow-logs-%s.xlsx", sum.GeneratedAt.Format("20060102")))
}

func (h *Handler) summary(r *http.Request) (Summary, error) {
	ctx := r.Context()
	days := DefaultWindowDays
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Summary{}, errBadWindow
		}
		days = n
	}

	now := h.now()
	p, err := h.profiles.GetProfile(ctx)
	if err != nil {
		return Summary{}, err
	}
	tl, err := h.profiles.Timeline(ctx)
	if err != nil {
		return Summary{}, err
	}
	contacts, err := h.profiles.ListContacts(ctx)
	if err != nil {
		return Summary{}, err
	}
	from := now.AddDate(0, 0, -(days - 1))
	logs, err := h.logs.List(ctx, pregnancy.FormatDate(&from), pregnancy.FormatDate(&now))
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		GeneratedAt: now,
		Profile:     p,
		Timeline:    tl,
		Logs:        logs,
		Contacts:    contacts,
	}, nil
}

func (h *Handler) send(w http.ResponseWriter, data []byte, contentType, name string) {
	if _, err := h.svc.Save(name, data); err != nil {
		// the download still goes out
		h.logger.Warn("Failed to save report copy", zap.String("name", name), zap.Error(err))
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Write(data)
}

var errBadWindow = errors.New("days must be a positive integer")

func (h *Handler) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, errBadWindow) {
		web.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	h.logger.Error("Report generation failed", zap.Error(err))
	web.Error(w, http.StatusInternalServerError, "Report generation failed")
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/report.pdf", h.PDF)
	r.Get("/report.xlsx", h.Spreadsheet)
}
