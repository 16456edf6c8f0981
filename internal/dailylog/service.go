package dailylog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"mellow/internal/pregnancy"
)

const (
	minDate = "0001-01-01"
	maxDate = "9999-12-31"
)

type Service interface {
	Save(ctx context.Context, log DailyLog) (*DailyLog, error)
	Update(ctx context.Context, date string, u Update) (*DailyLog, error)
	Get(ctx context.Context, date string) (*DailyLog, error)
	List(ctx context.Context, from, to string) ([]DailyLog, error)
	RecordAssessment(ctx context.Context, date string, symptoms []string) (*DailyLog, error)

	SaveMeals(ctx context.Context, log MealLog) (*MealLog, error)
	GetMeals(ctx context.Context, date string) (*MealLog, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *zap.Logger, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, logger: logger, now: now}
}

// Save stores log as the single entry for its date.
func (s *service) Save(ctx context.Context, l DailyLog) (*DailyLog, error) {
	date, err := normalizeDate(l.Date)
	if err != nil {
		return nil, err
	}
	l.Date = date
	l.Symptoms = dedupe(l.Symptoms)
	l.Notes = strings.TrimSpace(l.Notes)
	if err := validate(&l); err != nil {
		return nil, err
	}
	l.UpdatedAt = s.now()
	if err := s.repo.Upsert(ctx, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// Update merges u into the log for date, starting from a blank log when
// none exists yet.
func (s *service) Update(ctx context.Context, date string, u Update) (*DailyLog, error) {
	l, err := s.getOrBlank(ctx, date)
	if err != nil {
		return nil, err
	}
	if u.Mood != nil {
		l.Mood = *u.Mood
	}
	if u.Symptoms != nil {
		l.Symptoms = u.Symptoms
	}
	if u.Weight != nil {
		l.Weight = u.Weight
	}
	if u.BloodPressure != nil {
		l.BloodPressure = u.BloodPressure
	}
	if u.Notes != nil {
		l.Notes = *u.Notes
	}
	return s.Save(ctx, *l)
}

func (s *service) Get(ctx context.Context, date string) (*DailyLog, error) {
	d, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, d)
}

// List treats an empty bound as open.
func (s *service) List(ctx context.Context, from, to string) ([]DailyLog, error) {
	lo, hi := minDate, maxDate
	if from != "" {
		d, err := normalizeDate(from)
		if err != nil {
			return nil, err
		}
		lo = d
	}
	if to != "" {
		d, err := normalizeDate(to)
		if err != nil {
			return nil, err
		}
		hi = d
	}
	return s.repo.List(ctx, lo, hi)
}

// RecordAssessment adds assessed symptom names to the log for date,
// keeping anything already recorded.
func (s *service) RecordAssessment(ctx context.Context, date string, symptoms []string) (*DailyLog, error) {
	l, err := s.getOrBlank(ctx, date)
	if err != nil {
		return nil, err
	}
	l.Symptoms = append(l.Symptoms, symptoms...)
	saved, err := s.Save(ctx, *l)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Assessment recorded in daily log",
		zap.String("date", saved.Date),
		zap.Int("symptoms", len(symptoms)),
	)
	return saved, nil
}

func (s *service) SaveMeals(ctx context.Context, m MealLog) (*MealLog, error) {
	date, err := normalizeDate(m.Date)
	if err != nil {
		return nil, err
	}
	m.Date = date
	for _, meal := range m.Meals {
		if meal.FoodID == "" {
			return nil, fmt.Errorf("%w: meal without food", ErrInvalidLog)
		}
		if !meal.MealType.Valid() {
			return nil, fmt.Errorf("%w: meal type %q", ErrInvalidLog, meal.MealType)
		}
	}
	if m.Meals == nil {
		m.Meals = []Meal{}
	}
	m.UpdatedAt = s.now()
	if err := s.repo.UpsertMeals(ctx, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *service) GetMeals(ctx context.Context, date string) (*MealLog, error) {
	d, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}
	return s.repo.GetMeals(ctx, d)
}

func (s *service) getOrBlank(ctx context.Context, date string) (*DailyLog, error) {
	d, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}
	l, err := s.repo.Get(ctx, d)
	if errors.Is(err, ErrNotFound) {
		return &DailyLog{Date: d, Symptoms: []string{}}, nil
	}
	return l, err
}

func validate(l *DailyLog) error {
	if !l.Mood.Valid() {
		return fmt.Errorf("%w: mood %q", ErrInvalidLog, l.Mood)
	}
	if l.Weight != nil && *l.Weight <= 0 {
		return fmt.Errorf("%w: weight must be positive", ErrInvalidLog)
	}
	if bp := l.BloodPressure; bp != nil {
		if bp.Systolic <= 0 || bp.Diastolic <= 0 || bp.Diastolic >= bp.Systolic {
			return fmt.Errorf("%w: blood pressure %d/%d", ErrInvalidLog, bp.Systolic, bp.Diastolic)
		}
	}
	return nil
}

// normalizeDate requires a date; ParseDate alone treats "" as unset.
func normalizeDate(s string) (string, error) {
	t, err := pregnancy.ParseDate(s)
	if err != nil {
		return "", err
	}
	if t == nil {
		return "", fmt.Errorf("%w: date is required", ErrInvalidLog)
	}
	return pregnancy.FormatDate(t), nil
}

func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
