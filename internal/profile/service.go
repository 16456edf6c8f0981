package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mellow/internal/pregnancy"
)

type Service interface {
	GetProfile(ctx context.Context) (*Profile, error)
	UpdateProfile(ctx context.Context, u Update) (*Profile, error)
	CompleteOnboarding(ctx context.Context, u Update) (*Profile, error)
	Timeline(ctx context.Context) (pregnancy.Timeline, error)

	ListContacts(ctx context.Context) ([]Contact, error)
	AddContact(ctx context.Context, c Contact) (*Contact, error)
	RemoveContact(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo     Repository
	contacts ContactRepository
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(repo Repository, contacts ContactRepository, logger *zap.Logger, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:     repo,
		contacts: contacts,
		logger:   logger,
		now:      now,
	}
}

func (s *service) GetProfile(ctx context.Context) (*Profile, error) {
	return s.repo.Get(ctx)
}

// UpdateProfile merges the non-nil fields of u into the stored profile.
func (s *service) UpdateProfile(ctx context.Context, u Update) (*Profile, error) {
	p, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if err := apply(p, u); err != nil {
		return nil, err
	}
	p.UpdatedAt = s.now()
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) CompleteOnboarding(ctx context.Context, u Update) (*Profile, error) {
	p, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if err := apply(p, u); err != nil {
		return nil, err
	}
	if p.DueDate == "" && p.LastPeriodDate == "" {
		return nil, fmt.Errorf("%w: due date or last period date is required", ErrInvalidProfile)
	}
	// a missing due date is derived from the last period
	if p.DueDate == "" {
		lmp, _ := pregnancy.ParseDate(p.LastPeriodDate)
		due := lmp.AddDate(0, 0, pregnancy.TermDays)
		p.DueDate = pregnancy.FormatDate(&due)
	}
	p.OnboardingCompleted = true
	p.UpdatedAt = s.now()
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("Onboarding completed", zap.String("due_date", p.DueDate))
	return p, nil
}

func (s *service) Timeline(ctx context.Context) (pregnancy.Timeline, error) {
	p, err := s.repo.Get(ctx)
	if err != nil {
		return pregnancy.Timeline{}, err
	}
	due, err := pregnancy.ParseDate(p.DueDate)
	if err != nil {
		return pregnancy.Timeline{}, err
	}
	return pregnancy.BuildTimeline(due, s.now()), nil
}

func (s *service) ListContacts(ctx context.Context) ([]Contact, error) {
	return s.contacts.List(ctx)
}

func (s *service) AddContact(ctx context.Context, c Contact) (*Contact, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Number = strings.TrimSpace(c.Number)
	c.Relationship = strings.TrimSpace(c.Relationship)
	if c.Name == "" || c.Number == "" {
		return nil, fmt.Errorf("%w: name and number are required", ErrInvalidContact)
	}
	c.ID = uuid.New()
	c.CreatedAt = s.now()
	if err := s.contacts.Add(ctx, &c); err != nil {
		return nil, err
	}
	s.logger.Info("Emergency contact added", zap.String("contact_id", c.ID.String()))
	return &c, nil
}

func (s *service) RemoveContact(ctx context.Context, id uuid.UUID) error {
	return s.contacts.Remove(ctx, id)
}

func apply(p *Profile, u Update) error {
	if u.Name != nil {
		p.Name = strings.TrimSpace(*u.Name)
	}
	if u.DueDate != nil {
		d, err := normalizeDate(*u.DueDate)
		if err != nil {
			return err
		}
		p.DueDate = d
	}
	if u.LastPeriodDate != nil {
		d, err := normalizeDate(*u.LastPeriodDate)
		if err != nil {
			return err
		}
		p.LastPeriodDate = d
	}
	if u.ReminderTime != nil {
		if _, err := time.Parse("15:04", *u.ReminderTime); err != nil {
			return fmt.Errorf("%w: reminder time %q", ErrInvalidProfile, *u.ReminderTime)
		}
		p.ReminderTime = *u.ReminderTime
	}
	return nil
}

func normalizeDate(s string) (string, error) {
	t, err := pregnancy.ParseDate(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	return pregnancy.FormatDate(t), nil
}
