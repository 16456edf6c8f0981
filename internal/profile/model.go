package profile

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const DefaultReminderTime = "09:00"

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidContact = errors.New("invalid contact")
	ErrInvalidProfile = errors.New("invalid profile")
)

// Profile is the single on-device user's pregnancy profile. Dates are
// stored as YYYY-MM-DD; empty means unset.
type Profile struct {
	Name                string    `json:"name"`
	DueDate             string    `json:"due_date"`
	LastPeriodDate      string    `json:"last_period_date"`
	ReminderTime        string    `json:"reminder_time"`
	OnboardingCompleted bool      `json:"onboarding_completed"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func Default() *Profile {
	return &Profile{ReminderTime: DefaultReminderTime}
}

// Update carries a partial profile change; nil fields are left alone.
type Update struct {
	Name           *string `json:"name"`
	DueDate        *string `json:"due_date"`
	LastPeriodDate *string `json:"last_period_date"`
	ReminderTime   *string `json:"reminder_time"`
}

// Contact is a user-added emergency contact, kept apart from the built-in
// hotlines of the symptom catalog.
type Contact struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Number       string    `json:"number"`
	Relationship string    `json:"relationship"`
	CreatedAt    time.Time `json:"created_at"`
}
