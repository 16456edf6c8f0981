package dailylog

import (
	"errors"
	"time"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrInvalidLog = errors.New("invalid log")
)

type Mood string

const (
	MoodGreat     Mood = "great"
	MoodGood      Mood = "good"
	MoodOkay      Mood = "okay"
	MoodTired     Mood = "tired"
	MoodDifficult Mood = "difficult"
)

// Valid accepts the five moods and the unset mood.
func (m Mood) Valid() bool {
	switch m {
	case "", MoodGreat, MoodGood, MoodOkay, MoodTired, MoodDifficult:
		return true
	}
	return false
}

type BloodPressure struct {
	Systolic  int `json:"systolic"`
	Diastolic int `json:"diastolic"`
}

// DailyLog is one check-in per calendar day, keyed by Date (YYYY-MM-DD).
type DailyLog struct {
	Date          string         `json:"date"`
	Mood          Mood           `json:"mood"`
	Symptoms      []string       `json:"symptoms"`
	Weight        *float64       `json:"weight,omitempty"`
	BloodPressure *BloodPressure `json:"blood_pressure,omitempty"`
	Notes         string         `json:"notes"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Update is a partial change to a daily log; nil fields are kept.
type Update struct {
	Mood          *Mood          `json:"mood"`
	Symptoms      []string       `json:"symptoms"`
	Weight        *float64       `json:"weight"`
	BloodPressure *BloodPressure `json:"blood_pressure"`
	Notes         *string        `json:"notes"`
}

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

func (t MealType) Valid() bool {
	switch t {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

type Meal struct {
	FoodID   string   `json:"food_id"`
	MealType MealType `json:"meal_type"`
}

type MealLog struct {
	Date      string    `json:"date"`
	Meals     []Meal    `json:"meals"`
	UpdatedAt time.Time `json:"updated_at"`
}
