package pregnancy

import "time"

var babySizes = []struct {
	week int
	fact string
}{
	{4, "Your baby is the size of a poppy seed"},
	{8, "Your baby is the size of a raspberry"},
	{12, "Your baby is the size of a lime"},
	{16, "Your baby is the size of an avocado"},
	{20, "Your baby is the size of a banana"},
	{24, "Your baby is the size of an ear of corn"},
	{28, "Your baby is the size of an eggplant"},
	{32, "Your baby is the size of a coconut"},
	{36, "Your baby is the size of a honeydew melon"},
	{40, "Your baby is the size of a small pumpkin"},
}

// BabySizeFact picks the fact for the nearest listed week; on a tie the
// earlier week wins.
func BabySizeFact(week int) string {
	best := babySizes[0]
	for _, s := range babySizes[1:] {
		if abs(s.week-week) < abs(best.week-week) {
			best = s
		}
	}
	return best.fact
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

type Timeline struct {
	DueDate        string          `json:"due_date,omitempty"`
	GestationalAge *GestationalAge `json:"gestational_age,omitempty"`
	Trimester      int             `json:"trimester,omitempty"`
	DaysUntilDue   *int            `json:"days_until_due,omitempty"`
	BabySize       string          `json:"baby_size,omitempty"`
}

// BuildTimeline returns an empty Timeline when no due date is set.
func BuildTimeline(dueDate *time.Time, now time.Time) Timeline {
	age := CalculateGestationalAge(dueDate, now)
	if age == nil {
		return Timeline{}
	}
	return Timeline{
		DueDate:        FormatDate(dueDate),
		GestationalAge: age,
		Trimester:      Trimester(age.Week),
		DaysUntilDue:   DaysUntilDue(dueDate, now),
		BabySize:       BabySizeFact(age.Week),
	}
}
