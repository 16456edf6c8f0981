package healthqa

import "strconv"

type Category string

const (
	CategoryNutrition   Category = "nutrition"
	CategorySymptoms    Category = "symptoms"
	CategoryExercise    Category = "exercise"
	CategoryMedications Category = "medications"
	CategoryGeneral     Category = "general"
)

// Trimester applicability: "1", "2", "3", "all" or empty when unspecified.
type Trimester string

const TrimesterAll Trimester = "all"

type Entry struct {
	ID        string    `json:"id" yaml:"id"`
	Keywords  []string  `json:"keywords" yaml:"keywords"`
	Question  string    `json:"question" yaml:"question"`
	Answer    string    `json:"answer" yaml:"answer"`
	Source    string    `json:"source" yaml:"source"`
	Category  Category  `json:"category" yaml:"category"`
	Trimester Trimester `json:"trimester,omitempty" yaml:"trimester"`
}

// AppliesTo reports whether the entry is relevant in the given trimester.
// Entries without a trimester apply everywhere.
func (e Entry) AppliesTo(trimester int) bool {
	switch e.Trimester {
	case "", TrimesterAll:
		return true
	}
	return string(e.Trimester) == strconv.Itoa(trimester)
}

type Match struct {
	Entry Entry `json:"entry"`
	Score int   `json:"score"`
}
