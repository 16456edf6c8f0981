package symptom

type Category string

const (
	CategoryPain      Category = "pain"
	CategoryBleeding  Category = "bleeding"
	CategoryDischarge Category = "discharge"
	CategoryMovement  Category = "movement"
	CategoryGeneral   Category = "general"
	CategoryEmergency Category = "emergency"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryPain, CategoryBleeding, CategoryDischarge, CategoryMovement, CategoryGeneral, CategoryEmergency:
		return true
	}
	return false
}

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

type Symptom struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Category    Category `json:"category" yaml:"category"`
	Severity    Severity `json:"severity" yaml:"severity"`
}

// RiskLevel is the classifier output tier, ordered by urgency.
type RiskLevel string

const (
	RiskNormal    RiskLevel = "normal"
	RiskMonitor   RiskLevel = "monitor"
	RiskSeekCare  RiskLevel = "seek-care"
	RiskEmergency RiskLevel = "emergency"
)

// Rank orders levels: normal < monitor < seek-care < emergency.
// Unknown levels rank below normal.
func (l RiskLevel) Rank() int {
	switch l {
	case RiskNormal:
		return 0
	case RiskMonitor:
		return 1
	case RiskSeekCare:
		return 2
	case RiskEmergency:
		return 3
	}
	return -1
}

type RiskAssessment struct {
	Level           RiskLevel `json:"level"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Recommendations []string  `json:"recommendations"`
	Color           string    `json:"color"`
}

// EmergencyContact is a built-in hotline shipped with the catalog.
type EmergencyContact struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Number      string `json:"number" yaml:"number"`
	Description string `json:"description" yaml:"description"`
}
