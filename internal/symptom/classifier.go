package symptom

var tiers = map[RiskLevel]RiskAssessment{
	RiskEmergency: {
		Level:       RiskEmergency,
		Title:       "Seek Emergency Care Immediately",
		Description: "The symptoms you've selected may indicate a serious condition requiring immediate medical attention.",
		Recommendations: []string{
			"Call emergency services or go to the nearest hospital immediately",
			"Do not drive yourself - have someone take you or call an ambulance",
			"Bring any relevant medical records and list of medications",
			"Stay calm and try to have someone with you",
		},
		Color: "destructive",
	},
	RiskSeekCare: {
		Level:       RiskSeekCare,
		Title:       "Contact Your Healthcare Provider Today",
		Description: "The symptoms you've selected should be evaluated by a healthcare professional within 24 hours.",
		Recommendations: []string{
			"Call your healthcare provider's office as soon as possible",
			"Explain your symptoms clearly and mention you are pregnant",
			"Ask about same-day or next-day appointment availability",
			"If symptoms worsen, go to the emergency room",
			"Rest and stay hydrated while waiting for your appointment",
		},
		Color: "warning",
	},
	RiskMonitor: {
		Level:       RiskMonitor,
		Title:       "Monitor Your Symptoms",
		Description: "These symptoms are worth tracking and discussing at your next appointment, or sooner if they worsen.",
		Recommendations: []string{
			"Note when symptoms started and any patterns",
			"Try recommended home remedies for relief",
			"Schedule an appointment if symptoms persist over 2-3 days",
			"Contact your provider sooner if symptoms worsen",
			"Stay hydrated and get adequate rest",
		},
		Color: "gold",
	},
	RiskNormal: {
		Level:       RiskNormal,
		Title:       "Common Pregnancy Symptoms",
		Description: "The symptoms you've selected are typically normal during pregnancy, but always trust your instincts.",
		Recommendations: []string{
			"These are common experiences during pregnancy",
			"Try recommended comfort measures and home remedies",
			"Mention these at your next prenatal visit",
			"Contact your provider if you're concerned or symptoms change",
			"Take care of yourself with rest, hydration, and nutrition",
		},
		Color: "success",
	},
}

// Classifier maps a selected symptom set to a risk tier. It holds no
// mutable state.
type Classifier struct {
	catalog *Catalog
}

func NewClassifier(catalog *Catalog) *Classifier {
	return &Classifier{catalog: catalog}
}

func (c *Classifier) Catalog() *Catalog {
	return c.catalog
}

// Assess returns the tier of the most severe symptom present. An
// emergency-category symptom outranks any severity label. Unknown ids are
// ignored, so an empty or unrecognised selection is normal.
func (c *Classifier) Assess(selectedIDs []string) RiskAssessment {
	return Tier(Level(c.catalog.Resolve(selectedIDs)))
}

// Level applies the tier precedence to already-resolved symptoms.
func Level(symptoms []Symptom) RiskLevel {
	var hasHigh, hasMedium bool
	for _, s := range symptoms {
		if s.Category == CategoryEmergency {
			return RiskEmergency
		}
		switch s.Severity {
		case SeverityHigh:
			hasHigh = true
		case SeverityMedium:
			hasMedium = true
		}
	}

	switch {
	case hasHigh:
		return RiskSeekCare
	case hasMedium:
		return RiskMonitor
	default:
		return RiskNormal
	}
}

// Tier returns a copy of the fixed bundle for level. Unknown levels map to
// normal.
func Tier(level RiskLevel) RiskAssessment {
	t, ok := tiers[level]
	if !ok {
		t = tiers[RiskNormal]
	}
	t.Recommendations = append([]string(nil), t.Recommendations...)
	return t
}
