package domain

// ─── Compatibility ──────────────────────────────────────────────────────────

// Confidence qualifies a compatibility result by how much mother data it used.
type Confidence string

const (
	ConfidenceFull    Confidence = "full"    // both mothers supplied
	ConfidencePartial Confidence = "partial" // exactly one mother supplied
	ConfidenceLow     Confidence = "low"     // no mother data; layer 2 is the default
)

// Layer is one independently scored compatibility dimension.
type Layer struct {
	Name       string  `json:"name"`
	Percentage int     `json:"percentage"` // 0–100
	Weight     float64 `json:"weight"`
	Score      float64 `json:"score"` // Percentage × Weight
	Detail     string  `json:"detail,omitempty"`
}

// CompatibilityResult combines four layers by fixed weights.
// Invariant: OverallScore = round(Σ Layers[i].Score) and Σ weights = 1.0.
type CompatibilityResult struct {
	Layers       [4]Layer      `json:"layers"`
	OverallScore int           `json:"overall_score"`
	Confidence   Confidence    `json:"confidence"`
	Tier         string        `json:"tier"`
	Directional  *BalanceState `json:"directional,omitempty"` // layer 4 detail, person 2 as context
}

// Weights returns the four layer weights in order.
func (r CompatibilityResult) Weights() [4]float64 {
	var w [4]float64
	for i, l := range r.Layers {
		w[i] = l.Weight
	}
	return w
}

// ─── Balance ────────────────────────────────────────────────────────────────

// Severity is the band of a balance score.
type Severity string

const (
	SeveritySevere   Severity = "severe"
	SeverityModerate Severity = "moderate"
	SeverityMild     Severity = "mild"
	SeverityBalanced Severity = "balanced"
)

// Severities returns all bands from worst to best.
func Severities() []Severity {
	return []Severity{SeveritySevere, SeverityModerate, SeverityMild, SeverityBalanced}
}

// BalanceState is the harmony between a person's element and a context element.
type BalanceState struct {
	Score            int      `json:"score"` // 0–100
	UserElement      Element  `json:"user_element"`
	ContextElement   Element  `json:"context_element"`
	Relation         Relation `json:"relation"`
	DominantElement  Element  `json:"dominant_element"`
	DeficitElement   Element  `json:"deficit_element"`
	Severity         Severity `json:"severity"`
	RemedyMinutes    int      `json:"remedy_minutes"`
	RemedyMaxMinutes int      `json:"remedy_max_minutes"`
	Remedy           string   `json:"remedy"`
}
