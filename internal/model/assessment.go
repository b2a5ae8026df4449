package model

// RiskLevel is the overall verdict label
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// OverallAssessment combines the three risk dimensions into one verdict.
// Each dimension score is in [1,3] (1 = low risk, 3 = high risk).
type OverallAssessment struct {
	RiskLevel       RiskLevel `json:"riskLevel"`
	TextRisk        float64   `json:"textRisk"`
	ImageRisk       float64   `json:"imageRisk"`
	StudentRisk     float64   `json:"studentRisk"`
	RedFlagCount    int       `json:"redFlagCount"`
	PhotoIssueCount int       `json:"photoIssueCount"`
	StudentScore    float64   `json:"studentScore"` // 1.0 - 5.0
	Summary         string    `json:"summary"`
	Recommendation  string    `json:"recommendation"`
	Notes           []string  `json:"notes,omitempty"` // degraded branches, partial failures
}
