package model

// Severity grades how concerning a finding is (and how urgent a question is)
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Rank maps a severity to an ordering value for display sorting (high > medium > low)
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

// NormalizeSeverity coerces free-text analyzer output to a known severity.
// Anything unrecognized (including empty) defaults to medium.
func NormalizeSeverity(s string) Severity {
	switch Severity(s) {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return Severity(s)
	}
	return SeverityMedium
}

// FindingKind is the evidence source a finding came from
type FindingKind string

const (
	FindingTextFlag    FindingKind = "text_flag"
	FindingMissingInfo FindingKind = "missing_info"
	FindingPhotoIssue  FindingKind = "photo_issue"
	FindingPositive    FindingKind = "positive_observation"
)

// Finding is a single tagged piece of evidence produced by an analyzer.
// IDs follow the {kind}_{index} scheme, are unique within one request,
// and carry no meaning outside the request that created them.
type Finding struct {
	ID          string      `json:"id"`
	Kind        FindingKind `json:"kind"`
	Severity    Severity    `json:"severity"`
	Description string      `json:"description"`
	Reason      string      `json:"reason"`
}
