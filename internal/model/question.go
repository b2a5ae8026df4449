package model

// Question is a landlord question produced by the generator or the
// deterministic fallback. Every referenced finding ID is guaranteed to
// exist in the same request's finding set.
type Question struct {
	Question   string   `json:"question"`
	Priority   Severity `json:"priority"`
	Category   string   `json:"category"`
	FindingIDs []string `json:"findingIds"`
	Reasoning  string   `json:"reasoning,omitempty"`
}
