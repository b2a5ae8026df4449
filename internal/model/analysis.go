package model

// RedFlag is one concerning signal found in the listing description
type RedFlag struct {
	Flag     string   `json:"flag"`
	Severity Severity `json:"severity"`
	Reason   string   `json:"reason"`
}

// MissingInfo is an essential detail the listing fails to mention
type MissingInfo struct {
	Item       string   `json:"item"`
	Importance Severity `json:"importance"`
	Why        string   `json:"why"`
}

// TextAnalysis is the analyzer verdict on the listing description
type TextAnalysis struct {
	RedFlags    []RedFlag     `json:"redFlags"`
	MissingInfo []MissingInfo `json:"missingInfo"`
	OverallRisk string        `json:"overallRisk"`
	Summary     string        `json:"summary"`
}

// PhotoIssue is a visual red flag in the listing photos
type PhotoIssue struct {
	Issue       string   `json:"issue"`
	Severity    Severity `json:"severity"`
	PhotoNumber int      `json:"photoNumber"`
	Explanation string   `json:"explanation"`
}

// PositiveObservation is something the photos honestly show off
type PositiveObservation struct {
	Observation string `json:"observation"`
	PhotoNumber int    `json:"photoNumber"`
}

// ImageAnalysis is the analyzer verdict on the listing photos.
// QualityScore runs 0-10: 10 = excellent honest photos, 0 = missing or
// badly misleading photos.
type ImageAnalysis struct {
	PhotoIssues          []PhotoIssue          `json:"photoIssues"`
	PositiveObservations []PositiveObservation `json:"positiveObservations"`
	QualityScore         float64               `json:"qualityScore"`
	Summary              string                `json:"summary"`
}

// ImageAttachment is one uploaded listing photo
type ImageAttachment struct {
	MIMEType string
	Data     []byte
}

// AnalysisResult is the complete, immutable response document for one
// analysis request. Nothing in it outlives the response.
type AnalysisResult struct {
	RequestID         string            `json:"requestId"`
	TextAnalysis      TextAnalysis      `json:"text_analysis"`
	ImageAnalysis     ImageAnalysis     `json:"image_analysis"`
	StudentReviews    StudentReviews    `json:"student_reviews"`
	Findings          []Finding         `json:"findings"`
	Questions         []Question        `json:"questions"`
	OverallAssessment OverallAssessment `json:"overall_assessment"`
}
