package service

import (
	"fmt"

	"github.com/mukujayCS/Apartment-Hunter/internal/model"
)

// TagFindings flattens analyzer output into findings stamped with
// request-scoped {kind}_{index} identifiers, preserving input order
// within each kind. This is the ground truth the question validator
// checks generated references against, so it must run before any
// question-generation call.
func TagFindings(text *model.TextAnalysis, image *model.ImageAnalysis) []model.Finding {
	var findings []model.Finding

	for i, flag := range text.RedFlags {
		findings = append(findings, model.Finding{
			ID:          findingID(model.FindingTextFlag, i),
			Kind:        model.FindingTextFlag,
			Severity:    flag.Severity,
			Description: flag.Flag,
			Reason:      flag.Reason,
		})
	}
	for i, info := range text.MissingInfo {
		findings = append(findings, model.Finding{
			ID:          findingID(model.FindingMissingInfo, i),
			Kind:        model.FindingMissingInfo,
			Severity:    info.Importance,
			Description: "Missing: " + info.Item,
			Reason:      info.Why,
		})
	}
	for i, issue := range image.PhotoIssues {
		findings = append(findings, model.Finding{
			ID:          findingID(model.FindingPhotoIssue, i),
			Kind:        model.FindingPhotoIssue,
			Severity:    issue.Severity,
			Description: issue.Issue,
			Reason:      issue.Explanation,
		})
	}
	for i, obs := range image.PositiveObservations {
		findings = append(findings, model.Finding{
			ID:          findingID(model.FindingPositive, i),
			Kind:        model.FindingPositive,
			Severity:    model.SeverityLow,
			Description: obs.Observation,
			Reason:      fmt.Sprintf("Observed in photo %d", obs.PhotoNumber),
		})
	}
	return findings
}

// FindingIDSet returns the identifier set for validation lookups
func FindingIDSet(findings []model.Finding) map[string]bool {
	ids := make(map[string]bool, len(findings))
	for _, f := range findings {
		ids[f.ID] = true
	}
	return ids
}

func findingID(kind model.FindingKind, index int) string {
	return fmt.Sprintf("%s_%d", kind, index)
}
