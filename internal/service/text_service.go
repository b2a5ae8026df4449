package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mukujayCS/Apartment-Hunter/internal/model"
)

// TextAnalyzer inspects the listing description for red flags and
// missing information. This is the one collaborator whose total failure
// aborts the request: an assessment with no text analysis has no
// meaningful risk score.
type TextAnalyzer struct {
	llm    LLM
	model  string
	logger *zap.Logger
}

// NewTextAnalyzer creates a new listing text analyzer
func NewTextAnalyzer(llm LLM, modelName string, logger *zap.Logger) *TextAnalyzer {
	return &TextAnalyzer{llm: llm, model: modelName, logger: logger}
}

// AnalyzeListing analyzes the listing description. A malformed model
// response degrades to a placeholder flag; a failed call is returned as
// an error for the orchestrator to surface.
func (s *TextAnalyzer) AnalyzeListing(ctx context.Context, listingText, address string) (*model.TextAnalysis, error) {
	if !s.llm.Enabled() {
		return s.mockAnalysis(listingText), nil
	}

	prompt := s.buildPrompt(listingText, address)
	response, err := s.llm.GenerateText(ctx, s.model, prompt)
	if err != nil {
		return nil, fmt.Errorf("listing text analysis: %w", err)
	}

	return s.parseResponse(response), nil
}

func (s *TextAnalyzer) buildPrompt(listingText, address string) string {
	context := ""
	if address != "" {
		context = "Address: " + address + "\n\n"
	}

	return fmt.Sprintf(`You are analyzing an apartment listing for college students. Identify red flags, missing information, and assess risk.

%sListing Description:
%s

Analyze this listing and respond in JSON format with the following structure:
{
  "red_flags": [
    {"flag": "description of red flag", "severity": "low/medium/high", "reason": "why this is concerning"}
  ],
  "missing_info": [
    {"item": "what's missing", "importance": "low/medium/high", "why": "why this matters"}
  ],
  "overall_risk": "low/medium/high",
  "summary": "2-3 sentence summary of the listing quality"
}

RED FLAGS TO LOOK FOR:
- Vague or evasive language about property condition
- Missing essential details (lease terms, utilities, deposit)
- Too-good-to-be-true pricing
- Pressure tactics ("won't last long", "act now")
- Photo inconsistencies or stock photos
- Unclear contact information
- Requests for payment before viewing
- "As-is" conditions without explanation
- No mention of landlord/property management
- Excessive emphasis on "cozy" (possibly small)

MISSING INFORMATION:
- Lease length and terms
- Utilities included/excluded
- Deposit and fees
- Pet policy
- Parking availability
- Laundry facilities
- Move-in date flexibility
- Maintenance contact
- Subletting policy
- Internet/cable included

Be thorough but fair. Only flag genuine concerns, not minor style issues.`, context, listingText)
}

func (s *TextAnalyzer) parseResponse(response string) *model.TextAnalysis {
	var raw struct {
		RedFlags []struct {
			Flag     string `json:"flag"`
			Severity string `json:"severity"`
			Reason   string `json:"reason"`
		} `json:"red_flags"`
		MissingInfo []struct {
			Item       string `json:"item"`
			Importance string `json:"importance"`
			Why        string `json:"why"`
		} `json:"missing_info"`
		OverallRisk string `json:"overall_risk"`
		Summary     string `json:"summary"`
	}

	if err := json.Unmarshal([]byte(stripFences(response)), &raw); err != nil {
		s.logger.Warn("unparseable text analysis response", zap.Error(err))
		summary := response
		if len(summary) > 200 {
			summary = summary[:200] + "..."
		}
		return &model.TextAnalysis{
			RedFlags: []model.RedFlag{{
				Flag:     "Unable to parse structured analysis",
				Severity: model.SeverityLow,
				Reason:   "Analysis format error",
			}},
			MissingInfo: []model.MissingInfo{},
			OverallRisk: string(model.RiskMedium),
			Summary:     summary,
		}
	}

	analysis := &model.TextAnalysis{
		RedFlags:    make([]model.RedFlag, 0, len(raw.RedFlags)),
		MissingInfo: make([]model.MissingInfo, 0, len(raw.MissingInfo)),
		OverallRisk: raw.OverallRisk,
		Summary:     raw.Summary,
	}
	for _, f := range raw.RedFlags {
		analysis.RedFlags = append(analysis.RedFlags, model.RedFlag{
			Flag:     f.Flag,
			Severity: model.NormalizeSeverity(f.Severity),
			Reason:   f.Reason,
		})
	}
	for _, m := range raw.MissingInfo {
		analysis.MissingInfo = append(analysis.MissingInfo, model.MissingInfo{
			Item:       m.Item,
			Importance: model.NormalizeSeverity(m.Importance),
			Why:        m.Why,
		})
	}
	if analysis.OverallRisk == "" {
		analysis.OverallRisk = string(model.RiskMedium)
	}
	return analysis
}

// mockAnalysis is the keyless-mode analyzer: a small keyword scan so
// local development still produces plausible findings.
func (s *TextAnalyzer) mockAnalysis(listingText string) *model.TextAnalysis {
	lower := strings.ToLower(listingText)
	analysis := &model.TextAnalysis{
		RedFlags:    []model.RedFlag{},
		MissingInfo: []model.MissingInfo{},
		OverallRisk: string(model.RiskLow),
		Summary:     "Mock analysis (no API key configured).",
	}

	for _, phrase := range []string{"won't last", "act now", "act fast", "first come"} {
		if strings.Contains(lower, phrase) {
			analysis.RedFlags = append(analysis.RedFlags, model.RedFlag{
				Flag:     "Pressure tactics in listing",
				Severity: model.SeverityMedium,
				Reason:   "Urgency language like \"" + phrase + "\" discourages due diligence",
			})
			break
		}
	}
	if strings.Contains(lower, "as-is") || strings.Contains(lower, "as is") {
		analysis.RedFlags = append(analysis.RedFlags, model.RedFlag{
			Flag:     "\"As-is\" condition without explanation",
			Severity: model.SeverityHigh,
			Reason:   "Unexplained as-is terms often hide known defects",
		})
	}
	if !strings.Contains(lower, "deposit") {
		analysis.MissingInfo = append(analysis.MissingInfo, model.MissingInfo{
			Item:       "Deposit and fees",
			Importance: model.SeverityHigh,
			Why:        "Total move-in cost is unknown without it",
		})
	}
	if !strings.Contains(lower, "lease") {
		analysis.MissingInfo = append(analysis.MissingInfo, model.MissingInfo{
			Item:       "Lease length and terms",
			Importance: model.SeverityMedium,
			Why:        "Lease duration drives subletting and renewal decisions",
		})
	}
	if len(analysis.RedFlags) > 0 {
		analysis.OverallRisk = string(model.RiskMedium)
	}
	return analysis
}
