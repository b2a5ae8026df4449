package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/mukujayCS/Apartment-Hunter/internal/model"
)

// maxQuestions caps the final question list regardless of how it was produced
const maxQuestions = 10

// QuestionService turns tagged findings into landlord questions.
// Generation is best-effort LLM; validation is strict against the
// request's finding ID set; the fallback is fully deterministic. The
// user-visible list can never reference evidence that was not found.
type QuestionService struct {
	llm    LLM
	model  string
	logger *zap.Logger
}

// NewQuestionService creates a new question service
func NewQuestionService(llm LLM, modelName string, logger *zap.Logger) *QuestionService {
	return &QuestionService{llm: llm, model: modelName, logger: logger}
}

// candidate is one raw generated question before validation
type candidate struct {
	Question  string   `json:"question"`
	FlagIDs   []string `json:"flag_ids"`
	Priority  string   `json:"priority"`
	Reasoning string   `json:"reasoning"`
}

// Generate produces the final question list for one request. A perfect
// listing (no findings) needs no questions.
func (s *QuestionService) Generate(ctx context.Context, findings []model.Finding, listingText string) []model.Question {
	if len(findings) == 0 {
		return []model.Question{}
	}

	if !s.llm.Enabled() {
		return s.fallbackQuestions(findings)
	}

	candidates, err := s.generateWithLLM(ctx, findings, listingText)
	if err != nil {
		s.logger.Warn("question generation failed, using fallback", zap.Error(err))
		return s.fallbackQuestions(findings)
	}

	questions, ok := s.validate(candidates, findings)
	if !ok {
		return s.fallbackQuestions(findings)
	}
	return questions
}

func (s *QuestionService) generateWithLLM(ctx context.Context, findings []model.Finding, listingText string) ([]candidate, error) {
	prompt, err := s.buildPrompt(findings, listingText)
	if err != nil {
		return nil, err
	}

	response, err := s.llm.GenerateText(ctx, s.model, prompt)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Questions []candidate `json:"questions"`
	}
	if err := json.Unmarshal([]byte(stripFences(response)), &parsed); err != nil {
		return nil, fmt.Errorf("parse question response: %w", err)
	}
	return parsed.Questions, nil
}

func (s *QuestionService) buildPrompt(findings []model.Finding, listingText string) (string, error) {
	findingsJSON, err := json.MarshalIndent(findings, "", "  ")
	if err != nil {
		return "", err
	}

	expected := len(findings) * 7 / 10
	if expected < 1 {
		expected = 1
	}
	if len(listingText) > 500 {
		listingText = listingText[:500]
	}

	return fmt.Sprintf(`You are helping a college student prepare questions to ask a landlord about an apartment listing.

AVAILABLE FLAGS/ISSUES (you MUST ONLY use these - DO NOT invent new issues):
%s

ORIGINAL LISTING TEXT (for context only - do NOT create questions about things not flagged above):
%s...

CRITICAL RULES:
1. Generate questions ONLY about the specific flags/issues listed above
2. Each question MUST reference at least one flag by its exact ID in the "flag_ids" field
3. DO NOT include flag IDs (like "text_flag_0" or "missing_info_3") in the question text - keep questions clean and professional
4. DO NOT invent new concerns or issues not in the flags list above
5. Use specific details from the flag descriptions to make questions contextual
6. Combine related flags into single questions when appropriate
7. Prioritize high-severity flags over medium/low
8. If few flags exist, generate fewer questions (quality over quantity)

Expected: %d-%d questions (you may combine related flags)

OUTPUT FORMAT (must be valid JSON):
{
  "questions": [
    {
      "question": "The specific question text to ask the landlord",
      "flag_ids": ["text_flag_0"],
      "priority": "high",
      "reasoning": "Brief explanation of why this matters"
    }
  ]
}

Generate questions now (JSON only):`, findingsJSON, listingText, expected, len(findings)), nil
}

// validate filters candidates against the finding ID set. It returns
// ok=false when the batch as a whole is untrustworthy: more than half
// the candidates rejected, or the valid ones covering less than half
// the findings.
func (s *QuestionService) validate(candidates []candidate, findings []model.Finding) ([]model.Question, bool) {
	if len(candidates) == 0 {
		return nil, false
	}

	validIDs := FindingIDSet(findings)
	severityByID := make(map[string]model.Severity, len(findings))
	for _, f := range findings {
		severityByID[f.ID] = f.Severity
	}

	var validated []model.Question
	covered := make(map[string]bool)
	rejected := 0

	for _, c := range candidates {
		if len(c.FlagIDs) == 0 || hasUnknownID(c.FlagIDs, validIDs) {
			rejected++
			s.logger.Warn("rejected hallucinated question",
				zap.String("question", truncate(c.Question, 50)),
				zap.Strings("flagIds", c.FlagIDs))
			continue
		}

		for _, id := range c.FlagIDs {
			covered[id] = true
		}
		validated = append(validated, model.Question{
			Question:   c.Question,
			Priority:   derivePriority(c.FlagIDs, severityByID),
			Category:   deriveCategory(c.FlagIDs[0]),
			FindingIDs: c.FlagIDs,
			Reasoning:  c.Reasoning,
		})
	}

	rejectionRate := float64(rejected) / float64(len(candidates))
	coverage := float64(len(covered)) / float64(len(findings))

	if rejectionRate > 0.5 || coverage < 0.5 {
		s.logger.Warn("generated batch discarded",
			zap.Float64("rejectionRate", rejectionRate),
			zap.Float64("coverage", coverage))
		return nil, false
	}

	sortBySeverity(validated, func(q model.Question) model.Severity { return q.Priority })
	if len(validated) > maxQuestions {
		validated = validated[:maxQuestions]
	}
	return validated, true
}

// fallbackQuestions deterministically emits one question per finding,
// severity-ordered, capped. Intentionally simple: it cannot hallucinate
// because it only restates what the analyzers found.
func (s *QuestionService) fallbackQuestions(findings []model.Finding) []model.Question {
	ordered := make([]model.Finding, len(findings))
	copy(ordered, findings)
	sortBySeverity(ordered, func(f model.Finding) model.Severity { return f.Severity })

	if len(ordered) > maxQuestions {
		ordered = ordered[:maxQuestions]
	}

	questions := make([]model.Question, 0, len(ordered))
	for _, f := range ordered {
		questions = append(questions, model.Question{
			Question:   fallbackQuestionText(f),
			Priority:   f.Severity,
			Category:   deriveCategory(f.ID),
			FindingIDs: []string{f.ID},
			Reasoning:  f.Reason,
		})
	}
	return questions
}

func fallbackQuestionText(f model.Finding) string {
	switch f.Kind {
	case model.FindingMissingInfo:
		item := strings.TrimPrefix(f.Description, "Missing: ")
		return fmt.Sprintf("The listing doesn't mention %s - could you provide the details?", strings.ToLower(item))
	case model.FindingPhotoIssue:
		return fmt.Sprintf("About the photos: %s - can you clarify or share additional pictures?", lowerFirst(f.Description))
	case model.FindingPositive:
		return fmt.Sprintf("The photos show %s - is that included as pictured?", lowerFirst(f.Description))
	default:
		return fmt.Sprintf("I noticed the following in the listing: %s - could you address this?", lowerFirst(f.Description))
	}
}

func hasUnknownID(ids []string, valid map[string]bool) bool {
	for _, id := range ids {
		if !valid[id] {
			return true
		}
	}
	return false
}

// derivePriority is the maximum severity among referenced findings; the
// generator's own priority claim is never trusted.
func derivePriority(ids []string, severityByID map[string]model.Severity) model.Severity {
	priority := model.SeverityLow
	for _, id := range ids {
		if sev := severityByID[id]; sev.Rank() > priority.Rank() {
			priority = sev
		}
	}
	return priority
}

func deriveCategory(findingID string) string {
	switch {
	case strings.HasPrefix(findingID, string(model.FindingTextFlag)):
		return "listing_description"
	case strings.HasPrefix(findingID, string(model.FindingMissingInfo)):
		return "missing_details"
	case strings.HasPrefix(findingID, string(model.FindingPhotoIssue)):
		return "photos"
	default:
		return "general"
	}
}

// sortBySeverity orders high > medium > low, stable within ties
func sortBySeverity[T any](items []T, severity func(T) model.Severity) {
	sort.SliceStable(items, func(i, j int) bool {
		return severity(items[i]).Rank() > severity(items[j]).Rank()
	})
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
