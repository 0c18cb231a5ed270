package service

import (
	"encoding/json"
	"strings"

	"github.com/earlysteps-ai/earlysteps/internal/domain"
)

// parsePlanOutput turns raw model output into a Plan. Models do not reliably
// emit bare JSON, so parsing runs in two stages: a strict attempt, then one
// bounded repair pass (strip markdown fences, extract the outermost balanced
// brace span) followed by a second strict attempt. If both fail, or any of
// the three required keys is absent, the result is a PARSE_ERROR rather than
// a partially-filled or invented plan.
func parsePlanOutput(text string) (*domain.Plan, error) {
	if plan, ok := tryParsePlan(text); ok {
		return plan, nil
	}

	repaired := extractJSONObject(stripCodeFences(text))
	if repaired != "" {
		if plan, ok := tryParsePlan(repaired); ok {
			return plan, nil
		}
	}

	return nil, domain.ErrUnparsableCompletion
}

// planFields uses pointers so a key that is merely absent can be told apart
// from a key holding an empty string.
type planFields struct {
	Goals            *string `json:"Goals"`
	Strategies       *string `json:"Strategies"`
	AdviceForParents *string `json:"Advice for Parents"`
}

func tryParsePlan(text string) (*domain.Plan, bool) {
	var fields planFields
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, false
	}
	if fields.Goals == nil || fields.Strategies == nil || fields.AdviceForParents == nil {
		return nil, false
	}
	return &domain.Plan{
		Goals:            *fields.Goals,
		Strategies:       *fields.Strategies,
		AdviceForParents: *fields.AdviceForParents,
	}, true
}

// stripCodeFences removes markdown fence lines (``` or ```json) so fenced
// output reduces to its payload.
func stripCodeFences(text string) string {
	if !strings.Contains(text, "```") {
		return text
	}

	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// extractJSONObject returns the outermost balanced {...} span in text, or ""
// when no balanced object exists. Braces inside JSON strings are ignored.
func extractJSONObject(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}

	return ""
}
