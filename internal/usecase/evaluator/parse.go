package evaluator

import (
	"bytes"
	"encoding/json"
	"strings"

	"dev-match/internal/domain/matching"
	"dev-match/internal/domain/project"
	"dev-match/internal/domain/schedule"
	"dev-match/internal/domain/skill"
)

const FallbackQuestion = "Could you share a bit more detail about the project?"

type verdict struct {
	Ready        *bool           `json:"ready"`
	IsSufficient *bool           `json:"is_sufficient"`
	Question     string          `json:"question"`
	NextQuestion string          `json:"next_question"`
	Requirements json.RawMessage `json:"requirements"`
}

func (v verdict) ready() bool {
	return (v.Ready != nil && *v.Ready) || (v.IsSufficient != nil && *v.IsSufficient)
}

func (v verdict) question() string {
	if q := strings.TrimSpace(v.Question); q != "" {
		return q
	}
	return strings.TrimSpace(v.NextQuestion)
}

type rawRequirements struct {
	Skills []struct {
		Name     string `json:"name"`
		Level    string `json:"level"`
		Required bool   `json:"required"`
	} `json:"skills"`
	StartDate *string `json:"start_date"`
}

// extractVerdict returns the first JSON object in text that decodes as a
// verdict. Prose and code fences around the object are ignored.
func extractVerdict(text string) (verdict, bool) {
	for i := 0; i < len(text); i++ {
		if text[i] != '{' {
			continue
		}
		var v verdict
		dec := json.NewDecoder(strings.NewReader(text[i:]))
		if err := dec.Decode(&v); err != nil {
			continue
		}
		return v, true
	}
	return verdict{}, false
}

// Parse turns raw oracle output into a Result. It never fails: anything it
// cannot read becomes the fallback question.
func Parse(text string, p project.Project) Result {
	v, ok := extractVerdict(text)
	if !ok {
		return Question{Text: FallbackQuestion}
	}

	if !v.ready() {
		if q := v.question(); q != "" {
			return Question{Text: q}
		}
		return Question{Text: FallbackQuestion}
	}

	if reqs, ok := requirementsFromOracle(v.Requirements, p); ok {
		return Sufficient{Requirements: reqs}
	}
	if reqs, ok := RequirementsFromProject(p); ok {
		return Sufficient{Requirements: reqs}
	}
	return Question{Text: FallbackQuestion}
}

func requirementsFromOracle(raw json.RawMessage, p project.Project) (matching.Requirements, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return matching.Requirements{}, false
	}
	if err := ValidateRequirements(raw); err != nil {
		return matching.Requirements{}, false
	}

	var rr rawRequirements
	if err := json.Unmarshal(raw, &rr); err != nil {
		return matching.Requirements{}, false
	}

	out := matching.Requirements{Skills: make([]matching.Requirement, 0, len(rr.Skills))}
	for _, s := range rr.Skills {
		lvl, err := skill.ParseLevel(s.Level)
		if err != nil {
			return matching.Requirements{}, false
		}
		out.Skills = append(out.Skills, matching.Requirement{
			Name:     strings.TrimSpace(s.Name),
			Level:    lvl,
			Required: s.Required,
		})
	}

	if rr.StartDate != nil {
		out.StartDate, _ = schedule.Parse(*rr.StartDate)
	}
	if out.StartDate.IsZero() {
		out.StartDate, _ = schedule.Parse(p.StartDate)
	}
	return out, true
}

// RequirementsFromProject derives requirements from the submitted skill
// entries. It reports false when the project names no required skill.
func RequirementsFromProject(p project.Project) (matching.Requirements, bool) {
	if len(p.RequiredSkills) == 0 {
		return matching.Requirements{}, false
	}
	out := matching.Requirements{Skills: make([]matching.Requirement, 0, len(p.RequiredSkills)+len(p.PreferredSkills))}
	for _, s := range p.Skills() {
		out.Skills = append(out.Skills, matching.Requirement{
			Name:     s.Name,
			Level:    s.MinLevel,
			Required: s.Required,
		})
	}
	out.StartDate, _ = schedule.Parse(p.StartDate)
	return out, true
}
