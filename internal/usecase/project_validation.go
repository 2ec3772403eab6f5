package usecase

import (
	"strings"
	"time"

	"dev-match/internal/domain/project"
	"dev-match/internal/domain/schedule"
	"dev-match/internal/domain/skill"
)

// ValidateProject checks the rules that span several fields of a submitted
// project. Field-level shape checks happen at the transport boundary.
func ValidateProject(p project.Project) error {
	fields := map[string]string{}

	if strings.TrimSpace(p.Title) == "" {
		fields["title"] = "is required"
	}
	types := 0
	for _, t := range p.Types {
		if strings.TrimSpace(t) != "" {
			types++
		}
	}
	if types == 0 {
		fields["project_type"] = "at least one project type is required"
	}

	seen := map[string]project.SkillRequirement{}
	for _, s := range p.Skills() {
		key := skill.Canonical(s.Name)
		if key == "" {
			fields["skills"] = "skill name is required"
			continue
		}
		if !s.MinLevel.Valid() {
			fields["skills."+s.Name] = "unknown minimum level"
			continue
		}
		if prev, ok := seen[key]; ok && prev.MinLevel != s.MinLevel {
			fields["skills."+s.Name] = "listed more than once with different levels"
			continue
		}
		seen[key] = s
	}

	start, err := schedule.Parse(p.StartDate)
	if err != nil {
		fields["start_date"] = "must be \"now\" or YYYY-MM-DD"
	}
	if end := strings.TrimSpace(p.EndDate); end != "" {
		endDate, err := time.Parse(schedule.DateLayout, end)
		switch {
		case err != nil:
			fields["end_date"] = "must be YYYY-MM-DD"
		case !start.IsZero() && !start.Immediate && endDate.Before(start.Date):
			fields["end_date"] = "must not be before the start date"
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
