package evaluator

import (
	"strings"

	"dev-match/internal/domain/project"
	"dev-match/internal/domain/skill"
)

const notSet = "not set"

const systemInstruction = `You are an expert at matching software engineers to client projects.
Judge whether the project information below is sufficient to search for developers.
It is sufficient when it covers: project title, project type, required skills with
minimum levels, start and end dates, and a rough idea of budget or working conditions.

If information is missing, ask the client exactly one short follow-up question.

Reply with a single JSON object and nothing else:
{
  "is_sufficient": true or false,
  "next_question": "question text, only when is_sufficient is false",
  "requirements": {
    "skills": [{"name": "Python", "level": "beginner|intermediate|advanced|expert", "required": true}],
    "start_date": "now or YYYY-MM-DD"
  }
}
Include "requirements" only when is_sufficient is true.`

// Summary renders the project as stable, line-oriented text. The same
// project always yields the same summary.
func Summary(p project.Project) string {
	var b strings.Builder
	line := func(label, value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			value = notSet
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString("\n")
	}

	line("Project title", p.Title)
	line("Project types", projectTypes(p))
	line("Required skills", skillList(p.RequiredSkills, p.RequiredOther))
	line("Preferred skills", skillList(p.PreferredSkills, p.PreferredOther))
	line("Start date", p.StartDate)
	line("End date", p.EndDate)
	line("Additional requirements", p.Notes)

	return strings.TrimRight(b.String(), "\n")
}

func projectTypes(p project.Project) string {
	labels := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if t == skill.OtherKey && strings.TrimSpace(p.TypeOther) != "" {
			labels = append(labels, skill.ProjectTypeLabel(t)+" ("+strings.TrimSpace(p.TypeOther)+")")
			continue
		}
		labels = append(labels, skill.ProjectTypeLabel(t))
	}
	return strings.Join(labels, ", ")
}

func skillList(skills []project.SkillRequirement, other string) string {
	parts := make([]string, 0, len(skills)+1)
	for _, s := range skills {
		parts = append(parts, s.Name+" ("+s.MinLevel.String()+")")
	}
	if other = strings.TrimSpace(other); other != "" {
		parts = append(parts, "other: "+other)
	}
	return strings.Join(parts, ", ")
}

// BuildPrompt combines the summary, the dialogue so far and the latest
// client message into the oracle prompt.
func BuildPrompt(p project.Project, history project.Conversation, latest string) string {
	var b strings.Builder
	b.WriteString("Evaluate the following project.\n\n")
	b.WriteString(Summary(p))

	dialogue := history.Dialogue()
	if len(dialogue) > 0 {
		b.WriteString("\n\nConversation so far:\n")
		for _, t := range dialogue {
			b.WriteString(string(t.Role))
			b.WriteString(": ")
			b.WriteString(strings.TrimSpace(t.Text))
			b.WriteString("\n")
		}
	}

	if latest = strings.TrimSpace(latest); latest != "" {
		if len(dialogue) == 0 {
			b.WriteString("\n")
		}
		b.WriteString("\nLatest client message: ")
		b.WriteString(latest)
	}

	return strings.TrimRight(b.String(), "\n")
}
