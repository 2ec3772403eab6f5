package matching

import (
	"sort"
	"strings"

	"dev-match/internal/domain/schedule"
	"dev-match/internal/domain/skill"

	"github.com/google/uuid"
)

const (
	RequiredSkillPoints  = 20
	PreferredSkillPoints = 10
	StartDatePoints      = 20
	LateStartPoints      = 10
)

type Requirement struct {
	Name     string      `json:"name"`
	Level    skill.Level `json:"level"`
	Required bool        `json:"required"`
}

// Requirements is the normalized requirement set produced by the evaluator.
type Requirements struct {
	Skills    []Requirement  `json:"skills"`
	StartDate schedule.Start `json:"start_date"`
}

type DeveloperSkill struct {
	Name            string
	Level           skill.Level
	YearsExperience int
}

type Developer struct {
	ID            uuid.UUID
	Name          string
	Email         string
	AvailableFrom schedule.Start
	Skills        []DeveloperSkill
}

type MatchedSkill struct {
	Name            string
	RequiredLevel   skill.Level
	DeveloperLevel  skill.Level
	YearsExperience int
	Required        bool
}

// UnmatchedSkill.DeveloperLevel is LevelUnknown when the developer has no
// record of the skill at all.
type UnmatchedSkill struct {
	Name           string
	RequiredLevel  skill.Level
	DeveloperLevel skill.Level
	Required       bool
}

type Result struct {
	DeveloperID    uuid.UUID
	DeveloperName  string
	DeveloperEmail string
	MatchScore     int
	Reason         string
	Disqualified   bool
	MatchedSkills  []MatchedSkill
	MissingSkills  []UnmatchedSkill
}

// Policy bounds the ranked output. TopN <= 0 means no truncation.
type Policy struct {
	TopN     int
	MinScore int
}

var (
	DefaultPolicy = Policy{TopN: 5, MinScore: 0}
	LegacyPolicy  = Policy{TopN: 10, MinScore: 50}
)

// Split partitions requirements into required and preferred entries. Blank
// names are dropped. Repeated names collapse into the first entry, which
// becomes required if any repeat is and keeps the highest level seen.
func (r Requirements) Split() (required, preferred []Requirement) {
	merged := make([]Requirement, 0, len(r.Skills))
	index := make(map[string]int, len(r.Skills))
	for _, req := range r.Skills {
		key := normalizeSkillName(req.Name)
		if key == "" {
			continue
		}
		i, dup := index[key]
		if !dup {
			index[key] = len(merged)
			merged = append(merged, req)
			continue
		}
		merged[i].Required = merged[i].Required || req.Required
		if req.Level > merged[i].Level {
			merged[i].Level = req.Level
		}
	}
	for _, req := range merged {
		if req.Required {
			required = append(required, req)
		} else {
			preferred = append(preferred, req)
		}
	}
	return required, preferred
}

// MaxScore is the highest score any developer can reach for r.
func (r Requirements) MaxScore() int {
	required, preferred := r.Split()
	return RequiredSkillPoints*len(required) + PreferredSkillPoints*len(preferred) + StartDatePoints
}

// Assess scores a single developer without filtering. A developer lacking a
// required skill, or holding it below the minimum level, is marked
// Disqualified.
func Assess(reqs Requirements, dev Developer) Result {
	devByName := make(map[string]DeveloperSkill, len(dev.Skills))
	for _, ds := range dev.Skills {
		key := normalizeSkillName(ds.Name)
		if key == "" {
			continue
		}
		if prev, ok := devByName[key]; ok && prev.Level >= ds.Level {
			continue
		}
		devByName[key] = ds
	}

	required, preferred := reqs.Split()

	res := Result{
		DeveloperID:    dev.ID,
		DeveloperName:  dev.Name,
		DeveloperEmail: dev.Email,
		MatchedSkills:  make([]MatchedSkill, 0, len(required)+len(preferred)),
		MissingSkills:  make([]UnmatchedSkill, 0),
	}

	score := 0
	var requiredMissing []string
	var requiredMet []MatchedSkill

	for _, r := range required {
		ds, ok := devByName[normalizeSkillName(r.Name)]
		if !ok || !ds.Level.Meets(r.Level) {
			res.Disqualified = true
			requiredMissing = append(requiredMissing, r.Name)
			res.MissingSkills = append(res.MissingSkills, UnmatchedSkill{
				Name:           r.Name,
				RequiredLevel:  r.Level,
				DeveloperLevel: ds.Level,
				Required:       true,
			})
			continue
		}
		score += RequiredSkillPoints
		m := MatchedSkill{
			Name:            r.Name,
			RequiredLevel:   r.Level,
			DeveloperLevel:  ds.Level,
			YearsExperience: ds.YearsExperience,
			Required:        true,
		}
		requiredMet = append(requiredMet, m)
		res.MatchedSkills = append(res.MatchedSkills, m)
	}

	for _, r := range preferred {
		ds, ok := devByName[normalizeSkillName(r.Name)]
		if !ok || !ds.Level.Meets(r.Level) {
			res.MissingSkills = append(res.MissingSkills, UnmatchedSkill{
				Name:           r.Name,
				RequiredLevel:  r.Level,
				DeveloperLevel: ds.Level,
			})
			continue
		}
		score += PreferredSkillPoints
		res.MatchedSkills = append(res.MatchedSkills, MatchedSkill{
			Name:            r.Name,
			RequiredLevel:   r.Level,
			DeveloperLevel:  ds.Level,
			YearsExperience: ds.YearsExperience,
		})
	}

	score += startDateScore(reqs.StartDate, dev.AvailableFrom)

	res.MatchScore = score
	res.Reason = reason(requiredMet, requiredMissing)
	return res
}

// Score ranks every qualifying developer by score, highest first. Ties keep
// input order. Results under policy.MinScore are dropped and the list is cut
// to policy.TopN.
func Score(reqs Requirements, devs []Developer, policy Policy) []Result {
	out := make([]Result, 0, len(devs))
	for _, d := range devs {
		res := Assess(reqs, d)
		if res.Disqualified {
			continue
		}
		if res.MatchScore < policy.MinScore {
			continue
		}
		out = append(out, res)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchScore > out[j].MatchScore
	})

	if policy.TopN > 0 && len(out) > policy.TopN {
		out = out[:policy.TopN]
	}
	return out
}

func startDateScore(want, avail schedule.Start) int {
	if want.IsZero() || avail.IsZero() {
		return 0
	}
	if want.Immediate {
		if avail.Immediate {
			return StartDatePoints
		}
		return 0
	}
	if avail.NoLaterThan(want) {
		return StartDatePoints
	}
	return LateStartPoints
}

func reason(met []MatchedSkill, missing []string) string {
	if len(missing) > 0 {
		return "Missing required skills: " + strings.Join(missing, ", ")
	}
	if len(met) == 0 {
		return "All required skills met"
	}
	parts := make([]string, 0, len(met))
	for _, m := range met {
		parts = append(parts, m.Name+" ("+m.DeveloperLevel.String()+")")
	}
	return "All required skills met: " + strings.Join(parts, ", ")
}

func normalizeSkillName(s string) string {
	return skill.Canonical(s)
}
