package skill

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Level is an ordered proficiency rating. The zero value means the level is
// unknown and never satisfies a requirement.
type Level int

const (
	LevelUnknown Level = iota
	LevelBeginner
	LevelIntermediate
	LevelAdvanced
	LevelExpert
)

var levelNames = map[Level]string{
	LevelBeginner:     "beginner",
	LevelIntermediate: "intermediate",
	LevelAdvanced:     "advanced",
	LevelExpert:       "expert",
}

func Levels() []Level {
	return []Level{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert}
}

func ParseLevel(s string) (Level, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for lvl, name := range levelNames {
		if name == key {
			return lvl, nil
		}
	}
	return LevelUnknown, fmt.Errorf("unknown skill level %q", s)
}

func (l Level) Valid() bool {
	return l >= LevelBeginner && l <= LevelExpert
}

// Meets reports whether l satisfies the minimum level min.
func (l Level) Meets(min Level) bool {
	return l.Valid() && l >= min
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "unknown"
}

func (l Level) MarshalJSON() ([]byte, error) {
	if !l.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(l.String())
}

func (l *Level) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*l = LevelUnknown
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseLevel(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
