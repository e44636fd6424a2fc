package catalog

// Sport is the game a scenario is drilled for.
type Sport string

const (
	SportBaseball Sport = "baseball"
	SportSoftball Sport = "softball"
)

// AllSports returns all sports in display order.
func AllSports() []Sport {
	return []Sport{SportBaseball, SportSoftball}
}

// Valid reports whether s is a known sport.
func (s Sport) Valid() bool {
	switch s {
	case SportBaseball, SportSoftball:
		return true
	}
	return false
}

// SportDisplayName returns a human-readable name for a sport.
func SportDisplayName(s Sport) string {
	switch s {
	case SportBaseball:
		return "Baseball"
	case SportSoftball:
		return "Softball"
	default:
		return string(s)
	}
}

// Level is the playing level a scenario targets.
type Level string

const (
	LevelYouth      Level = "youth"
	LevelHighSchool Level = "high_school"
	LevelCollege    Level = "college"
	LevelAdult      Level = "adult"
)

// AllLevels returns all levels from youngest to oldest.
func AllLevels() []Level {
	return []Level{LevelYouth, LevelHighSchool, LevelCollege, LevelAdult}
}

// Valid reports whether l is a known level.
func (l Level) Valid() bool {
	switch l {
	case LevelYouth, LevelHighSchool, LevelCollege, LevelAdult:
		return true
	}
	return false
}

// LevelDisplayName returns a human-readable name for a level.
func LevelDisplayName(l Level) string {
	switch l {
	case LevelYouth:
		return "Youth"
	case LevelHighSchool:
		return "High School"
	case LevelCollege:
		return "College"
	case LevelAdult:
		return "Adult"
	default:
		return string(l)
	}
}

// Position is a defensive position on the diamond.
type Position string

const (
	PositionPitcher     Position = "P"
	PositionCatcher     Position = "C"
	PositionFirstBase   Position = "1B"
	PositionSecondBase  Position = "2B"
	PositionThirdBase   Position = "3B"
	PositionShortstop   Position = "SS"
	PositionLeftField   Position = "LF"
	PositionCenterField Position = "CF"
	PositionRightField  Position = "RF"
)

// AllPositions returns the positions in scorekeeping order.
func AllPositions() []Position {
	return []Position{
		PositionPitcher,
		PositionCatcher,
		PositionFirstBase,
		PositionSecondBase,
		PositionThirdBase,
		PositionShortstop,
		PositionLeftField,
		PositionCenterField,
		PositionRightField,
	}
}

// Valid reports whether p is a known position.
func (p Position) Valid() bool {
	for _, known := range AllPositions() {
		if p == known {
			return true
		}
	}
	return false
}

// PositionDisplayName returns the full name of a position.
func PositionDisplayName(p Position) string {
	switch p {
	case PositionPitcher:
		return "Pitcher"
	case PositionCatcher:
		return "Catcher"
	case PositionFirstBase:
		return "First Base"
	case PositionSecondBase:
		return "Second Base"
	case PositionThirdBase:
		return "Third Base"
	case PositionShortstop:
		return "Shortstop"
	case PositionLeftField:
		return "Left Field"
	case PositionCenterField:
		return "Center Field"
	case PositionRightField:
		return "Right Field"
	default:
		return string(p)
	}
}

// Option is one of the three graded answers to a scenario.
type Option struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	CoachingCue string `json:"coaching_cue,omitempty"`
}

// Scenario is a single situational drill. Best is always the correct
// answer; OK and Bad are progressively worse alternatives.
type Scenario struct {
	ID       string   `json:"id"`
	Sport    Sport    `json:"sport"`
	Level    Level    `json:"level"`
	Category string   `json:"category"`
	Position Position `json:"position,omitempty"`
	Prompt   string   `json:"prompt"`
	Best     Option   `json:"best"`
	OK       Option   `json:"ok"`
	Bad      Option   `json:"bad"`
}
