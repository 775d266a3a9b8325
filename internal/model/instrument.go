package model

// Instrument identifies a screening questionnaire
type Instrument string

const (
	InstrumentNone Instrument = ""
	InstrumentPHQ9 Instrument = "phq9" // depression, 9 items
	InstrumentGAD7 Instrument = "gad7" // anxiety, 7 items
)

// Answer range shared by both instruments
const (
	MinAnswer = 0
	MaxAnswer = 3
)

// QuestionCount returns the fixed number of items, or 0 for unknown instruments
func (i Instrument) QuestionCount() int {
	switch i {
	case InstrumentPHQ9:
		return 9
	case InstrumentGAD7:
		return 7
	default:
		return 0
	}
}

// Valid reports whether i is a known questionnaire
func (i Instrument) Valid() bool {
	return i.QuestionCount() > 0
}

// Label is the display name used in replies
func (i Instrument) Label() string {
	switch i {
	case InstrumentPHQ9:
		return "PHQ-9"
	case InstrumentGAD7:
		return "GAD-7"
	default:
		return ""
	}
}

// ValidAnswer reports whether v is inside the 0-3 answer scale
func ValidAnswer(v int) bool {
	return v >= MinAnswer && v <= MaxAnswer
}
