package model

// Severity labels shared by both instruments
const (
	SeverityMinimal          = "Minimal or none"
	SeverityMild             = "Mild"
	SeverityModerate         = "Moderate"
	SeverityModeratelySevere = "Moderately severe"
	SeveritySevere           = "Severe"
)

// ScoreResult is produced once per completed questionnaire
type ScoreResult struct {
	Instrument    Instrument `json:"instrument" bson:"instrument"`
	Total         int        `json:"total" bson:"total"`
	SeverityLabel string     `json:"severity" bson:"severity"`
	FlaggedItem   bool       `json:"flaggedItem" bson:"flaggedItem"` // PHQ-9 item 9 > 0
}
