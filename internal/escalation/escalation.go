// Package escalation decides whether a turn must surface crisis support.
package escalation

import "mindscreen/internal/model"

const (
	// SentimentRiskThreshold escalates any turn at or below this score
	SentimentRiskThreshold = -0.8

	// PHQ9SevereThreshold escalates PHQ-9 totals at or above this value.
	// Applied to PHQ-9 only; GAD-7 has no score-based escalation.
	PHQ9SevereThreshold = 20
)

// Decide combines the available risk signals into one verdict. Rules are
// checked top to bottom and the first match sets the reason code. New risk
// signals belong above the numeric threshold rule.
func Decide(score *model.ScoreResult, explicitCrisisIntent bool, sentiment *float64) model.EscalationVerdict {
	switch {
	case explicitCrisisIntent:
		return escalate(model.ReasonCrisisIntent)
	case sentiment != nil && *sentiment <= SentimentRiskThreshold:
		return escalate(model.ReasonHighSentimentRisk)
	case score != nil && score.FlaggedItem:
		return escalate(model.ReasonFlaggedItem)
	case score != nil && score.Instrument == model.InstrumentPHQ9 && score.Total >= PHQ9SevereThreshold:
		return escalate(model.ReasonScoreSevere)
	default:
		return model.EscalationVerdict{Escalate: false, ReasonCode: model.ReasonNone}
	}
}

func escalate(reason model.ReasonCode) model.EscalationVerdict {
	return model.EscalationVerdict{Escalate: true, ReasonCode: reason}
}
