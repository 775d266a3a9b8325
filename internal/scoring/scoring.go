// Package scoring maps completed PHQ-9 and GAD-7 answer sets to a total,
// a severity band and the PHQ-9 self-harm flag.
package scoring

import (
	"fmt"

	"mindscreen/internal/model"
)

// flaggedItemIndex is PHQ-9 item 9, thoughts of self-harm
const flaggedItemIndex = 8

type band struct {
	upper int // inclusive
	label string
}

var phq9Bands = []band{
	{4, model.SeverityMinimal},
	{9, model.SeverityMild},
	{14, model.SeverityModerate},
	{19, model.SeverityModeratelySevere},
}

var gad7Bands = []band{
	{4, model.SeverityMinimal},
	{9, model.SeverityMild},
	{14, model.SeverityModerate},
}

// Score totals a completed answer set. A wrong answer count or an
// out-of-range value is a caller defect and returns ErrInstrumentMismatch
// or ErrInvalidAnswerValue rather than a best-effort score.
func Score(instrument model.Instrument, answers []int) (model.ScoreResult, error) {
	var bands []band
	switch instrument {
	case model.InstrumentPHQ9:
		bands = phq9Bands
	case model.InstrumentGAD7:
		bands = gad7Bands
	default:
		return model.ScoreResult{}, fmt.Errorf("%w: unknown instrument %q", model.ErrInstrumentMismatch, instrument)
	}

	if len(answers) != instrument.QuestionCount() {
		return model.ScoreResult{}, fmt.Errorf("%w: %s needs %d answers, got %d",
			model.ErrInstrumentMismatch, instrument.Label(), instrument.QuestionCount(), len(answers))
	}

	total := 0
	for i, v := range answers {
		if !model.ValidAnswer(v) {
			return model.ScoreResult{}, fmt.Errorf("%w: item %d = %d", model.ErrInvalidAnswerValue, i+1, v)
		}
		total += v
	}

	return model.ScoreResult{
		Instrument:    instrument,
		Total:         total,
		SeverityLabel: severity(bands, total),
		FlaggedItem:   instrument == model.InstrumentPHQ9 && answers[flaggedItemIndex] > 0,
	}, nil
}

// Severity returns the band label for a total without needing the answers
func Severity(instrument model.Instrument, total int) string {
	if instrument == model.InstrumentGAD7 {
		return severity(gad7Bands, total)
	}
	return severity(phq9Bands, total)
}

func severity(bands []band, total int) string {
	for _, b := range bands {
		if total <= b.upper {
			return b.label
		}
	}
	return model.SeveritySevere
}
