package service

import (
	"fmt"

	"mindscreen/internal/model"
)

const answerScale = "Answer 0 (not at all), 1 (several days), 2 (more than half the days) or 3 (nearly every day)."

var questionPrompts = map[model.Instrument][]string{
	model.InstrumentPHQ9: {
		"Little interest or pleasure in doing things?",
		"Feeling down, depressed, or hopeless?",
		"Trouble falling or staying asleep, or sleeping too much?",
		"Feeling tired or having little energy?",
		"Poor appetite or overeating?",
		"Feeling bad about yourself, or that you are a failure or have let yourself or your family down?",
		"Trouble concentrating on things, such as reading the newspaper or watching television?",
		"Moving or speaking so slowly that other people could have noticed? Or being so fidgety or restless that you have been moving around a lot more than usual?",
		"Thoughts that you would be better off dead, or of hurting yourself in some way?",
	},
	model.InstrumentGAD7: {
		"Feeling nervous, anxious, or on edge?",
		"Not being able to stop or control worrying?",
		"Worrying too much about different things?",
		"Trouble relaxing?",
		"Being so restless that it is hard to sit still?",
		"Becoming easily annoyed or irritable?",
		"Feeling afraid, as if something awful might happen?",
	},
}

// QuestionPrompt returns the numbered text of item index (0-based)
func QuestionPrompt(instrument model.Instrument, index int) (string, bool) {
	prompts := questionPrompts[instrument]
	if index < 0 || index >= len(prompts) {
		return "", false
	}
	return fmt.Sprintf("%s question %d of %d: Over the last 2 weeks, how often have you been bothered by: %s",
		instrument.Label(), index+1, len(prompts), prompts[index]), true
}
