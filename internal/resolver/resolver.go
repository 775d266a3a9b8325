// Package resolver recovers per-item questionnaire answers from a chat turn,
// whichever way the calling platform transported them.
package resolver

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"mindscreen/internal/model"
)

// Strategy names, reported for logging and tests
const (
	StrategyQuestionKeys        = "question_keys"
	StrategyArrayKey            = "array_key"
	StrategyContextQuestionKeys = "context_question_keys"
	StrategyContextArrayKey     = "context_array_key"
)

// Result is a complete answer set and where it came from
type Result struct {
	Answers  []int
	Strategy string
	Context  string // context name for the context-scoped strategies
}

// QuestionKey returns the per-item parameter name, e.g. "phq9_q3"
func QuestionKey(instrumentKey string, item int) string {
	return fmt.Sprintf("%s_q%d", instrumentKey, item)
}

// ArrayKey returns the array parameter name, e.g. "gad7_answers"
func ArrayKey(instrumentKey string) string {
	return instrumentKey + "_answers"
}

// Resolve returns the first complete, valid answer set found in req.
// Strategies run in fixed order: per-question keys, array key, then both
// again scoped to each context in turn. A context never borrows answers from
// another context. Returns model.ErrAnswerNotFound when nothing is complete.
func Resolve(req model.AnswerExtractionRequest, instrumentKey string, questionCount int) (*Result, error) {
	if questionCount <= 0 {
		return nil, model.ErrAnswerNotFound
	}

	if answers, ok := fromQuestionKeys(req.Parameters, instrumentKey, questionCount); ok {
		return &Result{Answers: answers, Strategy: StrategyQuestionKeys}, nil
	}
	if answers, ok := fromArrayKey(req.Parameters, instrumentKey, questionCount); ok {
		return &Result{Answers: answers, Strategy: StrategyArrayKey}, nil
	}

	for _, c := range req.Contexts {
		if answers, ok := fromQuestionKeys(c.Parameters, instrumentKey, questionCount); ok {
			return &Result{Answers: answers, Strategy: StrategyContextQuestionKeys, Context: c.Name}, nil
		}
		if answers, ok := fromArrayKey(c.Parameters, instrumentKey, questionCount); ok {
			return &Result{Answers: answers, Strategy: StrategyContextArrayKey, Context: c.Name}, nil
		}
	}

	return nil, model.ErrAnswerNotFound
}

// ResolveInstrument is Resolve keyed by a known instrument
func ResolveInstrument(req model.AnswerExtractionRequest, instrument model.Instrument) (*Result, error) {
	return Resolve(req, string(instrument), instrument.QuestionCount())
}

// ParseSingle reads one free-text reply as the next answer. The text must be
// exactly one numeric token in the 0-3 range.
func ParseSingle(raw string) (int, error) {
	fields := strings.Fields(raw)
	if len(fields) != 1 {
		return 0, model.ErrAnswerNotFound
	}
	v, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, model.ErrAnswerNotFound
	}
	if !model.ValidAnswer(v) {
		return 0, model.ErrInvalidAnswerValue
	}
	return v, nil
}

// ParseValue converts one transported answer to an int in range. JSON numbers
// arrive as float64 and must be integral; strings are trimmed and parsed.
func ParseValue(raw interface{}) (int, error) {
	var v int
	switch x := raw.(type) {
	case int:
		v = x
	case int32:
		v = int(x)
	case int64:
		v = int(x)
	case float64:
		if x != math.Trunc(x) || math.IsInf(x, 0) || math.IsNaN(x) {
			return 0, model.ErrAnswerNotFound
		}
		v = int(x)
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			return 0, model.ErrAnswerNotFound
		}
		v = int(n)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, model.ErrAnswerNotFound
		}
		v = n
	default:
		return 0, model.ErrAnswerNotFound
	}
	if !model.ValidAnswer(v) {
		return 0, model.ErrInvalidAnswerValue
	}
	return v, nil
}

// fromQuestionKeys skips items that fail to parse, but only succeeds when
// every item parsed.
func fromQuestionKeys(params map[string]interface{}, instrumentKey string, n int) ([]int, bool) {
	if len(params) == 0 {
		return nil, false
	}
	answers := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		raw, ok := params[QuestionKey(instrumentKey, i)]
		if !ok {
			continue
		}
		v, err := ParseValue(raw)
		if err != nil {
			continue
		}
		answers = append(answers, v)
	}
	if len(answers) != n {
		return nil, false
	}
	return answers, true
}

// fromArrayKey takes the first n elements and fails on any bad element.
func fromArrayKey(params map[string]interface{}, instrumentKey string, n int) ([]int, bool) {
	raw, ok := params[ArrayKey(instrumentKey)]
	if !ok {
		return nil, false
	}
	items, ok := asSlice(raw)
	if !ok || len(items) < n {
		return nil, false
	}
	answers := make([]int, n)
	for i := 0; i < n; i++ {
		v, err := ParseValue(items[i])
		if err != nil {
			return nil, false
		}
		answers[i] = v
	}
	return answers, true
}

func asSlice(raw interface{}) ([]interface{}, bool) {
	switch x := raw.(type) {
	case []interface{}:
		return x, true
	case []int:
		out := make([]interface{}, len(x))
		for i, v := range x {
			out[i] = v
		}
		return out, true
	case []string:
		out := make([]interface{}, len(x))
		for i, v := range x {
			out[i] = v
		}
		return out, true
	case []float64:
		out := make([]interface{}, len(x))
		for i, v := range x {
			out[i] = v
		}
		return out, true
	default:
		return nil, false
	}
}
