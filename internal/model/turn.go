package model

// TriggerKind is the closed set of events the engine reacts to
type TriggerKind string

const (
	TriggerStartInstrument TriggerKind = "start_instrument"
	TriggerSubmitAnswer    TriggerKind = "submit_answer"
	TriggerCrisisSignal    TriggerKind = "crisis_signal"
	TriggerBookingRequest  TriggerKind = "booking_request"
	TriggerOther           TriggerKind = "other"
)

// Trigger is the classified intent of one turn
type Trigger struct {
	Kind       TriggerKind `json:"kind"`
	Instrument Instrument  `json:"instrument,omitempty"` // StartInstrument / SubmitAnswer
	Value      *int        `json:"value,omitempty"`      // slot-filled answer, SubmitAnswer only
}

// OutputContext is a platform context carrying its own parameter map
type OutputContext struct {
	Name          string                 `json:"name"`
	LifespanCount int                    `json:"lifespanCount,omitempty"`
	Parameters    map[string]interface{} `json:"parameters,omitempty"`
}

// AnswerExtractionRequest is the read-only view of a turn used by the resolver
type AnswerExtractionRequest struct {
	Parameters map[string]interface{}
	Contexts   []OutputContext
	RawText    string
}

// Turn is one inbound exchange from the chat platform
type Turn struct {
	SessionKey     string                 `json:"sessionKey"`
	IntentName     string                 `json:"intentName"`
	Trigger        Trigger                `json:"trigger"`
	Parameters     map[string]interface{} `json:"parameters,omitempty"`
	OutputContexts []OutputContext        `json:"outputContexts,omitempty"`
	RawText        string                 `json:"rawText,omitempty"`
	Sentiment      *float64               `json:"sentiment,omitempty"` // platform-supplied score, if any
}

// ExtractionRequest returns the resolver view of the turn
func (t *Turn) ExtractionRequest() AnswerExtractionRequest {
	return AnswerExtractionRequest{
		Parameters: t.Parameters,
		Contexts:   t.OutputContexts,
		RawText:    t.RawText,
	}
}
