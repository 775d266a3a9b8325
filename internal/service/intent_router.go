package service

import (
	"strings"
	"sync"

	"mindscreen/internal/model"
	"mindscreen/internal/resolver"
)

// answerParam is the slot a platform may fill with a single answer
const answerParam = "answer"

// IntentRouter maps platform intent names onto the closed trigger set.
// Matching is exact after lower-casing and trimming.
type IntentRouter struct {
	mu     sync.RWMutex
	routes map[string]model.Trigger
}

// NewIntentRouter creates a router with the default intent table
func NewIntentRouter() *IntentRouter {
	r := &IntentRouter{routes: make(map[string]model.Trigger)}

	start := func(i model.Instrument) model.Trigger {
		return model.Trigger{Kind: model.TriggerStartInstrument, Instrument: i}
	}
	submit := func(i model.Instrument) model.Trigger {
		return model.Trigger{Kind: model.TriggerSubmitAnswer, Instrument: i}
	}
	crisis := model.Trigger{Kind: model.TriggerCrisisSignal}
	booking := model.Trigger{Kind: model.TriggerBookingRequest}

	for _, i := range []model.Instrument{model.InstrumentPHQ9, model.InstrumentGAD7} {
		name := string(i)
		r.Register("screening."+name+".start", start(i))
		r.Register(name+".start", start(i))
		r.Register("screening."+name+".answer", submit(i))
		r.Register(name+".answer", submit(i))
		r.Register("screening."+name+".complete", submit(i))
		r.Register(name+".complete", submit(i))
	}
	r.Register("crisis", crisis)
	r.Register("crisis.suicidal", crisis)
	r.Register("crisis.selfharm", crisis)
	r.Register("booking.request", booking)
	r.Register("counsellor.booking", booking)

	return r
}

// Register adds or replaces the trigger for an intent name
func (r *IntentRouter) Register(intentName string, trigger model.Trigger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[normalizeIntent(intentName)] = trigger
}

// Classify returns the trigger for a turn. SubmitAnswer picks up a
// slot-filled "answer" parameter as its value when one parses.
func (r *IntentRouter) Classify(intentName string, params map[string]interface{}) model.Trigger {
	r.mu.RLock()
	trigger, ok := r.routes[normalizeIntent(intentName)]
	r.mu.RUnlock()

	if !ok {
		return model.Trigger{Kind: model.TriggerOther}
	}

	if trigger.Kind == model.TriggerSubmitAnswer {
		if raw, ok := params[answerParam]; ok {
			if v, err := resolver.ParseValue(raw); err == nil {
				trigger.Value = &v
			}
		}
	}
	return trigger
}

func normalizeIntent(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
