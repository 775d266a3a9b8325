package service

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"mindscreen/internal/model"
)

// IntentMapping is one entry of an intent table file:
//
//	intents:
//	  - intent: "Depression Screening - Start"
//	    trigger: start_instrument
//	    instrument: phq9
type IntentMapping struct {
	Intent     string `yaml:"intent"`
	Trigger    string `yaml:"trigger"`
	Instrument string `yaml:"instrument,omitempty"`
}

type intentTable struct {
	Intents []IntentMapping `yaml:"intents"`
}

// LoadTableFile registers every mapping in a YAML intent table file
func (r *IntentRouter) LoadTableFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading intent table: %w", err)
	}
	return r.LoadTable(data)
}

// LoadTable registers mappings from YAML. Nothing is registered unless
// every entry is valid.
func (r *IntentRouter) LoadTable(data []byte) (int, error) {
	var table intentTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return 0, fmt.Errorf("parsing intent table: %w", err)
	}

	var result *multierror.Error
	triggers := make([]model.Trigger, len(table.Intents))
	for i, m := range table.Intents {
		trigger, err := m.trigger()
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("entry %d (%q): %w", i+1, m.Intent, err))
			continue
		}
		triggers[i] = trigger
	}
	if err := result.ErrorOrNil(); err != nil {
		return 0, err
	}

	for i, m := range table.Intents {
		r.Register(m.Intent, triggers[i])
	}
	return len(table.Intents), nil
}

func (m IntentMapping) trigger() (model.Trigger, error) {
	if normalizeIntent(m.Intent) == "" {
		return model.Trigger{}, fmt.Errorf("intent name is empty")
	}

	kind := model.TriggerKind(m.Trigger)
	inst := model.Instrument(m.Instrument)

	switch kind {
	case model.TriggerStartInstrument, model.TriggerSubmitAnswer:
		if !inst.Valid() {
			return model.Trigger{}, fmt.Errorf("trigger %s needs instrument phq9 or gad7, got %q", kind, m.Instrument)
		}
		return model.Trigger{Kind: kind, Instrument: inst}, nil
	case model.TriggerCrisisSignal, model.TriggerBookingRequest, model.TriggerOther:
		if m.Instrument != "" {
			return model.Trigger{}, fmt.Errorf("trigger %s takes no instrument", kind)
		}
		return model.Trigger{Kind: kind}, nil
	default:
		return model.Trigger{}, fmt.Errorf("unknown trigger %q", m.Trigger)
	}
}
