package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"mindscreen/internal/model"
	"mindscreen/internal/service"
)

const (
	maxWebhookBody        = 1 << 20
	resultContextLife     = 10
	escalationContextLife = 5
	bookingContextLife    = 5
)

// TurnHandler runs one conversational turn
type TurnHandler interface {
	HandleTurn(ctx context.Context, turn *model.Turn) (*model.Reply, error)
}

// TriggerClassifier maps platform intents to triggers
type TriggerClassifier interface {
	Classify(intentName string, params map[string]interface{}) model.Trigger
}

// WebhookHandler adapts Dialogflow fulfillment calls to the screening engine
type WebhookHandler struct {
	screening TurnHandler
	router    TriggerClassifier
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(screening TurnHandler, router TriggerClassifier) *WebhookHandler {
	return &WebhookHandler{
		screening: screening,
		router:    router,
	}
}

// Handle handles POST /webhook
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req dfRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxWebhookBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	turn := h.toTurn(&req)
	reply, err := h.screening.HandleTurn(r.Context(), turn)
	if errors.Is(err, service.ErrMissingSessionKey) {
		writeError(w, http.StatusBadRequest, "missing session")
		return
	}
	if err != nil {
		log.Printf("[Webhook] ERROR: turn failed for session %s (intent=%q): %v", turn.SessionKey, turn.IntentName, err)
		writeError(w, http.StatusInternalServerError, "failed to process turn")
		return
	}

	log.Printf("[Webhook] session %s intent=%q trigger=%s reply=%s", turn.SessionKey, turn.IntentName, turn.Trigger.Kind, reply.Kind)
	writeJSON(w, http.StatusOK, toResponse(req.Session, reply))
}

func (h *WebhookHandler) toTurn(req *dfRequest) *model.Turn {
	qr := req.QueryResult
	turn := &model.Turn{
		SessionKey: strings.TrimSpace(req.Session),
		IntentName: qr.Intent.DisplayName,
		Parameters: qr.Parameters,
		RawText:    qr.QueryText,
	}
	turn.Trigger = h.router.Classify(qr.Intent.DisplayName, qr.Parameters)

	for _, c := range qr.OutputContexts {
		turn.OutputContexts = append(turn.OutputContexts, model.OutputContext{
			Name:          c.Name,
			LifespanCount: c.LifespanCount,
			Parameters:    c.Parameters,
		})
	}

	if s := qr.SentimentAnalysisResult; s != nil && s.QueryTextSentiment != nil && s.QueryTextSentiment.Score != nil {
		score := *s.QueryTextSentiment.Score
		turn.Sentiment = &score
	}
	return turn
}

func toResponse(session string, reply *model.Reply) *dfResponse {
	resp := &dfResponse{
		FulfillmentText:     reply.Text,
		FulfillmentMessages: []dfMessage{{Text: dfText{Text: []string{reply.Text}}}},
	}

	if score := reply.Score; score != nil {
		key := string(score.Instrument)
		params := map[string]interface{}{
			key + "_score":    score.Total,
			key + "_severity": score.SeverityLabel,
		}
		if score.Instrument == model.InstrumentPHQ9 {
			params["suicidalItem"] = score.FlaggedItem
		}
		resp.OutputContexts = append(resp.OutputContexts, dfContext{
			Name:          contextName(session, key+"_result"),
			LifespanCount: resultContextLife,
			Parameters:    params,
		})
	}

	if reply.Escalation != nil {
		resp.OutputContexts = append(resp.OutputContexts, dfContext{
			Name:          contextName(session, "escalation_flag"),
			LifespanCount: escalationContextLife,
			Parameters: map[string]interface{}{
				"escalation_required": true,
				"reason":              string(reply.Escalation.ReasonCode),
			},
		})
	}

	if b := reply.Booking; b != nil {
		resp.OutputContexts = append(resp.OutputContexts, dfContext{
			Name:          contextName(session, "booking_confirmed"),
			LifespanCount: bookingContextLife,
			Parameters: map[string]interface{}{
				"booking_id":     b.ID,
				"booking_date":   b.Date,
				"booking_time":   b.Time,
				"contact_method": b.ContactMethod,
			},
		})
	}

	return resp
}

func contextName(session, name string) string {
	return strings.TrimSuffix(session, "/") + "/contexts/" + name
}
