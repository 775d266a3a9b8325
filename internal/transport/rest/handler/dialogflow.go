package handler

// Dialogflow ES fulfillment wire types

type dfRequest struct {
	ResponseID  string        `json:"responseId,omitempty"`
	Session     string        `json:"session"`
	QueryResult dfQueryResult `json:"queryResult"`
}

type dfQueryResult struct {
	QueryText               string                 `json:"queryText"`
	Parameters              map[string]interface{} `json:"parameters,omitempty"`
	Intent                  dfIntent               `json:"intent"`
	OutputContexts          []dfContext            `json:"outputContexts,omitempty"`
	SentimentAnalysisResult *dfSentimentResult     `json:"sentimentAnalysisResult,omitempty"`
}

type dfIntent struct {
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"displayName"`
}

type dfContext struct {
	Name          string                 `json:"name"`
	LifespanCount int                    `json:"lifespanCount,omitempty"`
	Parameters    map[string]interface{} `json:"parameters,omitempty"`
}

type dfSentimentResult struct {
	QueryTextSentiment *dfSentiment `json:"queryTextSentiment,omitempty"`
}

type dfSentiment struct {
	Score     *float64 `json:"score,omitempty"`
	Magnitude float64  `json:"magnitude,omitempty"`
}

type dfResponse struct {
	FulfillmentText     string      `json:"fulfillmentText"`
	FulfillmentMessages []dfMessage `json:"fulfillmentMessages,omitempty"`
	OutputContexts      []dfContext `json:"outputContexts,omitempty"`
}

type dfMessage struct {
	Text dfText `json:"text"`
}

type dfText struct {
	Text []string `json:"text"`
}
