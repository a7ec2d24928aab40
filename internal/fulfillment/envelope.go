// Package fulfillment assembles the Dialogflow CX webhook response
// envelope. The wire shape is a fixed contract with the conversational
// platform and must not drift.
package fulfillment

// Status is the coarse business outcome reported to the platform.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFail    Status = "fail"
)

// Envelope is the top-level webhook response object.
type Envelope struct {
	FulfillmentResponse Response    `json:"fulfillmentResponse"`
	SessionInfo         SessionInfo `json:"sessionInfo"`
}

// Response wraps the spoken messages.
type Response struct {
	Messages []Message `json:"messages"`
}

// Message wraps one text payload.
type Message struct {
	Text Text `json:"text"`
}

// Text carries the spoken text strings.
type Text struct {
	Text []string `json:"text"`
}

// SessionInfo carries the session parameters written back to the
// conversation state.
type SessionInfo struct {
	Parameters map[string]any `json:"parameters"`
}

// StatusKey is the session parameter that always carries the business
// outcome.
const StatusKey = "business_status"

// Build assembles an envelope. An empty text produces an empty message
// list (nothing spoken). Extra parameters are merged after the status is
// set, so on a key collision the extra field wins.
func Build(text string, status Status, extra map[string]any) Envelope {
	messages := []Message{}
	if text != "" {
		messages = append(messages, Message{Text: Text{Text: []string{text}}})
	}

	params := map[string]any{StatusKey: string(status)}
	for k, v := range extra {
		params[k] = v
	}

	return Envelope{
		FulfillmentResponse: Response{Messages: messages},
		SessionInfo:         SessionInfo{Parameters: params},
	}
}
