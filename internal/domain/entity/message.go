package entity

import "encoding/json"

type MessageType string

const (
	MessageGetSelection     MessageType = "get-selection"
	MessageQuerySelection   MessageType = "query-selection"
	MessageSelectionData    MessageType = "selection-data"
	MessageSelectionChanged MessageType = "selection-changed"
	MessageClose            MessageType = "close"
	MessageShowUI           MessageType = "show-ui"
)

func (t MessageType) String() string {
	return string(t)
}

// RelayMessage is the tagged envelope exchanged across the relay boundary.
type RelayMessage struct {
	ID      string          `json:"id,omitempty"`
	Type    MessageType     `json:"type"`
	ReplyTo string          `json:"replyTo,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Decode unmarshals the payload into v. An empty payload leaves v untouched.
func (m RelayMessage) Decode(v any) error {
	if len(m.Payload) == 0 {
		return nil
	}
	return json.Unmarshal(m.Payload, v)
}

func NewRelayMessage(t MessageType, payload any) (RelayMessage, error) {
	msg := RelayMessage{Type: t}
	if payload == nil {
		return msg, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return RelayMessage{}, err
	}
	msg.Payload = data
	return msg, nil
}

type SelectionItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type SelectionData struct {
	Data []SelectionItem `json:"data"`
}

type SelectionChanged struct {
	HasSelection bool `json:"hasSelection"`
}

type SurfaceOptions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}
