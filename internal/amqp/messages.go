package amqp

import (
	"encoding/json"
	"time"
)

// TranscriptMessage carries one captured utterance from a capture client
// to the ledger worker. The worker parses the text; the capture side
// never interprets it.
type TranscriptMessage struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	Source     string    `json:"source"` // "voice" or "photo"
	CapturedAt time.Time `json:"captured_at"`
}

func NewTranscriptMessage(id, text, source string) *TranscriptMessage {
	return &TranscriptMessage{
		ID:         id,
		Text:       text,
		Source:     source,
		CapturedAt: time.Now(),
	}
}

func (m *TranscriptMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TranscriptMessageFromJSON(data []byte) (*TranscriptMessage, error) {
	var msg TranscriptMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
