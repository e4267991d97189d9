package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Feedback is either plain text or a structured explanation. On the wire it
// is a JSON string or an object with message, steps and explanation.
type Feedback struct {
	Text   string
	Detail *FeedbackDetail
}

// FeedbackDetail is the structured form of Feedback.
type FeedbackDetail struct {
	Message     string   `json:"message"`
	Steps       []string `json:"steps,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

// TextFeedback returns plain-text feedback.
func TextFeedback(s string) *Feedback {
	return &Feedback{Text: s}
}

// DetailedFeedback returns structured feedback.
func DetailedFeedback(message string, steps []string, explanation string) *Feedback {
	return &Feedback{Detail: &FeedbackDetail{
		Message:     message,
		Steps:       steps,
		Explanation: explanation,
	}}
}

// IsStructured reports whether the feedback carries a detail object.
func (f *Feedback) IsStructured() bool {
	return f != nil && f.Detail != nil
}

func (f Feedback) MarshalJSON() ([]byte, error) {
	if f.Detail != nil {
		return json.Marshal(f.Detail)
	}
	return json.Marshal(f.Text)
}

func (f *Feedback) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty feedback")
	}
	switch data[0] {
	case '"':
		f.Detail = nil
		return json.Unmarshal(data, &f.Text)
	case '{':
		var d FeedbackDetail
		if err := json.Unmarshal(data, &d); err != nil {
			return fmt.Errorf("decode feedback object: %w", err)
		}
		f.Text = ""
		f.Detail = &d
		return nil
	case 'n':
		*f = Feedback{}
		return nil
	}
	return fmt.Errorf("feedback must be a string or object, got %s", data)
}
