package mira

import "time"

type Sender string

const (
	SenderUser Sender = "user"
	SenderMira Sender = "mira"
)

type Message struct {
	ID          int       `json:"id"`
	Text        string    `json:"text"`
	Sender      Sender    `json:"sender"`
	Timestamp   time.Time `json:"timestamp"`
	Suggestions []string  `json:"suggestions,omitempty"`
}

// Transcript is a conversation with sequential message IDs starting at 1.
type Transcript struct {
	Messages []Message `json:"messages"`
	Language Language  `json:"language"`
}

// NewTranscript starts a conversation with the assistant greeting.
func NewTranscript(a *Assistant, now time.Time) Transcript {
	var t Transcript
	t.Language = English
	greeting := a.Greeting()
	return t.append(greeting.Text, SenderMira, greeting.Suggestions, now)
}

// Ask appends the user message and the assistant reply.
func (t Transcript) Ask(a *Assistant, text string, now time.Time) (Transcript, Reply, error) {
	reply, err := a.Reply(text, t.Language)
	if err != nil {
		return t, Reply{}, err
	}
	t = t.append(text, SenderUser, nil, now)
	t = t.append(reply.Text, SenderMira, reply.Suggestions, now)
	return t, reply, nil
}

// WithLanguage switches the language used for later replies.
func (t Transcript) WithLanguage(lang Language) Transcript {
	t.Messages = append([]Message(nil), t.Messages...)
	t.Language = lang
	return t
}

func (t Transcript) append(text string, sender Sender, suggestions []string, now time.Time) Transcript {
	messages := make([]Message, len(t.Messages), len(t.Messages)+1)
	copy(messages, t.Messages)
	t.Messages = append(messages, Message{
		ID:          len(messages) + 1,
		Text:        text,
		Sender:      sender,
		Timestamp:   now,
		Suggestions: suggestions,
	})
	return t
}
