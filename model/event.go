package model

// InboundEvent is the transport-agnostic shape of one user turn: either free
// text or a discrete labeled choice. EventID comes from the transport and is
// used to reject duplicate deliveries of the same turn.
type InboundEvent struct {
	EventID  string
	UserID   string
	Username string
	Text     string
	Choice   string // payload of a pressed choice, "flow:step:value"
}

func (e InboundEvent) IsChoice() bool {
	return e.Choice != ""
}

// Choice is one labeled option offered to the user.
type Choice struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Reply is one outbound message; the transport renders it however it likes.
type Reply struct {
	Text    string   `json:"text"`
	Choices []Choice `json:"choices,omitempty"`
}

func TextReply(text string) Reply {
	return Reply{Text: text}
}
