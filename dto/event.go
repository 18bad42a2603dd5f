package dto

import "main/model"

// EventRequest is one inbound chat turn as the transport bridge posts it.
// Exactly one of Text or Choice is expected to be set.
type EventRequest struct {
	EventID  string `json:"event_id" binding:"required"`
	UserID   string `json:"user_id" binding:"required"`
	Username string `json:"username"`
	Text     string `json:"text"`
	Choice   string `json:"choice"`
}

func (r *EventRequest) ToModel() model.InboundEvent {
	return model.InboundEvent{
		EventID:  r.EventID,
		UserID:   r.UserID,
		Username: r.Username,
		Text:     r.Text,
		Choice:   r.Choice,
	}
}

type EventResponse struct {
	Replies []model.Reply `json:"replies"`
}
