package models

import "strings"

// WebhookPayload mirrors the JSON body posted by the Fonnte gateway. Field
// naming differs between gateway versions, so both the English and Indonesian
// keys are accepted for the text and for the reply target.
type WebhookPayload struct {
	Message  string `json:"message"`
	Pesan    string `json:"pesan"`
	Pengirim string `json:"pengirim"`
	ID       string `json:"id"`
	Sender   string `json:"sender"`
	Device   string `json:"device"`
	Name     string `json:"name"`
}

// Text returns the message body regardless of which key carried it.
func (p WebhookPayload) Text() string {
	if strings.TrimSpace(p.Message) != "" {
		return p.Message
	}
	return p.Pesan
}

// ReplyTo returns the identifier the answer should be delivered to, checking
// the accepted keys in gateway-preference order.
func (p WebhookPayload) ReplyTo() string {
	for _, v := range []string{p.Pengirim, p.ID, p.Sender} {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// OutboundMessageRequest represents requests to send a message manually via the API.
type OutboundMessageRequest struct {
	To      string `json:"to" binding:"required"`
	Message string `json:"message" binding:"required"`
}
