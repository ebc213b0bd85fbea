package api

import (
	"context"
	"net/http"
)

// MessageHandler processes one inbound message and returns the reply text.
// It never fails; errors inside are converted to user-facing replies.
type MessageHandler interface {
	Handle(ctx context.Context, senderID, text string) string
}

// WebhookHandler receives Twilio WhatsApp webhooks.
type WebhookHandler struct {
	router MessageHandler
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(router MessageHandler) *WebhookHandler {
	return &WebhookHandler{router: router}
}

// HandleInbound handles POST /whatsapp.
//
// Twilio posts a form-encoded body; "From" is the sender (e.g.
// "whatsapp:+919999999999") and "Body" the message text. The reply is
// always a TwiML document, even for malformed input, so the user gets a
// message rather than silence.
func (h *WebhookHandler) HandleInbound(w http.ResponseWriter, r *http.Request) {
	from := r.FormValue("From")
	body := r.FormValue("Body")

	WriteTwiML(w, h.router.Handle(r.Context(), from, body))
}
