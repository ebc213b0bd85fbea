package api

import (
	"encoding/xml"
	"net/http"

	"github.com/rs/zerolog/log"
)

// twimlResponse is the minimal TwiML document for an outbound message:
// <Response><Message>text</Message></Response>
type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// WriteTwiML writes message as a TwiML reply. Twilio fetches this body and
// sends the message text back to the user over WhatsApp.
func WriteTwiML(w http.ResponseWriter, message string) {
	body, err := xml.Marshal(twimlResponse{Message: message})
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode TwiML response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(body)
}
