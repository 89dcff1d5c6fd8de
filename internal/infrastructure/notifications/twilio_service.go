package notifications

import (
	"fmt"
	"log"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioVoiceService places verification calls via the Twilio voice API.
type TwilioVoiceService struct {
	client     *twilio.RestClient
	fromNumber string
}

// NewTwilioVoiceService creates a new Twilio voice service
func NewTwilioVoiceService(accountSID, authToken, fromNumber string) *TwilioVoiceService {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioVoiceService{
		client:     client,
		fromNumber: fromNumber,
	}
}

// PlaceVerificationCall dials the number and reads the code digit by digit.
// The code is repeated once so the listener gets a second chance.
func (t *TwilioVoiceService) PlaceVerificationCall(to, code string) error {
	// If credentials are not configured, log instead of dialing
	if t.fromNumber == "" {
		log.Printf("[MOCK CALL] To: %s, Code: %s", to, code)
		return nil
	}

	spaced := strings.Join(strings.Split(code, ""), " ")
	twiml := fmt.Sprintf(
		"<Response><Say>Your verification code is %s. Your verification code is %s.</Say></Response>",
		spaced, spaced)

	params := &twilioApi.CreateCallParams{}
	params.SetTo(to)
	params.SetFrom(t.fromNumber)
	params.SetTwiml(twiml)

	if _, err := t.client.Api.CreateCall(params); err != nil {
		return fmt.Errorf("failed to place verification call: %w", err)
	}

	return nil
}
