package httpServices

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.interakt.ai/v1/public/message/"
	countryCode    = "91"
	otpTemplate    = "otp_verification"

	// Bounded per-call timeout so a slow upstream cannot pile up
	// outstanding delivery goroutines
	requestTimeout = 8 * time.Second
)

// InteraktClient sends WhatsApp template messages through the Interakt
// public message API.
type InteraktClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a new Interakt client. baseURL may be empty to use the
// public API endpoint.
func NewClient(baseURL, apiKey string) *InteraktClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &InteraktClient{
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// SendOTP delivers the code to the phone number as a WhatsApp template
// message. Best-effort: the caller decides what to do with a failure, this
// client never retries.
func (c *InteraktClient) SendOTP(phone, code string) error {
	if c.apiKey == "" {
		return errors.New("INTERAKT_API_KEY is not set")
	}

	body, err := json.Marshal(MessageRequest{
		CountryCode: countryCode,
		PhoneNumber: phone,
		Type:        "Template",
		Template: Template{
			Name:         otpTemplate,
			LanguageCode: "en",
			BodyValues:   []string{code},
		},
	})
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequest("POST", c.baseURL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Basic "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return errors.New("Interakt API returned non-OK status: " + resp.Status)
	}

	return nil
}
