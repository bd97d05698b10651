package httpServices

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// LMSClient talks to the learning platform that unlocks a purchased program
// for a client. The unlock endpoint is expected to be idempotent per
// payment id.
type LMSClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string) *LMSClient {
	return &LMSClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

// ActivateRequest is the unlock payload sent to the LMS
type ActivateRequest struct {
	ClientUuid string `json:"client_uuid"`
	Program    string `json:"program"`
	PaymentID  string `json:"payment_id"`
}

type activateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Activate unlocks the program for the client identified by clientUuid
func (c *LMSClient) Activate(clientUuid, program, paymentID string) error {
	if c.baseURL == "" {
		return errors.New("LMS_BASE_URL is not set")
	}

	body, err := json.Marshal(ActivateRequest{
		ClientUuid: clientUuid,
		Program:    program,
		PaymentID:  paymentID,
	})
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequest("POST", c.baseURL+"/api/enrollments/activate/", bytes.NewBuffer(body))
	if err != nil {
		return err
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return errors.New("LMS activate API returned non-OK status: " + resp.Status)
	}

	var apiResp activateResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return err
	}

	if !apiResp.Success {
		return errors.New("LMS activation failed: " + apiResp.Message)
	}

	return nil
}
