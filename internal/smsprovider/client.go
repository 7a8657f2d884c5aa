// Package smsprovider содержит HTTP-клиент SMS-шлюза, через который
// отправляются напоминания о встречах в автосалоне.
package smsprovider

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/autopuzzle/dealership-crm/internal/config"
)

type Client struct {
	apiKey     string
	senderLine string
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт новый клиент SMS-шлюза
func NewClient(cfg config.SMSProvider) *Client {
	return &Client{
		apiKey:     cfg.APIKey,
		senderLine: cfg.SenderLine,
		apiURL:     cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.TimeoutSMS},
	}
}

func (c *Client) newRequest(method, path string, body interface{}) (*http.Request, error) {
	url := c.apiURL + path
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// SendSMS отправляет текстовое сообщение на указанный номер.
func (c *Client) SendSMS(reqParams SendSMSRequest) (*SendSMSResponse, error) {
	if reqParams.Sender == "" {
		reqParams.Sender = c.senderLine
	}
	req, err := c.newRequest("POST", "/messages", reqParams)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, errors.New("unexpected status: " + resp.Status)
	}

	var smsResp SendSMSResponse
	if err := json.NewDecoder(resp.Body).Decode(&smsResp); err != nil {
		return nil, err
	}
	return &smsResp, nil
}
