package utils

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// DarajaClient talks to the Safaricom M-Pesa (Daraja) API
type DarajaClient struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	ShortCode      string
	Passkey        string
	CallbackURL    string
	client         *resty.Client
}

// STKPushResult carries the gateway identifiers returned on a successful push
type STKPushResult struct {
	MerchantRequestID string `json:"MerchantRequestID"`
	CheckoutRequestID string `json:"CheckoutRequestID"`
	ResponseCode      string `json:"ResponseCode"`
	CustomerMessage   string `json:"CustomerMessage"`
}

func NewDarajaClient(baseURL, consumerKey, consumerSecret, shortCode, passkey, callbackURL string) (*DarajaClient, error) {
	if consumerKey == "" || consumerSecret == "" || passkey == "" {
		return nil, fmt.Errorf("daraja credentials are not configured")
	}
	return &DarajaClient{
		BaseURL:        baseURL,
		ConsumerKey:    consumerKey,
		ConsumerSecret: consumerSecret,
		ShortCode:      shortCode,
		Passkey:        passkey,
		CallbackURL:    callbackURL,
		client:         resty.New(),
	}, nil
}

// GetAccessToken fetches an OAuth client-credentials token from the gateway
func (d *DarajaClient) GetAccessToken() (string, error) {
	resp, err := d.client.R().
		SetBasicAuth(d.ConsumerKey, d.ConsumerSecret).
		Get(d.BaseURL + "/oauth/v1/generate?grant_type=client_credentials")
	if err != nil {
		return "", fmt.Errorf("failed to reach daraja auth: %v", err)
	}
	if resp.StatusCode() != 200 {
		log.Printf("Daraja auth failed: %s", resp.String())
		return "", fmt.Errorf("daraja auth failed with status %d", resp.StatusCode())
	}

	var authResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(resp.Body(), &authResp); err != nil {
		return "", fmt.Errorf("invalid daraja auth response: %v", err)
	}
	if authResp.AccessToken == "" {
		return "", fmt.Errorf("daraja auth returned empty token")
	}
	return authResp.AccessToken, nil
}

// Password builds the timestamped STK request password
func (d *DarajaClient) Password(timestamp string) string {
	return base64.StdEncoding.EncodeToString([]byte(d.ShortCode + d.Passkey + timestamp))
}

// InitiateSTKPush submits a push-payment request. Phone must already be
// normalized to 254 format and amount already validated.
func (d *DarajaClient) InitiateSTKPush(phone string, amount uint, accountRef, description string) (*STKPushResult, error) {
	token, err := d.GetAccessToken()
	if err != nil {
		return nil, err
	}

	timestamp := time.Now().Format("20060102150405")
	payload := map[string]interface{}{
		"BusinessShortCode": d.ShortCode,
		"Password":          d.Password(timestamp),
		"Timestamp":         timestamp,
		"TransactionType":   "CustomerPayBillOnline",
		"Amount":            amount,
		"PartyA":            phone,
		"PartyB":            d.ShortCode,
		"PhoneNumber":       phone,
		"CallBackURL":       d.CallbackURL,
		"AccountReference":  accountRef,
		"TransactionDesc":   description,
	}

	resp, err := d.client.R().
		SetHeader("Authorization", "Bearer "+token).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(d.BaseURL + "/mpesa/stkpush/v1/processrequest")
	if err != nil {
		return nil, fmt.Errorf("failed to reach daraja stkpush: %v", err)
	}
	if resp.StatusCode() != 200 {
		log.Printf("STK push failed: %s", resp.String())
		return nil, fmt.Errorf("stk push failed with status %d", resp.StatusCode())
	}

	var result STKPushResult
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("invalid stk push response: %v", err)
	}
	if result.ResponseCode != "0" {
		return nil, fmt.Errorf("stk push rejected: %s", result.CustomerMessage)
	}
	return &result, nil
}

// STKCallback is the asynchronous webhook body delivered by the gateway
type STKCallback struct {
	Body struct {
		StkCallback struct {
			MerchantRequestID string `json:"MerchantRequestID"`
			CheckoutRequestID string `json:"CheckoutRequestID"`
			ResultCode        int    `json:"ResultCode"`
			ResultDesc        string `json:"ResultDesc"`
			CallbackMetadata  struct {
				Item []STKCallbackItem `json:"Item"`
			} `json:"CallbackMetadata"`
		} `json:"stkCallback"`
	} `json:"Body"`
}

type STKCallbackItem struct {
	Name  string      `json:"Name"`
	Value interface{} `json:"Value"`
}

// MetadataString extracts a named item from the callback metadata list
func (cb *STKCallback) MetadataString(name string) string {
	for _, item := range cb.Body.StkCallback.CallbackMetadata.Item {
		if item.Name != name || item.Value == nil {
			continue
		}
		switch v := item.Value.(type) {
		case string:
			return v
		case float64:
			// receipt dates and phone numbers arrive as numbers
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}
