// Package auth provides FTX API authentication using HMAC-SHA256 signatures.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Credentials holds the API key pair used to sign requests.
type Credentials struct {
	APIKey    string `json:"api_key"`
	APISecret string `json:"api_secret"`
}

// LoadCredentials reads credentials from a JSON file of the form
// {"api_key": "...", "api_secret": "..."}.
func LoadCredentials(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credential file: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parse credential file %s: %w", path, err)
	}

	if creds.APIKey == "" {
		return nil, fmt.Errorf("credential file %s: api_key is required", path)
	}
	if creds.APISecret == "" {
		return nil, fmt.Errorf("credential file %s: api_secret is required", path)
	}

	return &creds, nil
}

// SignRequest generates authentication headers for an FTX API request.
// requestPath is the URL path including the query string, if any
// (e.g. "/api/fills?start_time=0&end_time=1700000000"). subAccount may be
// empty for the main account.
func (c *Credentials) SignRequest(method, requestPath, subAccount string) map[string]string {
	return c.signAt(time.Now().UnixMilli(), method, requestPath, subAccount)
}

// signAt generates headers with an explicit millisecond timestamp.
// Message format: timestamp_ms + method + path[?query]
func (c *Credentials) signAt(timestampMs int64, method, requestPath, subAccount string) map[string]string {
	message := fmt.Sprintf("%d%s%s", timestampMs, method, requestPath)

	mac := hmac.New(sha256.New, []byte(c.APISecret))
	mac.Write([]byte(message))
	signature := hex.EncodeToString(mac.Sum(nil))

	headers := map[string]string{
		"FTX-KEY":  c.APIKey,
		"FTX-TS":   fmt.Sprintf("%d", timestampMs),
		"FTX-SIGN": signature,
	}
	if subAccount != "" {
		headers["FTX-SUBACCOUNT"] = subAccount
	}

	return headers
}
