package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// APIError represents an error response from the FTX API.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ftx api error %d: %s", e.StatusCode, e.Message)
}

// envelope is the outer shape of every FTX response.
type envelope struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result"`
	Error   string          `json:"error"`
}

// doRequest performs an HTTP request with the given method and path,
// signing it when credentials are configured.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.creds != nil {
		signPath := req.URL.Path
		if req.URL.RawQuery != "" {
			signPath += "?" + req.URL.RawQuery
		}
		for k, v := range c.creds.SignRequest(method, signPath, c.subAccount) {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body, http.StatusText(resp.StatusCode)),
			Body:       body,
		}
	}

	return body, nil
}

// get performs a GET request and unwraps the FTX envelope into result.
// A body that does not match the envelope shape is surfaced together with
// the raw response text to aid diagnosis.
func (c *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	body, err := c.doRequest(ctx, http.MethodGet, path, query)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("unexpected response json format: %w\n\nresponse body:\n%s", err, body)
	}

	if !env.Success {
		return &APIError{
			StatusCode: http.StatusOK,
			Message:    errorMessage(body, "request rejected"),
			Body:       body,
		}
	}

	if err := json.Unmarshal(env.Result, result); err != nil {
		return fmt.Errorf("unexpected result json format: %w\n\nresponse body:\n%s", err, body)
	}

	return nil
}

// errorMessage extracts the envelope error string from body, falling back
// when the body is not an envelope.
func errorMessage(body []byte, fallback string) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != "" {
		return env.Error
	}
	return fallback
}
