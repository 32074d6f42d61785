package mermaid

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const userAgent = "mermaid-go"

// In-band failure messages the API puts inside an HTTP 200 body.
const (
	msgBadParameters = "Błędna metoda lub parametry wywołania"
	msgWFSEmpty      = "Wfs error: IllegalArgumentException: FeatureMember list is empty"
	msgBadAPIKey     = "Błędny apikey lub jego brak"
	msgUnauthorized  = "Nieautoryzowany dostęp do danych"
)

// envelope is the outer shape every endpoint shares.
type envelope struct {
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
}

// getResult issues one GET against endpoint and returns the raw "result"
// payload, after mapping the API's in-band failure messages to sentinel
// errors.
func (c *Client) getResult(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error) {
	requestURL := c.baseURL + "/" + endpoint + "?" + params.Encode()
	requestID := uuid.NewString()

	c.logger.Debug("Calling Warsaw Open Data API",
		zap.String("endpoint", endpoint),
		zap.String("request_id", requestID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &ConnectivityError{URL: requestURL, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Request failed",
			zap.String("endpoint", endpoint),
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, &ConnectivityError{URL: requestURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("API returned error status",
			zap.String("endpoint", endpoint),
			zap.String("request_id", requestID),
			zap.Int("status_code", resp.StatusCode))
		return nil, &ConnectivityError{URL: requestURL, StatusCode: resp.StatusCode}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &ResponseFormatError{Endpoint: endpoint, Err: err}
	}

	if err := apiError(env); err != nil {
		c.logger.Error("API rejected the call",
			zap.String("endpoint", endpoint),
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, err
	}

	c.logger.Debug("API call successful",
		zap.String("endpoint", endpoint),
		zap.String("request_id", requestID))

	return env.Result, nil
}

// apiError maps the in-band failure messages to sentinels. A failed call
// carries either a message string or the literal false in "result".
func apiError(env envelope) error {
	var failed bool
	if err := json.Unmarshal(env.Result, &failed); err == nil {
		if !failed {
			return envelopeError(env.Error)
		}
		return nil
	}

	var msg string
	if err := json.Unmarshal(env.Result, &msg); err != nil {
		return nil
	}
	switch msg {
	case msgBadParameters, msgWFSEmpty:
		return ErrBadQueryParameters
	case "false":
		return envelopeError(env.Error)
	default:
		return nil
	}
}

func envelopeError(apiMessage string) error {
	switch apiMessage {
	case msgBadAPIKey:
		return ErrInvalidAPIKey
	case msgUnauthorized:
		return ErrUnauthorized
	default:
		return fmt.Errorf("%w: %s", ErrBadQueryParameters, apiMessage)
	}
}
