package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the production backend endpoint.
const DefaultBaseURL = "https://dabe.thaily.id.vn"

// defaultTimeout bounds every request. The value is deliberately generous:
// device commands travel through the backend to physical hubs.
const defaultTimeout = 30 * time.Second

// Config controls Gateway construction. Zero values fall back to defaults.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Gateway is the single chokepoint for backend traffic. It attaches the
// session's bearer token to every request, classifies failures into the
// package's error taxonomy, and clears the session on a 401.
type Gateway struct {
	baseURL string
	http    *http.Client
	session *SessionService
	log     zerolog.Logger
}

// NewGateway builds a Gateway bound to the given session service.
func NewGateway(cfg Config, session *SessionService) *Gateway {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Gateway{
		baseURL: baseURL,
		http:    httpClient,
		session: session,
		log:     cfg.Logger,
	}
}

// Session exposes the bound session service for state queries.
func (g *Gateway) Session() *SessionService { return g.session }

type graphqlEnvelope struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// query executes one GraphQL operation and unmarshals the named top-level
// field into out. A reported error list always wins over data; an absent
// field with an empty error list is a malformed success and fails too.
func (g *Gateway) query(ctx context.Context, field, document string, variables map[string]any, out any) error {
	payload := map[string]any{
		"query":     document,
		"variables": variables,
	}

	respBody, err := g.send(ctx, http.MethodPost, "/query", payload, field)
	if err != nil {
		return err
	}

	var envelope graphqlEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return &APIError{Messages: []string{fmt.Sprintf("malformed response: %v", err)}}
	}

	if len(envelope.Errors) > 0 {
		msgs := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			msgs = append(msgs, e.Message)
		}
		return &APIError{Messages: msgs}
	}

	raw, ok := envelope.Data[field]
	if !ok || string(raw) == "null" {
		return &APIError{Messages: []string{"missing expected field " + field}}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{Messages: []string{fmt.Sprintf("malformed %s payload: %v", field, err)}}
	}
	return nil
}

// rest executes one REST call against the backend and decodes a JSON body
// into out when provided. Non-2xx responses become APIError, except 401,
// which escalates like any other authorization failure.
func (g *Gateway) rest(ctx context.Context, method, path string, body, out any) error {
	respBody, err := g.send(ctx, method, path, body, method+" "+path)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &APIError{Messages: []string{fmt.Sprintf("malformed response: %v", err)}}
	}
	return nil
}

// send performs the HTTP exchange common to query and rest: marshal, attach
// the bearer token when one is present, classify transport failures, and
// run the single 401 escalation path.
func (g *Gateway) send(ctx context.Context, method, path string, body any, op string) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// The Authorization header exists iff a token exists.
	if token := g.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// One escalation per failing request: clear the session and surface
		// AuthExpired. No retry — a new login is the only way forward.
		g.log.Debug().Str("op", op).Msg("401 received, clearing session")
		g.session.Clear()
		return nil, &AuthExpiredError{}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			Status:   resp.StatusCode,
			Messages: []string{extractErrorMessage(respBody, resp.StatusCode)},
		}
	}

	return respBody, nil
}

// newAuthorizedRequest builds a bodyless request carrying an explicit token,
// bypassing the session lookup in send.
func (g *Gateway) newAuthorizedRequest(ctx context.Context, method, path, token string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req, nil
}

// extractErrorMessage pulls the {"error": "..."} message the backend uses
// for REST failures, falling back to the status text.
func extractErrorMessage(body []byte, status int) string {
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		return envelope.Error
	}
	return http.StatusText(status)
}
