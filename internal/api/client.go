package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"vmexport/internal/model"
)

// Client talks to the election-monitoring API for one election round. The
// bearer token is set once by Login and never mutated afterwards, so the
// client is safe to share across concurrent fetchers.
type Client struct {
	baseURL    string
	electionID string
	token      string
	httpClient *http.Client
}

// NewClient creates a client for the given API base URL and election round.
func NewClient(baseURL, electionID string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		electionID: electionID,
		httpClient: &http.Client{},
	}
}

// Login authenticates with admin credentials and keeps the returned token
// for all later calls.
func (c *Client) Login(ctx context.Context, email, password string) error {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("login failed with status %d: %s", resp.StatusCode, string(body))
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("failed to parse login response: %w", err)
	}
	if out.Token == "" {
		return fmt.Errorf("login response carried no token")
	}

	c.token = out.Token
	log.Println("[api] logged in successfully")
	c.logTokenExpiry()
	return nil
}

// logTokenExpiry decodes the session token without verifying it, only to
// surface its lifetime in the log.
func (c *Client) logTokenExpiry() {
	tok, _, err := jwt.NewParser().ParseUnverified(c.token, jwt.MapClaims{})
	if err != nil {
		return
	}
	exp, err := tok.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return
	}
	log.Printf("[api] session token expires at %s", exp.Time.Format(time.RFC3339))
	if until := time.Until(exp.Time); until < time.Hour {
		log.Printf("Warning: session token expires in %s, large exports may fail mid-run", until.Round(time.Minute))
	}
}

// getJSON performs an authenticated GET and decodes the body into out,
// returning the raw body as well.
func (c *Client) getJSON(ctx context.Context, rawURL string, params url.Values, out any) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if len(params) > 0 {
		req.URL.RawQuery = params.Encode()
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("api error %d: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return body, nil
}

func (c *Client) roundURL(suffix string) string {
	return c.baseURL + "/api/election-rounds/" + c.electionID + suffix
}

// Submission fetches one full submission. The raw body is returned alongside
// the decoded entity for archiving.
func (c *Client) Submission(ctx context.Context, id string) (*model.Submission, json.RawMessage, error) {
	var sub model.Submission
	raw, err := c.getJSON(ctx, c.roundURL("/form-submissions/"+id+":v2"), nil, &sub)
	if err != nil {
		return nil, nil, err
	}
	return &sub, raw, nil
}

// Form fetches one full form schema.
func (c *Client) Form(ctx context.Context, id string) (*model.Form, json.RawMessage, error) {
	var form model.Form
	raw, err := c.getJSON(ctx, c.roundURL("/forms/"+id), nil, &form)
	if err != nil {
		return nil, nil, err
	}
	return &form, raw, nil
}

// QuickReport fetches one full quick report.
func (c *Client) QuickReport(ctx context.Context, id string) (*model.QuickReport, json.RawMessage, error) {
	var qr model.QuickReport
	raw, err := c.getJSON(ctx, c.roundURL("/quick-reports/"+id), nil, &qr)
	if err != nil {
		return nil, nil, err
	}
	return &qr, raw, nil
}

// FetchBinary GETs a presigned URL. No bearer header: the URL carries its
// own authorization. The caller owns the returned body.
func (c *Client) FetchBinary(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download request failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, fmt.Errorf("download failed with status %d", resp.StatusCode)
	}
	return resp.Body, nil
}
