// Package linkedin implements the authenticated REST calls to the LinkedIn
// API: creating UGC posts and resolving the authenticated profile.
package linkedin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/ratelimit"
)

const (
	defaultBaseURL = "https://api.linkedin.com"

	// maxAttempts bounds the retry loop for transient failures.
	maxAttempts = 3
	// defaultBackoffBase is the first retry delay; it doubles per attempt.
	defaultBackoffBase = time.Second

	requestTimeout = 30 * time.Second

	// requestsPerSecond caps the outbound call rate.
	requestsPerSecond = 10
)

// Profile is the subset of the /v2/me response the application uses.
type Profile struct {
	ID                 string `json:"id"`
	LocalizedFirstName string `json:"localizedFirstName"`
	LocalizedLastName  string `json:"localizedLastName"`
}

// PersonURN returns the member identifier in URN form.
func (p *Profile) PersonURN() string {
	return "urn:li:person:" + p.ID
}

// Client calls the LinkedIn REST API on behalf of one member. It owns the
// retry policy for transient failures and paces all outbound calls through a
// rate limiter.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	personURN   string
	limiter     ratelimit.Limiter
	backoffBase time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithBackoffBase overrides the first retry delay. Used by tests.
func WithBackoffBase(d time.Duration) Option {
	return func(c *Client) { c.backoffBase = d }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// NewClient creates a Client for the given access token and author URN.
// The personURN may be empty for clients that only resolve identity.
func NewClient(accessToken, personURN string, opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: requestTimeout},
		baseURL:     defaultBaseURL,
		accessToken: accessToken,
		personURN:   personURN,
		limiter:     ratelimit.New(requestsPerSecond),
		backoffBase: defaultBackoffBase,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ugcPostRequest is the /v2/ugcPosts payload for a plain-text public share.
type ugcPostRequest struct {
	Author          string                  `json:"author"`
	LifecycleState  string                  `json:"lifecycleState"`
	SpecificContent map[string]shareContent `json:"specificContent"`
	Visibility      map[string]string       `json:"visibility"`
}

type shareContent struct {
	ShareCommentary    shareCommentary `json:"shareCommentary"`
	ShareMediaCategory string          `json:"shareMediaCategory"`
}

type shareCommentary struct {
	Text string `json:"text"`
}

// CreatePost publishes content as a public plain-text post and returns the
// created post id. 429 and 5xx responses are retried up to maxAttempts with
// exponential backoff; other non-2xx responses fail immediately as rejected.
//
// The retry loop cannot tell a lost acknowledgment from a failed request, so
// a post the server accepted right before a dropped response may be
// duplicated on retry. The provider API offers no idempotency key to close
// that gap.
func (c *Client) CreatePost(ctx context.Context, content string) (string, error) {
	if content == "" {
		return "", fmt.Errorf("post content must not be empty")
	}

	payload := ugcPostRequest{
		Author:         c.personURN,
		LifecycleState: "PUBLISHED",
		SpecificContent: map[string]shareContent{
			"com.linkedin.ugc.ShareContent": {
				ShareCommentary:    shareCommentary{Text: content},
				ShareMediaCategory: "NONE",
			},
		},
		Visibility: map[string]string{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal post payload: %w", err)
	}

	resp, respBody, err := c.doWithRetry(ctx, http.MethodPost, "/v2/ugcPosts", body)
	if err != nil {
		return "", err
	}

	if id := resp.Header.Get("X-RestLi-Id"); id != "" {
		return id, nil
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(respBody, &created); err == nil && created.ID != "" {
		return created.ID, nil
	}
	// Accepted but no id surfaced; the post exists either way.
	return "", nil
}

// Me resolves the authenticated member's profile. Used for connectivity
// checks and by the authorization flow to discover the person URN.
func (c *Client) Me(ctx context.Context) (*Profile, error) {
	_, respBody, err := c.doWithRetry(ctx, http.MethodGet, "/v2/me", nil)
	if err != nil {
		return nil, err
	}
	var profile Profile
	if err := json.Unmarshal(respBody, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile response: %w", err)
	}
	return &profile, nil
}

// doWithRetry performs one API call with the transient-retry policy and
// returns the successful response and its body. The returned error is an
// *APIError for terminal API failures.
func (c *Client) doWithRetry(ctx context.Context, method, path string, body []byte) (*http.Response, []byte, error) {
	var lastStatus int
	var lastBody string
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			// Exponential backoff: base, 2*base, ...
			delay := c.backoffBase << (attempt - 2)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, nil, ctx.Err()
			}
		}

		c.limiter.Take()

		resp, respBody, err := c.do(ctx, method, path, body)
		if err != nil {
			if ctx.Err() != nil {
				return nil, nil, ctx.Err()
			}
			lastErr = err
			lastStatus, lastBody = 0, ""
			continue
		}

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return resp, respBody, nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = nil
			lastStatus, lastBody = resp.StatusCode, string(respBody)
			continue
		default:
			return nil, nil, &APIError{
				Kind:       KindRejected,
				StatusCode: resp.StatusCode,
				Body:       string(respBody),
			}
		}
	}

	if lastErr != nil {
		return nil, nil, &APIError{Kind: KindUnreachable, Err: lastErr}
	}
	return nil, nil, &APIError{Kind: KindTransient, StatusCode: lastStatus, Body: lastBody}
}

// do performs a single HTTP attempt.
func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Restli-Protocol-Version", "2.0.0")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp, respBody, nil
}
