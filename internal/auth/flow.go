// Package auth implements the one-shot interactive OAuth2 authorization-code
// flow that produces the runtime credential config.
package auth

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"linkedin-poster/internal/config"
	"linkedin-poster/internal/linkedin"
	"linkedin-poster/internal/locales"

	"github.com/google/uuid"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pkg/browser"
)

// State identifies the flow's current phase.
type State int

const (
	StateAwaitingCredentials State = iota
	StateAwaitingUserAuthorization
	StateAwaitingCallback
	StateExchangingCode
	StateFetchingIdentity
	StatePersisted
)

func (s State) String() string {
	switch s {
	case StateAwaitingCredentials:
		return "awaiting_credentials"
	case StateAwaitingUserAuthorization:
		return "awaiting_user_authorization"
	case StateAwaitingCallback:
		return "awaiting_callback"
	case StateExchangingCode:
		return "exchanging_code"
	case StateFetchingIdentity:
		return "fetching_identity"
	case StatePersisted:
		return "persisted"
	default:
		return "unknown"
	}
}

// Terminal failure exits. The flow is single-attempt: any of these requires
// the user to rerun the whole flow.
var (
	ErrCredentialsMissing  = errors.New("client id and secret are required")
	ErrCallbackTimeout     = errors.New("no authorization callback received before the deadline")
	ErrIdentityFetchFailed = errors.New("failed to resolve account identity")
)

// DeniedError is returned when the provider redirect carried an error
// parameter instead of an authorization code.
type DeniedError struct {
	Reason string
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("authorization denied: %s", e.Reason)
}

// ExchangeError is returned when the token endpoint answered non-success.
type ExchangeError struct {
	StatusCode int
	Body       string
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("token exchange failed with status %d: %s", e.StatusCode, e.Body)
}

const (
	defaultAuthorizeURL = "https://www.linkedin.com/oauth/v2/authorization"
	defaultTokenURL     = "https://www.linkedin.com/oauth/v2/accessToken"
	defaultRedirectURI  = "http://localhost:8080/callback"
	defaultListenAddr   = "localhost:8080"

	// callbackTimeout bounds the AwaitingCallback state.
	callbackTimeout = 5 * time.Minute
)

// scopes requested from the provider: write posts, read the basic profile.
var scopes = []string{"w_member_social", "r_liteprofile"}

// Result is the outcome of a successful flow run.
type Result struct {
	AccessToken string
	ExpiresIn   int
	PersonURN   string
	FullName    string
}

// Flow drives the authorization-code exchange end to end: credentials,
// browser authorization, local callback capture, token exchange, identity
// resolution and config persistence. Strictly sequential, single attempt.
type Flow struct {
	credentialsPath string
	configPath      string

	authorizeURL    string
	tokenURL        string
	apiBaseURL      string
	redirectURI     string
	listenAddr      string
	callbackTimeout time.Duration

	openBrowser func(rawURL string) error
	prompt      func(label string) (string, error)
	out         io.Writer
	localizer   *i18n.Localizer
	httpClient  *http.Client

	state State
}

// FlowOption customizes a Flow, mostly for tests.
type FlowOption func(*Flow)

// WithEndpoints overrides the provider endpoints.
func WithEndpoints(authorizeURL, tokenURL, apiBaseURL string) FlowOption {
	return func(f *Flow) {
		f.authorizeURL = authorizeURL
		f.tokenURL = tokenURL
		f.apiBaseURL = apiBaseURL
	}
}

// WithListenAddr overrides the callback listener address and redirect URI.
func WithListenAddr(addr, redirectURI string) FlowOption {
	return func(f *Flow) {
		f.listenAddr = addr
		f.redirectURI = redirectURI
	}
}

// WithCallbackTimeout overrides the AwaitingCallback ceiling.
func WithCallbackTimeout(d time.Duration) FlowOption {
	return func(f *Flow) { f.callbackTimeout = d }
}

// WithBrowserOpener overrides how the authorization URL is presented.
func WithBrowserOpener(open func(rawURL string) error) FlowOption {
	return func(f *Flow) { f.openBrowser = open }
}

// WithPrompt overrides the interactive credential prompt.
func WithPrompt(prompt func(label string) (string, error)) FlowOption {
	return func(f *Flow) { f.prompt = prompt }
}

// WithOutput redirects the flow's progress messages.
func WithOutput(w io.Writer) FlowOption {
	return func(f *Flow) { f.out = w }
}

// NewFlow creates a Flow that persists to the paths in env.
func NewFlow(env *config.Env, localizer *i18n.Localizer, opts ...FlowOption) *Flow {
	f := &Flow{
		credentialsPath: env.CredentialsPath,
		configPath:      env.ConfigPath,
		authorizeURL:    defaultAuthorizeURL,
		tokenURL:        defaultTokenURL,
		redirectURI:     defaultRedirectURI,
		listenAddr:      defaultListenAddr,
		callbackTimeout: callbackTimeout,
		openBrowser:     browser.OpenURL,
		prompt:          stdinPrompt,
		out:             os.Stdout,
		localizer:       localizer,
		httpClient:      &http.Client{Timeout: 30 * time.Second},
		state:           StateAwaitingCredentials,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// State returns the flow's current state.
func (f *Flow) State() State {
	return f.state
}

// Run executes the whole flow. On success the runtime config has been
// written; on any error the flow must be rerun from the start.
func (f *Flow) Run(ctx context.Context) (*Result, error) {
	f.printMsg("MsgAuthStarting", nil)

	f.state = StateAwaitingCredentials
	creds, err := f.loadCredentials()
	if err != nil {
		return nil, err
	}

	f.state = StateAwaitingUserAuthorization
	authURL := f.buildAuthorizationURL(creds, uuid.NewString())

	listener := newCallbackListener(f.localizer)
	if err := listener.Start(f.listenAddr); err != nil {
		return nil, err
	}
	// The listener must never outlive the callback wait, on any exit path.
	defer listener.Stop()

	f.printMsg("MsgAuthOpeningBrowser", map[string]interface{}{"URL": authURL})
	if err := f.openBrowser(authURL); err != nil {
		// The URL was printed; the user can still open it by hand.
		fmt.Fprintf(f.out, "Failed to open browser: %v\n", err)
	}

	f.state = StateAwaitingCallback
	f.printMsg("MsgAuthWaitingCallback", map[string]interface{}{
		"Minutes": int(f.callbackTimeout.Minutes()),
	})

	var code string
	select {
	case result := <-listener.Results():
		if result.errParam != "" {
			f.printMsg("MsgAuthDenied", map[string]interface{}{"Error": result.errParam})
			listener.Stop()
			return nil, &DeniedError{Reason: result.errParam}
		}
		code = result.code
		f.printMsg("MsgAuthCodeReceived", nil)
	case <-time.After(f.callbackTimeout):
		f.printMsg("MsgAuthTimeout", nil)
		listener.Stop()
		return nil, ErrCallbackTimeout
	case <-ctx.Done():
		listener.Stop()
		return nil, ctx.Err()
	}
	listener.Stop()

	f.state = StateExchangingCode
	f.printMsg("MsgAuthExchangingCode", nil)
	token, err := f.exchangeCode(ctx, creds, code)
	if err != nil {
		return nil, err
	}
	f.printMsg("MsgAuthTokenObtained", map[string]interface{}{"Seconds": token.ExpiresIn})

	f.state = StateFetchingIdentity
	f.printMsg("MsgAuthFetchingIdentity", nil)
	profile, err := f.fetchIdentity(ctx, token.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIdentityFetchFailed, err)
	}

	fullName := strings.TrimSpace(profile.LocalizedFirstName + " " + profile.LocalizedLastName)
	f.printMsg("MsgAuthIdentity", map[string]interface{}{
		"Name": fullName,
		"URN":  profile.PersonURN(),
	})

	cfg := config.Default()
	cfg.AccessToken = token.AccessToken
	cfg.PersonID = profile.PersonURN()
	if err := cfg.Save(f.configPath); err != nil {
		return nil, err
	}
	f.state = StatePersisted
	f.printMsg("MsgAuthConfigSaved", map[string]interface{}{"Path": f.configPath})
	f.printMsg("MsgAuthDone", nil)

	return &Result{
		AccessToken: token.AccessToken,
		ExpiresIn:   token.ExpiresIn,
		PersonURN:   profile.PersonURN(),
		FullName:    fullName,
	}, nil
}

// loadCredentials reads the credentials file, prompting interactively and
// persisting the answers when the file is missing.
func (f *Flow) loadCredentials() (*config.Credentials, error) {
	creds, err := config.LoadCredentials(f.credentialsPath)
	if err == nil && creds.ClientID != "" && creds.ClientSecret != "" {
		prefix := creds.ClientID
		if len(prefix) > 10 {
			prefix = prefix[:10]
		}
		f.printMsg("MsgAuthCredentialsLoaded", map[string]interface{}{"Prefix": prefix})
		return creds, nil
	}

	f.printMsg("MsgAuthCredentialsPromptIntro", nil)
	clientID, err := f.prompt(locales.GetMessage(f.localizer, "MsgAuthPromptClientID", nil))
	if err != nil {
		return nil, fmt.Errorf("failed to read client id: %w", err)
	}
	clientSecret, err := f.prompt(locales.GetMessage(f.localizer, "MsgAuthPromptClientSecret", nil))
	if err != nil {
		return nil, fmt.Errorf("failed to read client secret: %w", err)
	}

	clientID = strings.TrimSpace(clientID)
	clientSecret = strings.TrimSpace(clientSecret)
	if clientID == "" || clientSecret == "" {
		return nil, ErrCredentialsMissing
	}

	creds = &config.Credentials{ClientID: clientID, ClientSecret: clientSecret}
	if err := creds.Save(f.credentialsPath); err != nil {
		return nil, err
	}
	f.printMsg("MsgAuthCredentialsSaved", map[string]interface{}{"Path": f.credentialsPath})
	return creds, nil
}

// buildAuthorizationURL constructs the URL the user approves access at.
func (f *Flow) buildAuthorizationURL(creds *config.Credentials, stateNonce string) string {
	params := url.Values{
		"response_type": {"code"},
		"client_id":     {creds.ClientID},
		"redirect_uri":  {f.redirectURI},
		"scope":         {strings.Join(scopes, " ")},
		"state":         {stateNonce},
	}
	return f.authorizeURL + "?" + params.Encode()
}

// tokenResponse is the token endpoint's success payload.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// exchangeCode trades the authorization code for an access token.
func (f *Flow) exchangeCode(ctx context.Context, creds *config.Credentials, code string) (*tokenResponse, error) {
	data := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"client_id":     {creds.ClientID},
		"client_secret": {creds.ClientSecret},
		"redirect_uri":  {f.redirectURI},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ExchangeError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}
	if token.AccessToken == "" {
		return nil, &ExchangeError{StatusCode: resp.StatusCode, Body: "empty access token in response"}
	}
	return &token, nil
}

// fetchIdentity resolves the member profile with the freshly issued token.
func (f *Flow) fetchIdentity(ctx context.Context, accessToken string) (*linkedin.Profile, error) {
	opts := []linkedin.Option{}
	if f.apiBaseURL != "" {
		opts = append(opts, linkedin.WithBaseURL(f.apiBaseURL))
	}
	return linkedin.NewClient(accessToken, "", opts...).Me(ctx)
}

func (f *Flow) printMsg(msgID string, data map[string]interface{}) {
	fmt.Fprintln(f.out, locales.GetMessage(f.localizer, msgID, data))
}

// stdinPrompt reads one line from standard input after printing label.
func stdinPrompt(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
