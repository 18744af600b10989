// Package session provides the authenticated connection to the streaming
// backend. The rest of the application consumes it through the [Session]
// interface: a bearer token source, a validity flag, and keyed GET requests
// against the backend's internal message bus.
package session

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"

	"github.com/chorus-audio/chorus/internal/shared"
)

const (
	defaultTokenURL   = "https://accounts.spotify.com/api/token"
	defaultGatewayURL = "https://gae2-spclient.spotify.com"
)

// Response is a reply to a message-bus request. The first payload block
// holds the JSON body.
type Response struct {
	StatusCode int
	Payload    [][]byte
}

// Session is the capability surface exposed to the client layer.
type Session interface {
	// IsInvalid reports whether the session can no longer be used and must
	// be replaced.
	IsInvalid() bool

	// AccessToken returns a bearer token for the catalog API.
	AccessToken(ctx context.Context) (string, error)

	// Get performs a message-bus request keyed by an hm:// URI.
	Get(ctx context.Context, uri string) (*Response, error)
}

// Connector creates new sessions from stored or environment-derived
// credentials.
type Connector interface {
	Connect(ctx context.Context) (Session, error)
}

// Options configures session construction. Zero-valued endpoint fields fall
// back to the production defaults.
type Options struct {
	ClientID   string
	Username   string
	Password   string
	TokenURL   string
	GatewayURL string
	Proxy      string
	APPort     int
}

// OptionsFromConfig derives session options from the application configuration.
func OptionsFromConfig(cfg *shared.Config) Options {
	return Options{
		ClientID: cfg.ClientID,
		Username: cfg.Credentials.Username,
		Password: cfg.Credentials.Password,
		Proxy:    cfg.Proxy,
		APPort:   cfg.APPort,
	}
}

type connector struct {
	opts   Options
	logger *log.Logger
}

// NewConnector returns a [Connector] that authenticates with the given options.
func NewConnector(opts Options, logger *log.Logger) (Connector, error) {
	if opts.Username == "" || opts.Password == "" {
		return nil, shared.ErrMissingCredentials
	}
	if opts.TokenURL == "" {
		opts.TokenURL = defaultTokenURL
	}
	if opts.GatewayURL == "" {
		opts.GatewayURL = defaultGatewayURL
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &connector{opts: opts, logger: logger}, nil
}

// Connect exchanges the credential pair for a token and returns a live session.
func (c *connector) Connect(ctx context.Context) (Session, error) {
	httpClient, err := newHTTPClient(c.opts.Proxy)
	if err != nil {
		return nil, err
	}

	conf := &oauth2.Config{
		ClientID: c.opts.ClientID,
		Endpoint: oauth2.Endpoint{TokenURL: c.opts.TokenURL},
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	token, err := conf.PasswordCredentialsToken(ctx, c.opts.Username, c.opts.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	c.logger.Info("authenticated with the session backend", "username", c.opts.Username)

	return &apSession{
		tokens:  conf.TokenSource(ctx, token),
		http:    httpClient,
		gateway: gatewayBase(c.opts.GatewayURL, c.opts.APPort),
		logger:  c.logger,
	}, nil
}

// apSession is a live connection to an access point. Token refresh is handled
// by the [oauth2.TokenSource], which is safe for concurrent use.
type apSession struct {
	tokens  oauth2.TokenSource
	http    *http.Client
	gateway string
	logger  *log.Logger
	invalid atomic.Bool
}

func (s *apSession) IsInvalid() bool {
	return s.invalid.Load()
}

// Invalidate marks the session as unusable; subsequent calls to IsInvalid
// report true so that the holder replaces it.
func (s *apSession) Invalidate() {
	s.invalid.Store(true)
}

func (s *apSession) AccessToken(ctx context.Context) (string, error) {
	token, err := s.tokens.Token()
	if err != nil {
		s.invalid.Store(true)
		return "", fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}
	return token.AccessToken, nil
}

// Get resolves an hm:// URI against the session gateway and performs an
// authenticated GET. The response body becomes the first payload block.
func (s *apSession) Get(ctx context.Context, uri string) (*Response, error) {
	token, err := s.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	target := s.gateway + "/" + strings.TrimPrefix(uri, "hm://")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Payload:    [][]byte{body},
	}, nil
}

func newHTTPClient(proxy string) (*http.Client, error) {
	if proxy == "" {
		return &http.Client{}, nil
	}
	proxyURL, err := url.Parse(proxy)
	if err != nil {
		return nil, fmt.Errorf("%w: proxy url %q: %v", shared.ErrInvalidConfig, proxy, err)
	}
	return &http.Client{
		Transport: &http.Transport{Proxy: http.ProxyURL(proxyURL)},
	}, nil
}

// gatewayBase applies an access-point port override when the configured
// gateway does not carry an explicit port.
func gatewayBase(gateway string, apPort int) string {
	base := strings.TrimSuffix(gateway, "/")
	if apPort == 0 {
		return base
	}
	parsed, err := url.Parse(base)
	if err != nil || parsed.Port() != "" {
		return base
	}
	parsed.Host = fmt.Sprintf("%s:%d", parsed.Hostname(), apPort)
	return parsed.String()
}
