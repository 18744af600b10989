// package testhelp contains shared testing utilities
package testhelp

import (
	"context"
	"errors"
	"net/http"

	"github.com/chorus-audio/chorus/internal/session"
)

// FakeSession is a test double for [session.Session]. Message-bus responses
// are served from the Responses map keyed by the full hm:// URI.
type FakeSession struct {
	Token     string
	TokenErr  error
	Invalid   bool
	Responses map[string]*session.Response

	// TokenCalls counts AccessToken invocations.
	TokenCalls int
}

func (f *FakeSession) IsInvalid() bool {
	return f.Invalid
}

func (f *FakeSession) AccessToken(ctx context.Context) (string, error) {
	f.TokenCalls++
	if f.TokenErr != nil {
		return "", f.TokenErr
	}
	return f.Token, nil
}

func (f *FakeSession) Get(ctx context.Context, uri string) (*session.Response, error) {
	resp, ok := f.Responses[uri]
	if !ok {
		return nil, errors.New("no fake response for " + uri)
	}
	return resp, nil
}

// FakeConnector is a test double for [session.Connector] returning a fixed
// session.
type FakeConnector struct {
	Session session.Session
	Err     error

	// ConnectCalls counts Connect invocations.
	ConnectCalls int
}

func (f *FakeConnector) Connect(ctx context.Context) (session.Session, error) {
	f.ConnectCalls++
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Session, nil
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}
