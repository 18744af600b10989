package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chorus-audio/chorus/internal/shared"
)

func TestNewConnector(t *testing.T) {
	t.Run("Missing Credentials", func(t *testing.T) {
		_, err := NewConnector(Options{}, nil)
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("Defaults Applied", func(t *testing.T) {
		conn, err := NewConnector(Options{Username: "user", Password: "pass"}, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		c := conn.(*connector)
		if c.opts.TokenURL != defaultTokenURL {
			t.Errorf("expected default token URL, got %s", c.opts.TokenURL)
		}
		if c.opts.GatewayURL != defaultGatewayURL {
			t.Errorf("expected default gateway URL, got %s", c.opts.GatewayURL)
		}
	})
}

func TestConnect(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("unreadable token request: %v", err)
		}
		if r.Form.Get("grant_type") != "password" {
			t.Errorf("expected a password grant, got %q", r.Form.Get("grant_type"))
		}
		if r.Form.Get("username") != "user" {
			t.Errorf("expected username to be forwarded, got %q", r.Form.Get("username"))
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"granted","token_type":"Bearer","expires_in":3600}`)
	}))
	defer tokenSrv.Close()

	gatewaySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer granted" {
			t.Errorf("expected bearer token on bus request, got %q", r.Header.Get("Authorization"))
		}
		if r.URL.Path != "/autoplay-enabled/query" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("uri") != "spotify:track:x" {
			t.Errorf("unexpected uri query %q", r.URL.Query().Get("uri"))
		}
		w.Write([]byte("spotify:station:abc"))
	}))
	defer gatewaySrv.Close()

	conn, err := NewConnector(Options{
		ClientID:   "client",
		Username:   "user",
		Password:   "pass",
		TokenURL:   tokenSrv.URL,
		GatewayURL: gatewaySrv.URL,
	}, shared.NewLogger(io.Discard))
	if err != nil {
		t.Fatalf("failed to build connector: %v", err)
	}

	sess, err := conn.Connect(context.Background())
	if err != nil {
		t.Fatalf("expected connect to succeed, got %v", err)
	}

	t.Run("Fresh Session Is Valid", func(t *testing.T) {
		if sess.IsInvalid() {
			t.Error("a fresh session must not report invalid")
		}
	})

	t.Run("AccessToken", func(t *testing.T) {
		token, err := sess.AccessToken(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if token != "granted" {
			t.Errorf("expected the granted token, got %q", token)
		}
	})

	t.Run("Message Bus Get Translates The URI", func(t *testing.T) {
		resp, err := sess.Get(context.Background(), "hm://autoplay-enabled/query?uri=spotify:track:x")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if resp.StatusCode != 200 {
			t.Errorf("expected status 200, got %d", resp.StatusCode)
		}
		if len(resp.Payload) != 1 || string(resp.Payload[0]) != "spotify:station:abc" {
			t.Errorf("unexpected payload: %v", resp.Payload)
		}
	})

	t.Run("Invalidate", func(t *testing.T) {
		sess.(*apSession).Invalidate()
		if !sess.IsInvalid() {
			t.Error("expected the session to report invalid after Invalidate")
		}
	})
}

func TestGatewayBase(t *testing.T) {
	cases := []struct {
		name    string
		gateway string
		apPort  int
		want    string
	}{
		{"No Override", "https://gw.example.com", 0, "https://gw.example.com"},
		{"Port Applied", "https://gw.example.com", 4070, "https://gw.example.com:4070"},
		{"Explicit Port Wins", "https://gw.example.com:443", 4070, "https://gw.example.com:443"},
		{"Trailing Slash Trimmed", "https://gw.example.com/", 0, "https://gw.example.com"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := gatewayBase(tc.gateway, tc.apPort); got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestNewHTTPClient(t *testing.T) {
	t.Run("Invalid Proxy URL", func(t *testing.T) {
		if _, err := newHTTPClient("://bad"); !errors.Is(err, shared.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("No Proxy", func(t *testing.T) {
		client, err := newHTTPClient("")
		if err != nil || client == nil {
			t.Errorf("expected a plain client, got %v %v", client, err)
		}
	})
}
