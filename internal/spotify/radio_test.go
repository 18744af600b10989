package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chorus-audio/chorus/internal/session"
	"github.com/chorus-audio/chorus/internal/shared"
	"github.com/chorus-audio/chorus/internal/testhelp"
)

func TestRadioTracks(t *testing.T) {
	seed := "spotify:track:seed1"
	autoplayURI := "hm://autoplay-enabled/query?uri=" + seed
	stationURL := "hm://radio-apollo/v3/stations/spotify:station:abc"

	t.Run("Two Hops Then Batch Lookup", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/tracks" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			ids := r.URL.Query().Get("ids")
			if !strings.Contains(ids, "gid1") || !strings.Contains(ids, "gid2") {
				t.Errorf("expected station gids in batch lookup, got %s", ids)
			}
			fmt.Fprint(w, `{"tracks":[{"id":"gid1","name":"One"},{"id":"","name":"broken"},{"id":"gid2","name":"Two"}]}`)
		}))
		defer srv.Close()

		sess := &testhelp.FakeSession{
			Token: "tok",
			Responses: map[string]*session.Response{
				autoplayURI: {StatusCode: 200, Payload: [][]byte{[]byte("spotify:station:abc")}},
				stationURL:  {StatusCode: 200, Payload: [][]byte{[]byte(`{"tracks":[{"original_gid":"gid1"},{"original_gid":"gid2"}]}`)}},
			},
		}

		client := newTestClient(t, srv, sess)
		tracks, err := client.RadioTracks(context.Background(), seed)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(tracks) != 2 || tracks[0].Name != "One" || tracks[1].Name != "Two" {
			t.Errorf("unexpected tracks: %+v", tracks)
		}
	})

	t.Run("Non-200 Autoplay Status Is Fatal", func(t *testing.T) {
		sess := &testhelp.FakeSession{
			Token: "tok",
			Responses: map[string]*session.Response{
				autoplayURI: {StatusCode: 503},
			},
		}

		client := newTestClient(t, nil, sess)
		_, err := client.RadioTracks(context.Background(), seed)

		var statusErr *shared.StatusError
		if !errors.As(err, &statusErr) {
			t.Fatalf("expected StatusError, got %v", err)
		}
		if statusErr.Code != 503 {
			t.Errorf("expected code 503, got %d", statusErr.Code)
		}
	})

	t.Run("Non-200 Station Status Is Fatal", func(t *testing.T) {
		sess := &testhelp.FakeSession{
			Token: "tok",
			Responses: map[string]*session.Response{
				autoplayURI: {StatusCode: 200, Payload: [][]byte{[]byte("spotify:station:abc")}},
				stationURL:  {StatusCode: 404, Payload: [][]byte{[]byte("")}},
			},
		}

		client := newTestClient(t, nil, sess)
		if _, err := client.RadioTracks(context.Background(), seed); err == nil {
			t.Error("expected an error for a failed station lookup")
		}
	})

	t.Run("Malformed Station Payload Is A Decode Error", func(t *testing.T) {
		sess := &testhelp.FakeSession{
			Token: "tok",
			Responses: map[string]*session.Response{
				autoplayURI: {StatusCode: 200, Payload: [][]byte{[]byte("spotify:station:abc")}},
				stationURL:  {StatusCode: 200, Payload: [][]byte{[]byte("{not json")}},
			},
		}

		client := newTestClient(t, nil, sess)
		if _, err := client.RadioTracks(context.Background(), seed); !errors.Is(err, shared.ErrDecode) {
			t.Errorf("expected ErrDecode, got %v", err)
		}
	})
}
