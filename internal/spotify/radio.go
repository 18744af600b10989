package spotify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chorus-audio/chorus/internal/shared"
)

// Radio resolution is a two-hop lookup against the session's message bus
// rather than the catalog API: a seed resource is first resolved to a
// station URI, then the station is resolved to track ids. Any non-success
// status or malformed payload at either hop fails the whole request; there
// is no fallback.

type radioStationResponse struct {
	Tracks []struct {
		OriginalGID string `json:"original_gid"`
	} `json:"tracks"`
}

// RadioTracks derives a playable track list from a single seed resource URI.
func (c *Client) RadioTracks(ctx context.Context, seedURI string) ([]Track, error) {
	sess := c.session()
	if sess == nil {
		return nil, shared.ErrNotAuthenticated
	}

	// Resolve the seed into a station URI.
	autoplayURI := "hm://autoplay-enabled/query?uri=" + seedURI
	resp, err := sess.Get(ctx, autoplayURI)
	if err != nil {
		return nil, fmt.Errorf("failed to get autoplay URI: %w", err)
	}
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("failed to get autoplay URI: %w",
			&shared.StatusError{Code: resp.StatusCode, URL: autoplayURI})
	}
	if len(resp.Payload) == 0 {
		return nil, fmt.Errorf("%w: empty autoplay payload", shared.ErrDecode)
	}
	stationURI := string(resp.Payload[0])

	// Resolve the station into its track list.
	stationURL := "hm://radio-apollo/v3/stations/" + stationURI
	resp, err = sess.Get(ctx, stationURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get radio data of %s: %w", stationURI, err)
	}
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("failed to get radio data of %s: %w", stationURI,
			&shared.StatusError{Code: resp.StatusCode, URL: stationURL})
	}
	if len(resp.Payload) == 0 {
		return nil, fmt.Errorf("%w: empty radio station payload", shared.ErrDecode)
	}

	var station radioStationResponse
	if err := json.Unmarshal(resp.Payload[0], &station); err != nil {
		return nil, fmt.Errorf("%w: decode radio station: %v", shared.ErrDecode, err)
	}

	ids := make([]string, 0, len(station.Tracks))
	for _, t := range station.Tracks {
		if t.OriginalGID != "" {
			ids = append(ids, t.OriginalGID)
		}
	}

	// Resolve ids back through the catalog API into full track records;
	// ids that fail conversion are dropped there.
	return c.Tracks(ctx, ids)
}
