package spotify

import (
	"context"
	"fmt"
	"net/http"
)

// TrackURI renders a track id as a catalog URI.
func TrackURI(trackID string) string {
	return "spotify:track:" + trackID
}

// AddTrackToPlaylist adds a track to a playlist. All existing occurrences of
// the track are removed first; the upstream API allows duplicates, so the
// remove-then-add sequence is what guarantees the track appears only once.
func (c *Client) AddTrackToPlaylist(ctx context.Context, playlistID, trackID string) error {
	if err := c.DeleteTrackFromPlaylist(ctx, playlistID, trackID); err != nil {
		return err
	}

	body := map[string]any{"uris": []string{TrackURI(trackID)}}
	target := fmt.Sprintf("%s/playlists/%s/tracks", c.baseURL, playlistID)
	return c.send(ctx, http.MethodPost, target, nil, body, nil)
}

// DeleteTrackFromPlaylist removes all occurrences of a track from a playlist.
func (c *Client) DeleteTrackFromPlaylist(ctx context.Context, playlistID, trackID string) error {
	body := map[string]any{
		"tracks": []map[string]string{{"uri": TrackURI(trackID)}},
	}
	target := fmt.Sprintf("%s/playlists/%s/tracks", c.baseURL, playlistID)
	return c.send(ctx, http.MethodDelete, target, nil, body, nil)
}

// ReorderPlaylistItems moves a range of playlist items so that it starts at
// insertIndex. The upstream endpoint takes an "insert before" position
// relative to the list as it stands before the range is removed, so when the
// destination lies after the range the position must be shifted by one.
func (c *Client) ReorderPlaylistItems(ctx context.Context, playlistID string, insertIndex, rangeStart int, rangeLength int, snapshotID string) error {
	insertBefore := insertIndex
	if insertIndex > rangeStart {
		insertBefore = insertIndex + 1
	}

	body := map[string]any{
		"range_start":   rangeStart,
		"insert_before": insertBefore,
	}
	if rangeLength > 0 {
		body["range_length"] = rangeLength
	}
	if snapshotID != "" {
		body["snapshot_id"] = snapshotID
	}

	target := fmt.Sprintf("%s/playlists/%s/tracks", c.baseURL, playlistID)
	return c.send(ctx, http.MethodPut, target, nil, body, nil)
}
