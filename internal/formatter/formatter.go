// package formatter renders catalog query results to various formats (JSON, CSV, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/chorus-audio/chorus/internal/shared"
	"github.com/chorus-audio/chorus/internal/spotify"
)

// ToJSON renders any result as indented JSON.
func ToJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return data, nil
}

// TracksToCSV converts tracks to CSV with columns: ID, Title, Artists, Album, Duration
func TracksToCSV(tracks []spotify.Track) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artists", "Album", "Duration"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range tracks {
		album := ""
		if track.Album != nil {
			album = track.Album.Name
		}
		record := []string{
			track.ID,
			track.Name,
			track.ArtistNames(),
			album,
			strconv.Itoa(track.Duration),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// TracksToText converts tracks to a numbered plain text listing.
func TracksToText(tracks []spotify.Track) []byte {
	var buf bytes.Buffer
	for i, track := range tracks {
		duration := shared.FormatDuration(track.Duration)
		buf.WriteString(fmt.Sprintf("%d. %s - %s [%s]\n", i+1, track.ArtistNames(), track.Name, duration))
	}
	return buf.Bytes()
}

// AlbumsToText converts albums to a numbered plain text listing.
func AlbumsToText(albums []spotify.Album) []byte {
	var buf bytes.Buffer
	for i, album := range albums {
		buf.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, album.Name, album.ReleaseDate))
	}
	return buf.Bytes()
}

// ArtistsToText converts artists to a numbered plain text listing.
func ArtistsToText(artists []spotify.Artist) []byte {
	var buf bytes.Buffer
	for i, artist := range artists {
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, artist.Name))
	}
	return buf.Bytes()
}

// PlaylistsToText converts playlists to a numbered plain text listing.
func PlaylistsToText(playlists []spotify.Playlist) []byte {
	var buf bytes.Buffer
	for i, playlist := range playlists {
		buf.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, playlist.Name, playlist.OwnerName))
	}
	return buf.Bytes()
}

// SearchResultsToText renders a multi-type search result with one section
// per catalog type.
func SearchResultsToText(results *spotify.SearchResults) []byte {
	var buf bytes.Buffer

	buf.WriteString("Tracks:\n")
	buf.Write(TracksToText(results.Tracks))
	buf.WriteString("\nArtists:\n")
	buf.Write(ArtistsToText(results.Artists))
	buf.WriteString("\nAlbums:\n")
	buf.Write(AlbumsToText(results.Albums))
	buf.WriteString("\nPlaylists:\n")
	buf.Write(PlaylistsToText(results.Playlists))

	return buf.Bytes()
}

// ContextToText renders a context aggregate.
func ContextToText(context spotify.Context) []byte {
	var buf bytes.Buffer

	switch c := context.(type) {
	case spotify.PlaylistContext:
		buf.WriteString(fmt.Sprintf("Playlist: %s\n", c.Playlist.Name))
		if c.Playlist.Description != "" {
			buf.WriteString(fmt.Sprintf("Description: %s\n", c.Playlist.Description))
		}
		buf.WriteString(fmt.Sprintf("Tracks: %d\n\n", len(c.Tracks)))
		buf.Write(TracksToText(c.Tracks))
	case spotify.AlbumContext:
		buf.WriteString(fmt.Sprintf("Album: %s (%s)\n", c.Album.Name, c.Album.ReleaseDate))
		buf.WriteString(fmt.Sprintf("Tracks: %d\n\n", len(c.Tracks)))
		buf.Write(TracksToText(c.Tracks))
	case spotify.ArtistContext:
		buf.WriteString(fmt.Sprintf("Artist: %s\n\n", c.Artist.Name))
		buf.WriteString("Top tracks:\n")
		buf.Write(TracksToText(c.TopTracks))
		buf.WriteString("\nDiscography:\n")
		buf.Write(AlbumsToText(c.Albums))
		buf.WriteString("\nRelated artists:\n")
		buf.Write(ArtistsToText(c.RelatedArtists))
	}

	return buf.Bytes()
}
