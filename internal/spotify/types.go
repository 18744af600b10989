// Upstream response shapes, based on https://developer.spotify.com/documentation/web-api/reference/
package spotify

// page is the pagination envelope shared by every paginated endpoint. The
// offset-based and cursor-based variants differ only in how the next URL is
// produced upstream; the walker cares about its presence, not its meaning.
type page[T any] struct {
	Items []T     `json:"items"`
	Next  *string `json:"next"`
}

type image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

type followers struct {
	Total int `json:"total"`
}

type owner struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type simplifiedArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

type fullArtist struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Genres    []string  `json:"genres"`
	Followers followers `json:"followers"`
	Images    []image   `json:"images"`
	URI       string    `json:"uri"`
}

type simplifiedAlbum struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	AlbumType   string             `json:"album_type"`
	Artists     []simplifiedArtist `json:"artists"`
	ReleaseDate string             `json:"release_date"`
	Images      []image            `json:"images"`
	URI         string             `json:"uri"`
}

type fullAlbum struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Artists     []simplifiedArtist    `json:"artists"`
	ReleaseDate string                `json:"release_date"`
	TotalTracks int                   `json:"total_tracks"`
	Images      []image               `json:"images"`
	URI         string                `json:"uri"`
	Tracks      page[simplifiedTrack] `json:"tracks"`
}

type simplifiedTrack struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Artists     []simplifiedArtist `json:"artists"`
	DurationMS  int                `json:"duration_ms"`
	TrackNumber int                `json:"track_number"`
	Explicit    bool               `json:"explicit"`
	URI         string             `json:"uri"`
}

type fullTrack struct {
	ID          string             `json:"id"`
	Type        string             `json:"type"`
	Name        string             `json:"name"`
	Artists     []simplifiedArtist `json:"artists"`
	Album       simplifiedAlbum    `json:"album"`
	DurationMS  int                `json:"duration_ms"`
	TrackNumber int                `json:"track_number"`
	Explicit    bool               `json:"explicit"`
	Popularity  int                `json:"popularity"`
	URI         string             `json:"uri"`
}

type simplifiedPlaylist struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Owner       owner   `json:"owner"`
	Public      bool    `json:"public"`
	Collab      bool    `json:"collaborative"`
	SnapshotID  string  `json:"snapshot_id"`
	Images      []image `json:"images"`
	URI         string  `json:"uri"`
}

type fullPlaylist struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Owner       owner              `json:"owner"`
	Public      bool               `json:"public"`
	Collab      bool               `json:"collaborative"`
	SnapshotID  string             `json:"snapshot_id"`
	Images      []image            `json:"images"`
	URI         string             `json:"uri"`
	Tracks      page[playlistItem] `json:"tracks"`
}

// playlistItem wraps a playlist entry. Track is null for removed items and
// carries type "episode" for podcast entries; both are skipped during
// conversion.
type playlistItem struct {
	AddedAt string     `json:"added_at"`
	IsLocal bool       `json:"is_local"`
	Track   *fullTrack `json:"track"`
}

type savedTrack struct {
	AddedAt string    `json:"added_at"`
	Track   fullTrack `json:"track"`
}

type savedAlbum struct {
	AddedAt string    `json:"added_at"`
	Album   fullAlbum `json:"album"`
}

type playHistory struct {
	PlayedAt string    `json:"played_at"`
	Track    fullTrack `json:"track"`
}

type category struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Icon []image `json:"icons"`
}

// Envelope shapes for endpoints that nest their page one level deep.

type categoriesEnvelope struct {
	Categories page[category] `json:"categories"`
}

type categoryPlaylistsEnvelope struct {
	Playlists page[simplifiedPlaylist] `json:"playlists"`
}

// followedArtistsEnvelope wraps the cursor-based page returned by the
// followed-artists endpoint.
type followedArtistsEnvelope struct {
	Artists page[fullArtist] `json:"artists"`
}

type topTracksEnvelope struct {
	Tracks []fullTrack `json:"tracks"`
}

type relatedArtistsEnvelope struct {
	Artists []fullArtist `json:"artists"`
}

type severalTracksEnvelope struct {
	Tracks []fullTrack `json:"tracks"`
}

// searchResult is the union returned by the search endpoint; exactly the
// field matching the requested type is expected to be present.
type searchResult struct {
	Tracks    *page[fullTrack]          `json:"tracks"`
	Artists   *page[fullArtist]         `json:"artists"`
	Albums    *page[simplifiedAlbum]    `json:"albums"`
	Playlists *page[simplifiedPlaylist] `json:"playlists"`
}
