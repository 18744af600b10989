package spotify

// Domain records are normalized projections of the upstream "full" and
// "simplified" variants. Conversions from upstream shapes that can miss
// required fields are fallible and return an ok flag; callers drop failed
// conversions instead of propagating them.

// Track is a playable catalog track.
type Track struct {
	ID       string
	Name     string
	Artists  []Artist
	Album    *Album
	Duration int // seconds
	Explicit bool
	URI      string
}

// ArtistNames renders the track's artists as a comma-separated string.
func (t Track) ArtistNames() string {
	names := ""
	for i, a := range t.Artists {
		if i > 0 {
			names += ", "
		}
		names += a.Name
	}
	return names
}

// Artist is a catalog artist.
type Artist struct {
	ID   string
	Name string
	URI  string
}

// Album is a catalog album or single.
type Album struct {
	ID          string
	Name        string
	Artists     []Artist
	ReleaseDate string // YYYY, YYYY-MM or YYYY-MM-DD
	URI         string
}

// Playlist is a catalog playlist.
type Playlist struct {
	ID          string
	Name        string
	Description string
	OwnerID     string
	OwnerName   string
	Public      bool
	Collab      bool
	SnapshotID  string
	URI         string
}

// Category is a browse category.
type Category struct {
	ID   string
	Name string
}

// SearchResults holds the outcome of a multi-type catalog search, one
// independently populated sequence per catalog type.
type SearchResults struct {
	Tracks    []Track
	Artists   []Artist
	Albums    []Album
	Playlists []Playlist
}

// Context is a composed, ready-to-render aggregate of a primary resource
// plus its associated entities. Exactly one of [PlaylistContext],
// [AlbumContext] or [ArtistContext] is returned per call.
type Context interface {
	context()
}

// PlaylistContext is a playlist together with its full track list.
type PlaylistContext struct {
	Playlist Playlist
	Tracks   []Track
}

// AlbumContext is an album together with its full track list.
type AlbumContext struct {
	Album  Album
	Tracks []Track
}

// ArtistContext is an artist together with top tracks, discography and
// related artists.
type ArtistContext struct {
	Artist         Artist
	TopTracks      []Track
	Albums         []Album
	RelatedArtists []Artist
}

func (PlaylistContext) context() {}
func (AlbumContext) context()    {}
func (ArtistContext) context()   {}

// trackFromFull converts a full track. Local and removed tracks carry no id
// and fail the conversion.
func trackFromFull(t fullTrack) (Track, bool) {
	if t.ID == "" {
		return Track{}, false
	}
	track := Track{
		ID:       t.ID,
		Name:     t.Name,
		Artists:  artistsFromSimplified(t.Artists),
		Duration: t.DurationMS / 1000,
		Explicit: t.Explicit,
		URI:      t.URI,
	}
	if album, ok := albumFromSimplified(t.Album); ok {
		track.Album = &album
	}
	return track, true
}

// trackFromSimplified converts a simplified track. The album reference is
// absent in this shape and must be backfilled by the caller.
func trackFromSimplified(t simplifiedTrack) (Track, bool) {
	if t.ID == "" {
		return Track{}, false
	}
	return Track{
		ID:       t.ID,
		Name:     t.Name,
		Artists:  artistsFromSimplified(t.Artists),
		Duration: t.DurationMS / 1000,
		Explicit: t.Explicit,
		URI:      t.URI,
	}, true
}

func albumFromSimplified(a simplifiedAlbum) (Album, bool) {
	if a.ID == "" {
		return Album{}, false
	}
	return Album{
		ID:          a.ID,
		Name:        a.Name,
		Artists:     artistsFromSimplified(a.Artists),
		ReleaseDate: a.ReleaseDate,
		URI:         a.URI,
	}, true
}

func albumFromFull(a fullAlbum) Album {
	return Album{
		ID:          a.ID,
		Name:        a.Name,
		Artists:     artistsFromSimplified(a.Artists),
		ReleaseDate: a.ReleaseDate,
		URI:         a.URI,
	}
}

func artistFromFull(a fullArtist) Artist {
	return Artist{ID: a.ID, Name: a.Name, URI: a.URI}
}

func artistsFromSimplified(artists []simplifiedArtist) []Artist {
	out := make([]Artist, 0, len(artists))
	for _, a := range artists {
		out = append(out, Artist{ID: a.ID, Name: a.Name, URI: a.URI})
	}
	return out
}

func playlistFromSimplified(p simplifiedPlaylist) Playlist {
	return Playlist{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		OwnerID:     p.Owner.ID,
		OwnerName:   p.Owner.DisplayName,
		Public:      p.Public,
		Collab:      p.Collab,
		SnapshotID:  p.SnapshotID,
		URI:         p.URI,
	}
}

func playlistFromFull(p fullPlaylist) Playlist {
	return Playlist{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		OwnerID:     p.Owner.ID,
		OwnerName:   p.Owner.DisplayName,
		Public:      p.Public,
		Collab:      p.Collab,
		SnapshotID:  p.SnapshotID,
		URI:         p.URI,
	}
}

func categoryFrom(c category) Category {
	return Category{ID: c.ID, Name: c.Name}
}
