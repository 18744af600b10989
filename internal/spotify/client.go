package spotify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/chorus-audio/chorus/internal/session"
	"github.com/chorus-audio/chorus/internal/shared"
)

// defaultRateLimit caps catalog API requests per second; the upstream API is
// rate limited and a walk over a large library can issue dozens of page
// fetches back to back.
const defaultRateLimit = 10

// Client aggregates the catalog API and the streaming session into merged
// domain objects. It holds the only shared mutable resource of the layer,
// the active session, behind a read-write mutex so a refresh cannot be torn
// by a concurrent token read.
type Client struct {
	cfg       *shared.Config
	baseURL   string
	http      *http.Client
	limiter   *rate.Limiter
	logger    *log.Logger
	connector session.Connector

	mu   sync.RWMutex
	sess session.Session
}

// New creates a client around an existing session. The connector is used to
// replace the session when it becomes invalid.
func New(cfg *shared.Config, conn session.Connector, sess session.Session, logger *log.Logger) *Client {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Client{
		cfg:       cfg,
		baseURL:   apiEndpoint,
		http:      &http.Client{},
		limiter:   rate.NewLimiter(rate.Limit(defaultRateLimit), 1),
		logger:    logger,
		connector: conn,
		sess:      sess,
	}
}

// Username returns the configured login name of the current user.
func (c *Client) Username() string {
	return c.cfg.Credentials.Username
}

// session returns the active session under a read lock.
func (c *Client) session() session.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sess
}

// accessToken fetches the current bearer token from the active session.
// Tokens must not be cached across an EnsureValidSession call; the session
// they came from may have been replaced.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	sess := c.session()
	if sess == nil {
		return "", shared.ErrNotAuthenticated
	}
	return sess.AccessToken(ctx)
}

// EnsureValidSession replaces the held session when it has become invalid.
// Repeated calls while the session is valid are no-ops.
func (c *Client) EnsureValidSession(ctx context.Context) error {
	if sess := c.session(); sess != nil && !sess.IsInvalid() {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess != nil && !c.sess.IsInvalid() {
		return nil
	}

	c.logger.Info("current session is invalid, creating a new session")
	sess, err := c.connector.Connect(ctx)
	if err != nil {
		return fmt.Errorf("create new client session: %w", err)
	}
	c.sess = sess
	c.logger.Info("using a new session for the catalog client")
	return nil
}

// BrowseCategories returns the available browse categories.
func (c *Client) BrowseCategories(ctx context.Context) ([]Category, error) {
	var envelope categoriesEnvelope
	query := url.Values{"locale": {"EN"}, "limit": {"50"}}
	if err := c.get(ctx, c.baseURL+"/browse/categories", query, &envelope); err != nil {
		return nil, err
	}

	categories := make([]Category, 0, len(envelope.Categories.Items))
	for _, item := range envelope.Categories.Items {
		categories = append(categories, categoryFrom(item))
	}
	return categories, nil
}

// BrowseCategoryPlaylists returns the browse playlists of a given category.
func (c *Client) BrowseCategoryPlaylists(ctx context.Context, categoryID string) ([]Playlist, error) {
	var envelope categoryPlaylistsEnvelope
	target := fmt.Sprintf("%s/browse/categories/%s/playlists", c.baseURL, categoryID)
	if err := c.get(ctx, target, url.Values{"limit": {"50"}}, &envelope); err != nil {
		return nil, err
	}

	playlists := make([]Playlist, 0, len(envelope.Playlists.Items))
	for _, item := range envelope.Playlists.Items {
		playlists = append(playlists, playlistFromSimplified(item))
	}
	return playlists, nil
}

// CurrentUserSavedTracks returns the saved (liked) tracks of the current user.
func (c *Client) CurrentUserSavedTracks(ctx context.Context) ([]Track, error) {
	var first page[savedTrack]
	query := marketQuery()
	query.Set("limit", "50")
	if err := c.get(ctx, c.baseURL+"/me/tracks", query, &first); err != nil {
		return nil, err
	}

	saved, err := collectAllPages(ctx, c, first, marketQuery())
	if err != nil {
		return nil, err
	}

	tracks := make([]Track, 0, len(saved))
	for _, item := range saved {
		if track, ok := trackFromFull(item.Track); ok {
			tracks = append(tracks, track)
		}
	}
	return tracks, nil
}

// CurrentUserRecentlyPlayedTracks returns the recently played tracks of the
// current user, deduplicated by track name with the first occurrence winning.
func (c *Client) CurrentUserRecentlyPlayedTracks(ctx context.Context) ([]Track, error) {
	var first page[playHistory]
	target := c.baseURL + "/me/player/recently-played"
	if err := c.get(ctx, target, url.Values{"limit": {"50"}}, &first); err != nil {
		return nil, err
	}

	// the recently-played endpoint paginates by cursor; the walker does not care
	histories, err := collectAllPages(ctx, c, first, nil)
	if err != nil {
		return nil, err
	}

	tracks := make([]Track, 0, len(histories))
	for _, history := range histories {
		if track, ok := trackFromFull(history.Track); ok {
			tracks = append(tracks, track)
		}
	}
	return dedupTracksByName(tracks), nil
}

// CurrentUserTopTracks returns the top tracks of the current user.
func (c *Client) CurrentUserTopTracks(ctx context.Context) ([]Track, error) {
	var first page[fullTrack]
	if err := c.get(ctx, c.baseURL+"/me/top/tracks", url.Values{"limit": {"50"}}, &first); err != nil {
		return nil, err
	}

	full, err := collectAllPages(ctx, c, first, nil)
	if err != nil {
		return nil, err
	}

	tracks := make([]Track, 0, len(full))
	for _, item := range full {
		if track, ok := trackFromFull(item); ok {
			tracks = append(tracks, track)
		}
	}
	return tracks, nil
}

// CurrentUserPlaylists returns all playlists of the current user.
func (c *Client) CurrentUserPlaylists(ctx context.Context) ([]Playlist, error) {
	var first page[simplifiedPlaylist]
	if err := c.get(ctx, c.baseURL+"/me/playlists", url.Values{"limit": {"50"}}, &first); err != nil {
		return nil, err
	}

	simplified, err := collectAllPages(ctx, c, first, nil)
	if err != nil {
		return nil, err
	}

	playlists := make([]Playlist, 0, len(simplified))
	for _, item := range simplified {
		playlists = append(playlists, playlistFromSimplified(item))
	}
	return playlists, nil
}

// CurrentUserFollowedArtists returns all followed artists of the current
// user. The endpoint paginates by cursor and nests its page in an "artists"
// envelope, so the walk is done here rather than through collectAllPages.
func (c *Client) CurrentUserFollowedArtists(ctx context.Context) ([]Artist, error) {
	var envelope followedArtistsEnvelope
	query := url.Values{"type": {"artist"}, "limit": {"50"}}
	if err := c.get(ctx, c.baseURL+"/me/following", query, &envelope); err != nil {
		return nil, err
	}

	items := envelope.Artists.Items
	next := envelope.Artists.Next
	for next != nil {
		var nextEnvelope followedArtistsEnvelope
		if err := c.get(ctx, *next, nil, &nextEnvelope); err != nil {
			return nil, err
		}
		items = append(items, nextEnvelope.Artists.Items...)
		next = nextEnvelope.Artists.Next
	}

	artists := make([]Artist, 0, len(items))
	for _, item := range items {
		artists = append(artists, artistFromFull(item))
	}
	return artists, nil
}

// CurrentUserSavedAlbums returns all saved albums of the current user.
func (c *Client) CurrentUserSavedAlbums(ctx context.Context) ([]Album, error) {
	var first page[savedAlbum]
	query := marketQuery()
	query.Set("limit", "50")
	if err := c.get(ctx, c.baseURL+"/me/albums", query, &first); err != nil {
		return nil, err
	}

	saved, err := collectAllPages(ctx, c, first, nil)
	if err != nil {
		return nil, err
	}

	albums := make([]Album, 0, len(saved))
	for _, item := range saved {
		albums = append(albums, albumFromFull(item.Album))
	}
	return albums, nil
}

// ArtistAlbums returns an artist's discography: singles and albums fetched
// separately, merged, sorted by release date and deduplicated by name with
// the latest release winning.
func (c *Client) ArtistAlbums(ctx context.Context, artistID string) ([]Album, error) {
	singles, err := c.artistAlbumsOfType(ctx, artistID, "single")
	if err != nil {
		return nil, err
	}
	albums, err := c.artistAlbumsOfType(ctx, artistID, "album")
	if err != nil {
		return nil, err
	}
	return mergeArtistAlbums(albums, singles), nil
}

func (c *Client) artistAlbumsOfType(ctx context.Context, artistID, albumType string) ([]Album, error) {
	var first page[simplifiedAlbum]
	query := marketQuery()
	query.Set("include_groups", albumType)
	query.Set("limit", "50")

	target := fmt.Sprintf("%s/artists/%s/albums", c.baseURL, artistID)
	if err := c.get(ctx, target, query, &first); err != nil {
		return nil, err
	}

	simplified, err := collectAllPages(ctx, c, first, marketQuery())
	if err != nil {
		return nil, err
	}

	albums := make([]Album, 0, len(simplified))
	for _, item := range simplified {
		if album, ok := albumFromSimplified(item); ok {
			albums = append(albums, album)
		}
	}
	return albums, nil
}

// Tracks resolves track ids into full track records through the batch lookup
// endpoint, dropping ids that fail conversion. The endpoint caps a request
// at 50 ids, so larger inputs are chunked.
func (c *Client) Tracks(ctx context.Context, ids []string) ([]Track, error) {
	tracks := make([]Track, 0, len(ids))
	for len(ids) > 0 {
		chunk := ids
		if len(chunk) > 50 {
			chunk = chunk[:50]
		}
		ids = ids[len(chunk):]

		var envelope severalTracksEnvelope
		query := marketQuery()
		query.Set("ids", strings.Join(chunk, ","))
		if err := c.get(ctx, c.baseURL+"/tracks", query, &envelope); err != nil {
			return nil, err
		}
		for _, item := range envelope.Tracks {
			if track, ok := trackFromFull(item); ok {
				tracks = append(tracks, track)
			}
		}
	}
	return tracks, nil
}

// Search runs the four type-specific catalog searches concurrently and
// merges them into one result. If any sub-search fails the whole search
// fails; no partial results are surfaced.
func (c *Client) Search(ctx context.Context, query string) (*SearchResults, error) {
	var (
		trackResult    searchResult
		artistResult   searchResult
		albumResult    searchResult
		playlistResult searchResult
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error { return c.searchSpecificType(groupCtx, query, "track", &trackResult) })
	group.Go(func() error { return c.searchSpecificType(groupCtx, query, "artist", &artistResult) })
	group.Go(func() error { return c.searchSpecificType(groupCtx, query, "album", &albumResult) })
	group.Go(func() error { return c.searchSpecificType(groupCtx, query, "playlist", &playlistResult) })
	if err := group.Wait(); err != nil {
		return nil, err
	}

	// a response missing the requested kind is a decode failure, never a
	// silent substitution
	if trackResult.Tracks == nil {
		return nil, fmt.Errorf("%w: expected a track search result", shared.ErrDecode)
	}
	if artistResult.Artists == nil {
		return nil, fmt.Errorf("%w: expected an artist search result", shared.ErrDecode)
	}
	if albumResult.Albums == nil {
		return nil, fmt.Errorf("%w: expected an album search result", shared.ErrDecode)
	}
	if playlistResult.Playlists == nil {
		return nil, fmt.Errorf("%w: expected a playlist search result", shared.ErrDecode)
	}

	results := &SearchResults{}
	for _, item := range trackResult.Tracks.Items {
		if track, ok := trackFromFull(item); ok {
			results.Tracks = append(results.Tracks, track)
		}
	}
	for _, item := range artistResult.Artists.Items {
		results.Artists = append(results.Artists, artistFromFull(item))
	}
	for _, item := range albumResult.Albums.Items {
		if album, ok := albumFromSimplified(item); ok {
			results.Albums = append(results.Albums, album)
		}
	}
	for _, item := range playlistResult.Playlists.Items {
		results.Playlists = append(results.Playlists, playlistFromSimplified(item))
	}
	return results, nil
}

func (c *Client) searchSpecificType(ctx context.Context, query, kind string, out *searchResult) error {
	params := url.Values{"q": {query}, "type": {kind}}
	return c.get(ctx, c.baseURL+"/search", params, out)
}

// PlaylistContext fetches a playlist's metadata and its complete track list.
// Items that do not resolve to a playable track (removed or local entries,
// podcast episodes) are silently dropped.
func (c *Client) PlaylistContext(ctx context.Context, playlistID string) (Context, error) {
	c.logger.Info("get playlist context", "playlist_id", playlistID)

	var playlist fullPlaylist
	target := fmt.Sprintf("%s/playlists/%s", c.baseURL, playlistID)
	if err := c.get(ctx, target, marketQuery(), &playlist); err != nil {
		return nil, err
	}

	items, err := collectAllPages(ctx, c, playlist.Tracks, marketQuery())
	if err != nil {
		return nil, err
	}

	tracks := make([]Track, 0, len(items))
	for _, item := range items {
		if item.Track == nil || item.Track.Type != "track" {
			continue
		}
		if track, ok := trackFromFull(*item.Track); ok {
			tracks = append(tracks, track)
		}
	}

	return PlaylistContext{Playlist: playlistFromFull(playlist), Tracks: tracks}, nil
}

// AlbumContext fetches an album's metadata and its complete track list. The
// simplified tracks of an album omit the album reference, so the
// already-fetched album is backfilled into each converted track.
func (c *Client) AlbumContext(ctx context.Context, albumID string) (Context, error) {
	c.logger.Info("get album context", "album_id", albumID)

	var full fullAlbum
	target := fmt.Sprintf("%s/albums/%s", c.baseURL, albumID)
	if err := c.get(ctx, target, marketQuery(), &full); err != nil {
		return nil, err
	}

	album := albumFromFull(full)

	items, err := collectAllPages(ctx, c, full.Tracks, nil)
	if err != nil {
		return nil, err
	}

	tracks := make([]Track, 0, len(items))
	for _, item := range items {
		if track, ok := trackFromSimplified(item); ok {
			track.Album = &album
			tracks = append(tracks, track)
		}
	}

	return AlbumContext{Album: album, Tracks: tracks}, nil
}

// ArtistContext fetches an artist's metadata, top tracks, related artists
// and discography. The four sub-fetches are independent and run
// concurrently; the first failure fails the whole call.
func (c *Client) ArtistContext(ctx context.Context, artistID string) (Context, error) {
	c.logger.Info("get artist context", "artist_id", artistID)

	var (
		artist    fullArtist
		topTracks topTracksEnvelope
		related   relatedArtistsEnvelope
		albums    []Album
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		target := fmt.Sprintf("%s/artists/%s", c.baseURL, artistID)
		return c.get(groupCtx, target, nil, &artist)
	})
	group.Go(func() error {
		target := fmt.Sprintf("%s/artists/%s/top-tracks", c.baseURL, artistID)
		return c.get(groupCtx, target, marketQuery(), &topTracks)
	})
	group.Go(func() error {
		target := fmt.Sprintf("%s/artists/%s/related-artists", c.baseURL, artistID)
		return c.get(groupCtx, target, nil, &related)
	})
	group.Go(func() error {
		var err error
		albums, err = c.ArtistAlbums(groupCtx, artistID)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	tracks := make([]Track, 0, len(topTracks.Tracks))
	for _, item := range topTracks.Tracks {
		if track, ok := trackFromFull(item); ok {
			tracks = append(tracks, track)
		}
	}

	relatedArtists := make([]Artist, 0, len(related.Artists))
	for _, item := range related.Artists {
		relatedArtists = append(relatedArtists, artistFromFull(item))
	}

	return ArtistContext{
		Artist:         artistFromFull(artist),
		TopTracks:      tracks,
		Albums:         albums,
		RelatedArtists: relatedArtists,
	}, nil
}

// CreatePlaylist creates a new playlist owned by the given user.
func (c *Client) CreatePlaylist(ctx context.Context, userID, name string, public, collab bool, description string) (*Playlist, error) {
	body := map[string]any{
		"name":          name,
		"public":        public,
		"collaborative": collab,
		"description":   description,
	}

	var created fullPlaylist
	target := fmt.Sprintf("%s/users/%s/playlists", c.baseURL, userID)
	if err := c.send(ctx, http.MethodPost, target, nil, body, &created); err != nil {
		return nil, err
	}

	playlist := playlistFromFull(created)
	c.logger.Info("new playlist created", "name", playlist.Name, "id", playlist.ID)
	return &playlist, nil
}
