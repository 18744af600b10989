package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/chorus-audio/chorus/internal/formatter"
	"github.com/chorus-audio/chorus/internal/session"
	"github.com/chorus-audio/chorus/internal/shared"
	"github.com/chorus-audio/chorus/internal/spotify"
)

// Runner wires configuration, session construction and the catalog client
// behind the CLI actions. The client is created lazily on the first action
// that needs it.
type Runner struct {
	logger *log.Logger
	client *spotify.Client
}

func newRunner(logger *log.Logger) *Runner {
	return &Runner{logger: logger}
}

// ensureClient loads configuration, builds a session connector and connects
// the first session. Repeated calls reuse the existing client.
func (r *Runner) ensureClient(ctx context.Context, cmd *cli.Command) (*spotify.Client, error) {
	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}
	if r.client != nil {
		return r.client, nil
	}

	config, err := shared.LoadConfig(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	if !config.HasCredentials() {
		return nil, fmt.Errorf("%w: set SPOTIFY_USERNAME and SPOTIFY_PASSWORD or add a [credentials] section", shared.ErrMissingCredentials)
	}

	connector, err := session.NewConnector(session.OptionsFromConfig(config), r.logger)
	if err != nil {
		return nil, err
	}

	client := spotify.New(config, connector, nil, r.logger)
	if err := client.EnsureValidSession(ctx); err != nil {
		return nil, err
	}

	r.client = client
	return client, nil
}

// output prints a result as JSON when the --json flag is set, otherwise via
// the provided text renderer.
func output(cmd *cli.Command, v any, text func() []byte) error {
	if cmd.Bool("json") {
		data, err := formatter.ToJSON(v)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(data))
		return nil
	}
	_, err := os.Stdout.Write(text())
	return err
}

func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := cmd.Args().First()
	if query == "" {
		return fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	client, err := r.ensureClient(ctx, cmd)
	if err != nil {
		return err
	}

	results, err := client.Search(ctx, query)
	if err != nil {
		return err
	}
	return output(cmd, results, func() []byte { return formatter.SearchResultsToText(results) })
}

func (r *Runner) PlaylistContext(ctx context.Context, cmd *cli.Command) error {
	return r.contextAction(ctx, cmd, func(client *spotify.Client, id string) (spotify.Context, error) {
		return client.PlaylistContext(ctx, id)
	})
}

func (r *Runner) AlbumContext(ctx context.Context, cmd *cli.Command) error {
	return r.contextAction(ctx, cmd, func(client *spotify.Client, id string) (spotify.Context, error) {
		return client.AlbumContext(ctx, id)
	})
}

func (r *Runner) ArtistContext(ctx context.Context, cmd *cli.Command) error {
	return r.contextAction(ctx, cmd, func(client *spotify.Client, id string) (spotify.Context, error) {
		return client.ArtistContext(ctx, id)
	})
}

func (r *Runner) contextAction(ctx context.Context, cmd *cli.Command, fetch func(*spotify.Client, string) (spotify.Context, error)) error {
	id := cmd.Args().First()
	if id == "" {
		return fmt.Errorf("%w: resource id", shared.ErrMissingArgument)
	}

	client, err := r.ensureClient(ctx, cmd)
	if err != nil {
		return err
	}

	result, err := fetch(client, id)
	if err != nil {
		return err
	}
	return output(cmd, result, func() []byte { return formatter.ContextToText(result) })
}

func (r *Runner) LikedTracks(ctx context.Context, cmd *cli.Command) error {
	return r.trackListAction(ctx, cmd, (*spotify.Client).CurrentUserSavedTracks)
}

func (r *Runner) RecentTracks(ctx context.Context, cmd *cli.Command) error {
	return r.trackListAction(ctx, cmd, (*spotify.Client).CurrentUserRecentlyPlayedTracks)
}

func (r *Runner) TopTracks(ctx context.Context, cmd *cli.Command) error {
	return r.trackListAction(ctx, cmd, (*spotify.Client).CurrentUserTopTracks)
}

func (r *Runner) trackListAction(ctx context.Context, cmd *cli.Command, fetch func(*spotify.Client, context.Context) ([]spotify.Track, error)) error {
	client, err := r.ensureClient(ctx, cmd)
	if err != nil {
		return err
	}

	tracks, err := fetch(client, ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("csv") {
		data, err := formatter.TracksToCSV(tracks)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}
	return output(cmd, tracks, func() []byte { return formatter.TracksToText(tracks) })
}

func (r *Runner) Playlists(ctx context.Context, cmd *cli.Command) error {
	client, err := r.ensureClient(ctx, cmd)
	if err != nil {
		return err
	}

	playlists, err := client.CurrentUserPlaylists(ctx)
	if err != nil {
		return err
	}
	return output(cmd, playlists, func() []byte { return formatter.PlaylistsToText(playlists) })
}

func (r *Runner) Albums(ctx context.Context, cmd *cli.Command) error {
	client, err := r.ensureClient(ctx, cmd)
	if err != nil {
		return err
	}

	albums, err := client.CurrentUserSavedAlbums(ctx)
	if err != nil {
		return err
	}
	return output(cmd, albums, func() []byte { return formatter.AlbumsToText(albums) })
}

func (r *Runner) Artists(ctx context.Context, cmd *cli.Command) error {
	client, err := r.ensureClient(ctx, cmd)
	if err != nil {
		return err
	}

	artists, err := client.CurrentUserFollowedArtists(ctx)
	if err != nil {
		return err
	}
	return output(cmd, artists, func() []byte { return formatter.ArtistsToText(artists) })
}

func (r *Runner) Categories(ctx context.Context, cmd *cli.Command) error {
	client, err := r.ensureClient(ctx, cmd)
	if err != nil {
		return err
	}

	categories, err := client.BrowseCategories(ctx)
	if err != nil {
		return err
	}
	return output(cmd, categories, func() []byte {
		data := make([]byte, 0)
		for i, category := range categories {
			data = fmt.Appendf(data, "%d. %s (%s)\n", i+1, category.Name, category.ID)
		}
		return data
	})
}

func (r *Runner) CategoryPlaylists(ctx context.Context, cmd *cli.Command) error {
	id := cmd.Args().First()
	if id == "" {
		return fmt.Errorf("%w: category id", shared.ErrMissingArgument)
	}

	client, err := r.ensureClient(ctx, cmd)
	if err != nil {
		return err
	}

	playlists, err := client.BrowseCategoryPlaylists(ctx, id)
	if err != nil {
		return err
	}
	return output(cmd, playlists, func() []byte { return formatter.PlaylistsToText(playlists) })
}

func (r *Runner) Radio(ctx context.Context, cmd *cli.Command) error {
	seed := cmd.Args().First()
	if seed == "" {
		return fmt.Errorf("%w: seed URI", shared.ErrMissingArgument)
	}

	client, err := r.ensureClient(ctx, cmd)
	if err != nil {
		return err
	}

	tracks, err := client.RadioTracks(ctx, seed)
	if err != nil {
		return err
	}
	return output(cmd, tracks, func() []byte { return formatter.TracksToText(tracks) })
}

func (r *Runner) PlaylistAdd(ctx context.Context, cmd *cli.Command) error {
	client, err := r.ensureClient(ctx, cmd)
	if err != nil {
		return err
	}
	if err := client.AddTrackToPlaylist(ctx, cmd.String("playlist"), cmd.String("track")); err != nil {
		return err
	}
	r.logger.Info("track added", "playlist", cmd.String("playlist"), "track", cmd.String("track"))
	return nil
}

func (r *Runner) PlaylistRemove(ctx context.Context, cmd *cli.Command) error {
	client, err := r.ensureClient(ctx, cmd)
	if err != nil {
		return err
	}
	if err := client.DeleteTrackFromPlaylist(ctx, cmd.String("playlist"), cmd.String("track")); err != nil {
		return err
	}
	r.logger.Info("track removed", "playlist", cmd.String("playlist"), "track", cmd.String("track"))
	return nil
}

func (r *Runner) PlaylistReorder(ctx context.Context, cmd *cli.Command) error {
	client, err := r.ensureClient(ctx, cmd)
	if err != nil {
		return err
	}
	return client.ReorderPlaylistItems(ctx,
		cmd.String("playlist"),
		int(cmd.Int("insert")),
		int(cmd.Int("start")),
		int(cmd.Int("length")),
		cmd.String("snapshot"),
	)
}

func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	client, err := r.ensureClient(ctx, cmd)
	if err != nil {
		return err
	}

	playlist, err := client.CreatePlaylist(ctx,
		client.Username(),
		cmd.String("name"),
		cmd.Bool("public"),
		cmd.Bool("collab"),
		cmd.String("description"),
	)
	if err != nil {
		return err
	}
	return output(cmd, playlist, func() []byte {
		return fmt.Appendf(nil, "created playlist %s (%s)\n", playlist.Name, playlist.ID)
	})
}
