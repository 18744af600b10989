// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{Name: "json", Usage: "Output raw JSON"}
}

// register builds the command tree.
func (r *Runner) register() []*cli.Command {
	return []*cli.Command{
		searchCommand(r),
		getCommand(r),
		libraryCommand(r),
		browseCommand(r),
		radioCommand(r),
		playlistCommand(r),
	}
}

// searchCommand searches the catalog across all four types at once
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search tracks, artists, albums and playlists",
		ArgsUsage: "<query>",
		Flags:     []cli.Flag{jsonFlag()},
		Action:    r.Search,
	}
}

// getCommand fetches a fully composed context for a single resource
func getCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "get",
		Usage: "Fetch a resource with its tracks and related entities",
		Commands: []*cli.Command{
			{
				Name:      "playlist",
				Usage:     "Playlist metadata plus its full track list",
				ArgsUsage: "<playlist-id>",
				Flags:     []cli.Flag{jsonFlag()},
				Action:    r.PlaylistContext,
			},
			{
				Name:      "album",
				Usage:     "Album metadata plus its full track list",
				ArgsUsage: "<album-id>",
				Flags:     []cli.Flag{jsonFlag()},
				Action:    r.AlbumContext,
			},
			{
				Name:      "artist",
				Usage:     "Artist metadata, top tracks, discography and related artists",
				ArgsUsage: "<artist-id>",
				Flags:     []cli.Flag{jsonFlag()},
				Action:    r.ArtistContext,
			},
		},
	}
}

// libraryCommand lists the current user's library collections
func libraryCommand(r *Runner) *cli.Command {
	trackFlags := []cli.Flag{
		jsonFlag(),
		&cli.BoolFlag{Name: "csv", Usage: "Output CSV"},
	}
	return &cli.Command{
		Name:    "library",
		Aliases: []string{"lib"},
		Usage:   "List the current user's library",
		Commands: []*cli.Command{
			{
				Name:   "liked",
				Usage:  "Saved (liked) tracks",
				Flags:  trackFlags,
				Action: r.LikedTracks,
			},
			{
				Name:   "recent",
				Usage:  "Recently played tracks, deduplicated by name",
				Flags:  trackFlags,
				Action: r.RecentTracks,
			},
			{
				Name:   "top",
				Usage:  "Top tracks",
				Flags:  trackFlags,
				Action: r.TopTracks,
			},
			{
				Name:   "playlists",
				Usage:  "Playlists of the current user",
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.Playlists,
			},
			{
				Name:   "albums",
				Usage:  "Saved albums",
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.Albums,
			},
			{
				Name:   "artists",
				Usage:  "Followed artists",
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.Artists,
			},
		},
	}
}

// browseCommand exposes the catalog's browse categories
func browseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "browse",
		Usage: "Browse catalog categories",
		Commands: []*cli.Command{
			{
				Name:   "categories",
				Usage:  "List available browse categories",
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.Categories,
			},
			{
				Name:      "category",
				Usage:     "List playlists of a browse category",
				ArgsUsage: "<category-id>",
				Flags:     []cli.Flag{jsonFlag()},
				Action:    r.CategoryPlaylists,
			},
		},
	}
}

// radioCommand resolves a seed resource into a recommendation track list
func radioCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "radio",
		Usage:     "Derive a radio track list from a seed resource URI",
		ArgsUsage: "<seed-uri>",
		Flags:     []cli.Flag{jsonFlag()},
		Action:    r.Radio,
	}
}

// playlistCommand mutates playlists
func playlistCommand(r *Runner) *cli.Command {
	targetFlags := func() []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{Name: "playlist", Aliases: []string{"p"}, Usage: "Playlist ID", Required: true},
			&cli.StringFlag{Name: "track", Aliases: []string{"t"}, Usage: "Track ID", Required: true},
		}
	}
	return &cli.Command{
		Name:  "playlist",
		Usage: "Edit playlists",
		Commands: []*cli.Command{
			{
				Name:   "add",
				Usage:  "Add a track, removing any existing occurrences first",
				Flags:  targetFlags(),
				Action: r.PlaylistAdd,
			},
			{
				Name:   "remove",
				Usage:  "Remove all occurrences of a track",
				Flags:  targetFlags(),
				Action: r.PlaylistRemove,
			},
			{
				Name:  "reorder",
				Usage: "Move a range of items to a new position",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "playlist", Aliases: []string{"p"}, Usage: "Playlist ID", Required: true},
					&cli.IntFlag{Name: "insert", Usage: "Destination index", Required: true},
					&cli.IntFlag{Name: "start", Usage: "First index of the range to move", Required: true},
					&cli.IntFlag{Name: "length", Usage: "Length of the range (default 1)"},
					&cli.StringFlag{Name: "snapshot", Usage: "Playlist snapshot id"},
				},
				Action: r.PlaylistReorder,
			},
			{
				Name:  "create",
				Usage: "Create a new playlist",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Playlist name", Required: true},
					&cli.StringFlag{Name: "description", Usage: "Playlist description"},
					&cli.BoolFlag{Name: "public", Usage: "Make the playlist public"},
					&cli.BoolFlag{Name: "collab", Usage: "Make the playlist collaborative"},
					jsonFlag(),
				},
				Action: r.PlaylistCreate,
			},
		},
	}
}
