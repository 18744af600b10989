package spotify

import "testing"

func TestTrackConversions(t *testing.T) {
	t.Run("Full Track", func(t *testing.T) {
		track, ok := trackFromFull(fullTrack{
			ID:         "t1",
			Type:       "track",
			Name:       "Song",
			Artists:    []simplifiedArtist{{ID: "a1", Name: "Artist"}},
			Album:      simplifiedAlbum{ID: "al1", Name: "Record", ReleaseDate: "2021-01-01"},
			DurationMS: 215000,
			URI:        "spotify:track:t1",
		})
		if !ok {
			t.Fatal("expected conversion to succeed")
		}
		if track.Duration != 215 {
			t.Errorf("expected duration in seconds, got %d", track.Duration)
		}
		if track.Album == nil || track.Album.Name != "Record" {
			t.Errorf("expected album reference, got %+v", track.Album)
		}
	})

	t.Run("Local Track Without ID Fails", func(t *testing.T) {
		if _, ok := trackFromFull(fullTrack{Name: "local file"}); ok {
			t.Error("a track without an id must fail conversion")
		}
	})

	t.Run("Simplified Track Has No Album", func(t *testing.T) {
		track, ok := trackFromSimplified(simplifiedTrack{ID: "t2", Name: "Cut"})
		if !ok {
			t.Fatal("expected conversion to succeed")
		}
		if track.Album != nil {
			t.Error("simplified tracks carry no album; it must be backfilled by the caller")
		}
	})

	t.Run("Album Without ID Fails", func(t *testing.T) {
		if _, ok := albumFromSimplified(simplifiedAlbum{Name: "unavailable"}); ok {
			t.Error("an album without an id must fail conversion")
		}
	})

	t.Run("Full Track With Unavailable Album Still Converts", func(t *testing.T) {
		track, ok := trackFromFull(fullTrack{ID: "t3", Name: "Song"})
		if !ok {
			t.Fatal("expected conversion to succeed")
		}
		if track.Album != nil {
			t.Error("album conversion failure must leave the reference empty, not fail the track")
		}
	})
}

func TestArtistNames(t *testing.T) {
	track := Track{Artists: []Artist{{Name: "One"}, {Name: "Two"}}}
	if got := track.ArtistNames(); got != "One, Two" {
		t.Errorf("expected 'One, Two', got %q", got)
	}
}
