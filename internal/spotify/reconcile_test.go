package spotify

import "testing"

func TestDedupTracksByName(t *testing.T) {
	t.Run("First Occurrence Wins", func(t *testing.T) {
		tracks := []Track{
			{ID: "1", Name: "X"},
			{ID: "2", Name: "Y"},
			{ID: "3", Name: "X"},
		}

		deduped := dedupTracksByName(tracks)
		if len(deduped) != 2 {
			t.Fatalf("expected 2 tracks, got %d", len(deduped))
		}
		if deduped[0].ID != "1" || deduped[0].Name != "X" {
			t.Errorf("expected first occurrence of X to survive, got %+v", deduped[0])
		}
		if deduped[1].ID != "2" {
			t.Errorf("expected Y second, got %+v", deduped[1])
		}
	})

	t.Run("Dedup Key Is Name Not ID", func(t *testing.T) {
		tracks := []Track{
			{ID: "1", Name: "Same"},
			{ID: "2", Name: "Same"},
		}
		if got := dedupTracksByName(tracks); len(got) != 1 {
			t.Errorf("same name under different ids must collapse, got %d", len(got))
		}
	})

	t.Run("Empty Input", func(t *testing.T) {
		if got := dedupTracksByName(nil); len(got) != 0 {
			t.Errorf("expected empty result, got %v", got)
		}
	})
}

func TestMergeArtistAlbums(t *testing.T) {
	t.Run("Latest Release Wins Per Name", func(t *testing.T) {
		albums := []Album{
			{ID: "a1", Name: "A", ReleaseDate: "2020-01-01"},
			{ID: "a2", Name: "A", ReleaseDate: "2022-06-01"},
		}

		merged := mergeArtistAlbums(albums, nil)
		if len(merged) != 1 {
			t.Fatalf("expected 1 album, got %d", len(merged))
		}
		if merged[0].ID != "a2" {
			t.Errorf("expected the 2022 release to survive, got %+v", merged[0])
		}
	})

	t.Run("Combines Singles And Albums Newest First", func(t *testing.T) {
		albums := []Album{{ID: "a", Name: "Album", ReleaseDate: "2019-03-01"}}
		singles := []Album{
			{ID: "s1", Name: "Single One", ReleaseDate: "2021-01-01"},
			{ID: "s2", Name: "Single Two", ReleaseDate: "2017-05-01"},
		}

		merged := mergeArtistAlbums(albums, singles)
		if len(merged) != 3 {
			t.Fatalf("expected 3 albums, got %d", len(merged))
		}

		wantOrder := []string{"s1", "a", "s2"}
		for i, id := range wantOrder {
			if merged[i].ID != id {
				t.Errorf("position %d: expected %s, got %s", i, id, merged[i].ID)
			}
		}
	})

	t.Run("Year Only Dates Compare Correctly", func(t *testing.T) {
		albums := []Album{
			{ID: "old", Name: "Reissued", ReleaseDate: "1999"},
			{ID: "new", Name: "Reissued", ReleaseDate: "2020-11-20"},
		}
		merged := mergeArtistAlbums(albums, nil)
		if len(merged) != 1 || merged[0].ID != "new" {
			t.Errorf("expected the 2020 reissue to survive, got %+v", merged)
		}
	})
}
