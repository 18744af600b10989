package spotify

import "sort"

// Merge and dedup policies applied to fully collected sequences. Name
// equality, not id equality, is the dedup key in both policies: upstream
// re-issues the same logical item under different ids.

// dedupTracksByName keeps the first occurrence of each distinct track name,
// preserving the order received.
func dedupTracksByName(tracks []Track) []Track {
	seen := make(map[string]struct{}, len(tracks))
	deduped := make([]Track, 0, len(tracks))
	for _, t := range tracks {
		if _, ok := seen[t.Name]; ok {
			continue
		}
		seen[t.Name] = struct{}{}
		deduped = append(deduped, t)
	}
	return deduped
}

// mergeArtistAlbums combines an artist's albums and singles into one
// discography: sorted by release date, with the latest-dated release winning
// among albums sharing a name. Release dates are YYYY[-MM[-DD]] strings, so
// lexicographic order is date order. The result is newest first.
func mergeArtistAlbums(albums, singles []Album) []Album {
	merged := make([]Album, 0, len(albums)+len(singles))
	merged = append(merged, albums...)
	merged = append(merged, singles...)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].ReleaseDate < merged[j].ReleaseDate
	})

	seen := make(map[string]struct{}, len(merged))
	kept := make([]Album, 0, len(merged))
	for i := len(merged) - 1; i >= 0; i-- {
		album := merged[i]
		if _, ok := seen[album.Name]; ok {
			continue
		}
		seen[album.Name] = struct{}{}
		kept = append(kept, album)
	}
	return kept
}
