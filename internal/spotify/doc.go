// Package spotify aggregates the Spotify Web API and the streaming session
// into merged domain objects: tracks, albums, artists, playlists, search
// results and radio recommendations.
//
// # Client
//
// [Client] is the entry point. It owns the active [session.Session] behind a
// read-write mutex and replaces it through [Client.EnsureValidSession] when
// the session reports itself invalid. Every public operation is a thin
// orchestration over three internal pieces:
//
//   - an authenticated fetcher that patches known upstream response defects
//     before decoding and surfaces non-2xx statuses as [shared.StatusError]
//   - a generic page walker that collects offset- and cursor-paginated
//     sequences to completion
//   - merge and dedup policies for collections the upstream returns in an
//     inconsistent or denormalized shape
//
// # Contexts
//
// [Client.PlaylistContext], [Client.AlbumContext] and [Client.ArtistContext]
// compose several dependent or parallel fetches into a single [Context]
// aggregate. [Client.Search] fans out over the four catalog types
// concurrently and fails as a whole if any branch fails.
//
// # Error Handling
//
// Operations return typed errors from the shared package:
//   - [shared.ErrAuthFailed] / [shared.ErrNotAuthenticated] : no usable token
//   - [shared.ErrAPIRequest] : transport failure on a single fetch
//   - [shared.StatusError] : non-success upstream status, code attached
//   - [shared.ErrDecode] : response shape mismatch, including search-type
//     mismatches
//
// Domain conversions that are expected to sometimes fail (a track without an
// id, an album without one) are not errors; the offending item is dropped.
package spotify
