package spotify

import (
	"context"
	"net/url"
)

// collectAllPages walks a paginated sequence to completion, starting from an
// already-fetched first page. Items are appended in upstream page and
// within-page order; no filtering or reordering happens here. The walk stops
// exactly when the next URL is absent, and works the same whether that URL
// encodes an offset or an opaque cursor.
//
// A failed page fetch aborts the walk and discards everything collected so
// far; there is no partial-success return.
func collectAllPages[T any](ctx context.Context, c *Client, first page[T], query url.Values) ([]T, error) {
	items := first.Items
	next := first.Next

	for next != nil {
		var nextPage page[T]
		if err := c.get(ctx, *next, query, &nextPage); err != nil {
			return nil, err
		}
		items = append(items, nextPage.Items...)
		next = nextPage.Next
	}
	return items, nil
}
