package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/chorus-audio/chorus/internal/shared"
)

const apiEndpoint = "https://api.spotify.com/v1"

// marketQuery restricts results to the regional availability of the
// authenticated user.
func marketQuery() url.Values {
	return url.Values{"market": {"from_token"}}
}

// patchAPIResponse rewrites known upstream schema defects in a raw response
// body before decoding. The API sometimes returns "images": null where the
// documented shape is a list, which would otherwise be a decode failure.
// The rewrite is applied to every response body and is idempotent.
func patchAPIResponse(body []byte) []byte {
	return bytes.ReplaceAll(body, []byte(`"images":null`), []byte(`"images":[]`))
}

// get performs an authenticated GET against the catalog API and decodes the
// patched response body into out. Query parameters are merged into any
// already present on the URL, so pagination next-URLs keep their offset or
// cursor. No retries happen here.
func (c *Client) get(ctx context.Context, rawURL string, query url.Values, out any) error {
	return c.send(ctx, http.MethodGet, rawURL, query, nil, out)
}

// send is the single entry point for authenticated catalog API requests.
func (c *Client) send(ctx context.Context, method, rawURL string, query url.Values, body any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if len(query) > 0 {
		q := req.URL.Query()
		for key, values := range query {
			for _, v := range values {
				q.Set(key, v)
			}
		}
		req.URL.RawQuery = q.Encode()
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("catalog API request",
		"method", method, "url", req.URL.String(), "request_id", shared.GenerateID())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", shared.ErrAPIRequest, method, rawURL, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", shared.ErrAPIRequest, rawURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &shared.StatusError{Code: resp.StatusCode, URL: rawURL}
	}

	if out == nil {
		return nil
	}

	raw = patchAPIResponse(raw)
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", shared.ErrDecode, rawURL, err)
	}
	return nil
}
