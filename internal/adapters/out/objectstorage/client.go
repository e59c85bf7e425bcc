// Package objectstorage implements the ObjectStorage port over plain HTTP.
//
// Uploads live in an S3-compatible bucket that clients write to directly
// through presigned URLs; this service only ever checks that an object
// arrived and deletes objects it no longer needs. Both operations map to a
// single HTTP verb per object (HEAD and DELETE), so the adapter talks to the
// signing gateway with a bare HTTP client.
//
// Objects are addressed as <key>.<filetype> under the configured base URL,
// for example https://storage.internal/uploads/3f2a....pdf.
package objectstorage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"printshop/internal/core/domain/model/draft"
	"printshop/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Client is an HTTP implementation of the ObjectStorage port.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ ports.ObjectStorage = &Client{}

// NewClient creates a storage client rooted at baseURL. The httpClient may be
// nil, in which case a client with a 10 second timeout is used.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("objectstorage: invalid base URL %q", baseURL)
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}, nil
}

// objectURL builds the address of a stored object: <base>/<key>.<filetype>.
func (c *Client) objectURL(object draft.StoredObject) string {
	return fmt.Sprintf("%s/%s.%s", c.baseURL, object.Key, object.Filetype)
}

// Exists reports whether the object was actually uploaded. A 404 means the
// client never completed the upload; any other non-2xx status is an error.
func (c *Client) Exists(ctx context.Context, object draft.StoredObject) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.objectURL(object), nil)
	if err != nil {
		return false, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return true, nil
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("objectstorage: HEAD %s: unexpected status %d", object.Key, resp.StatusCode)
	}
}

// DeleteObject removes a single object. Deleting a missing object is not an
// error: staged files may expire before the upload ever happened.
func (c *Client) DeleteObject(ctx context.Context, object draft.StoredObject) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.objectURL(object), nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("objectstorage: DELETE %s: unexpected status %d", object.Key, resp.StatusCode)
	}

	return nil
}

// DeleteObjects removes a batch of objects best effort. It keeps going past
// individual failures and reports them joined, so the caller can log what was
// left behind without aborting the sweep.
func (c *Client) DeleteObjects(ctx context.Context, objects []draft.StoredObject) error {
	var errsJoined []error

	for _, object := range objects {
		if err := c.DeleteObject(ctx, object); err != nil {
			errsJoined = append(errsJoined, err)
		}
	}

	return errors.Join(errsJoined...)
}
