package firestore

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/nhle/photodesk/internal/credential"
	"github.com/nhle/photodesk/internal/remote"
)

const (
	listPageSize = 300
	// commitBatchSize is the maximum number of writes per commit.
	commitBatchSize = 500
)

var _ remote.Collections = (*Client)(nil)

// Dialer returns a remote.Dialer creating Firestore clients against
// baseURL.
func Dialer(baseURL string, timeout time.Duration) remote.Dialer {
	return func(ctx context.Context, creds credential.Firebase) (remote.Collections, error) {
		if !creds.Complete() {
			return nil, errors.New("firestore: api key, project id and app id are required")
		}
		return NewClient(baseURL, creds.ProjectID, creds.APIKey, timeout), nil
	}
}

func (c *Client) collectionPath(collection string) string {
	return c.databasePath() + "/" + url.PathEscape(collection)
}

func (c *Client) documentPath(collection, id string) string {
	return c.collectionPath(collection) + "/" + url.PathEscape(id)
}

func toRemote(doc Document) remote.Document {
	return remote.Document{
		ID:     path.Base(doc.Name),
		Fields: DecodeFields(doc.Fields),
	}
}

// List implements remote.Collections, following page tokens until the
// collection is exhausted.
func (c *Client) List(ctx context.Context, collection string) ([]remote.Document, error) {
	var out []remote.Document
	pageToken := ""
	for {
		q := url.Values{}
		q.Set("pageSize", strconv.Itoa(listPageSize))
		if pageToken != "" {
			q.Set("pageToken", pageToken)
		}

		var resp ListResponse
		if err := c.do(ctx, http.MethodGet, c.collectionPath(collection), q, nil, &resp); err != nil {
			return nil, fmt.Errorf("listing %s: %w", collection, err)
		}
		for _, doc := range resp.Documents {
			out = append(out, toRemote(doc))
		}
		if resp.NextPageToken == "" {
			return out, nil
		}
		pageToken = resp.NextPageToken
	}
}

// Add implements remote.Collections.
func (c *Client) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	enc, err := EncodeFields(fields)
	if err != nil {
		return "", err
	}

	var created Document
	if err := c.do(ctx, http.MethodPost, c.collectionPath(collection), nil, Document{Fields: enc}, &created); err != nil {
		return "", fmt.Errorf("adding to %s: %w", collection, err)
	}
	return path.Base(created.Name), nil
}

// Set implements remote.Collections. A PATCH without an update mask
// replaces the whole document, creating it when missing.
func (c *Client) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	enc, err := EncodeFields(fields)
	if err != nil {
		return err
	}
	if err := c.do(ctx, http.MethodPatch, c.documentPath(collection, id), nil, Document{Fields: enc}, nil); err != nil {
		return fmt.Errorf("setting %s/%s: %w", collection, id, err)
	}
	return nil
}

// Delete implements remote.Collections.
func (c *Client) Delete(ctx context.Context, collection, id string) error {
	if err := c.do(ctx, http.MethodDelete, c.documentPath(collection, id), nil, nil, nil); err != nil {
		return fmt.Errorf("deleting %s/%s: %w", collection, id, err)
	}
	return nil
}

// DeleteAll implements remote.Collections by listing the collection and
// committing delete writes in batches.
func (c *Client) DeleteAll(ctx context.Context, collection string) error {
	docs, err := c.List(ctx, collection)
	if err != nil {
		return err
	}

	for start := 0; start < len(docs); start += commitBatchSize {
		end := min(start+commitBatchSize, len(docs))
		req := CommitRequest{Writes: make([]Write, 0, end-start)}
		for _, doc := range docs[start:end] {
			req.Writes = append(req.Writes, Write{Delete: c.documentPath(collection, doc.ID)})
		}
		if err := c.do(ctx, http.MethodPost, c.databasePath()+":commit", nil, req, nil); err != nil {
			return fmt.Errorf("clearing %s: %w", collection, err)
		}
	}

	log.Printf("firestore: cleared %d documents from %s", len(docs), collection)
	return nil
}
