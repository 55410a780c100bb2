// Package remote mirrors the working set to a document store. The store is
// organised in five named collections of schemaless documents; Mirror maps
// the typed model onto them.
package remote

import (
	"context"

	"github.com/nhle/photodesk/internal/credential"
)

// Document is a single remote record. Fields never carries the id.
type Document struct {
	ID     string
	Fields map[string]any
}

// Collections is the subset of a document database the mirror relies on.
type Collections interface {
	// List returns every document in collection.
	List(ctx context.Context, collection string) ([]Document, error)
	// Add creates a document with a store-assigned id and returns the id.
	Add(ctx context.Context, collection string, fields map[string]any) (string, error)
	// Set creates or fully overwrites the document with the given id.
	Set(ctx context.Context, collection, id string, fields map[string]any) error
	// Delete removes the document with the given id. Missing documents
	// are not an error.
	Delete(ctx context.Context, collection, id string) error
	// DeleteAll empties collection.
	DeleteAll(ctx context.Context, collection string) error
}

// Dialer opens a connection to the remote store described by creds.
type Dialer func(ctx context.Context, creds credential.Firebase) (Collections, error)
