// Package source loads survey datasets.
//
// A [Source] is a directory of JSON files ([Dir]) or a MongoDB database
// ([Mongo]). [Open] picks one from a command-line argument. [Cached] puts a
// cache in front of a [Snapshotter] so repeated renders of a remote dataset
// do not hit the database. Directories are read fresh on every load.
package source

import (
	"context"
	"time"

	"github.com/matzehuels/surveycharts/pkg/errors"
	"github.com/matzehuels/surveycharts/pkg/observability"
	"github.com/matzehuels/surveycharts/pkg/survey"
)

// Source loads a dataset.
type Source interface {
	// Name identifies the source in logs and cache keys. It never contains
	// credentials.
	Name() string

	// Load reads the dataset. Missing parts are left empty.
	Load(ctx context.Context) (*survey.Dataset, error)
}

// Snapshotter is a source whose dataset may be served from a cached
// snapshot for at most SnapshotTTL.
type Snapshotter interface {
	Source
	SnapshotTTL() time.Duration
}

// Options configure [Open].
type Options struct {
	// Files names the JSON files of a directory source.
	Files survey.Files
	// Database is required for MongoDB URIs.
	Database string
}

// Open returns a Mongo source for mongodb:// and mongodb+srv:// URIs and a
// directory source for anything else.
func Open(ctx context.Context, arg string, opts Options) (Source, error) {
	if errors.IsMongoURI(arg) {
		if opts.Database == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "a MongoDB source needs --mongo-db")
		}
		return DialMongo(ctx, arg, opts.Database)
	}
	if err := errors.ValidatePath(arg); err != nil {
		return nil, err
	}
	return NewDir(arg, opts.Files), nil
}

// Load loads from src and reports the load to the pipeline hooks.
func Load(ctx context.Context, src Source) (*survey.Dataset, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, src.Name())
	start := time.Now()

	ds, err := src.Load(ctx)
	records := 0
	if err == nil {
		records = Records(ds)
	}
	hooks.OnLoadComplete(ctx, src.Name(), records, time.Since(start), err)
	return ds, err
}

// Records counts role, link and org records.
func Records(ds *survey.Dataset) int {
	s := ds.Summary()
	return s.Roles + s.Links + s.Orgs
}

// Close releases resources held by src, if any.
func Close(ctx context.Context, src Source) error {
	if c, ok := src.(interface{ Close(context.Context) error }); ok {
		return c.Close(ctx)
	}
	return nil
}
