package source

import (
	"context"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/surveycharts/pkg/errors"
	"github.com/matzehuels/surveycharts/pkg/survey"
)

// Collections holding a dataset.
const (
	CollectionRoles = "roles"
	CollectionNodes = "connect_nodes"
	CollectionLinks = "connect_links"
	CollectionOrgs  = "orgs"
)

// Store is the part of a document database the Mongo source uses.
type Store interface {
	// FindAll decodes every document of collection, ordered by sort, into
	// out, which must point to a slice.
	FindAll(ctx context.Context, collection string, sort bson.D, out any) error

	// ReplaceAll drops the collection's documents and inserts docs.
	ReplaceAll(ctx context.Context, collection string, docs []any) error
}

// DefaultSnapshotTTL bounds how long a cached Mongo dataset is served.
const DefaultSnapshotTTL = 5 * time.Minute

// Mongo loads datasets from four collections of one database.
type Mongo struct {
	name   string
	store  Store
	client *mongo.Client

	// TTL overrides DefaultSnapshotTTL when positive.
	TTL time.Duration
}

// DialMongo connects to uri and uses database db.
func DialMongo(ctx context.Context, uri, db string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(5*time.Second))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "ping mongodb")
	}
	m := NewMongo(redactURI(uri, db), &mongoStore{db: client.Database(db)})
	m.client = client
	return m, nil
}

// NewMongo returns a source backed by store.
func NewMongo(name string, store Store) *Mongo {
	return &Mongo{name: name, store: store}
}

func (m *Mongo) Name() string { return m.name }

// SnapshotTTL makes Mongo datasets cacheable for a short while.
func (m *Mongo) SnapshotTTL() time.Duration {
	if m.TTL > 0 {
		return m.TTL
	}
	return DefaultSnapshotTTL
}

func (m *Mongo) Load(ctx context.Context) (*survey.Dataset, error) {
	ds := &survey.Dataset{}
	if err := m.store.FindAll(ctx, CollectionRoles, bson.D{{Key: "iRole", Value: 1}}, &ds.Roles); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecodeFailed, err, "read %s", CollectionRoles)
	}

	c := &survey.Connect{}
	if err := m.store.FindAll(ctx, CollectionNodes, bson.D{{Key: "level", Value: 1}, {Key: "index", Value: 1}}, &c.Nodes); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecodeFailed, err, "read %s", CollectionNodes)
	}
	if err := m.store.FindAll(ctx, CollectionLinks, bson.D{{Key: "iOrg", Value: 1}, {Key: "iRole", Value: 1}}, &c.Links); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecodeFailed, err, "read %s", CollectionLinks)
	}
	if len(c.Nodes) > 0 || len(c.Links) > 0 {
		ds.Connect = c
	}

	// Orgs have no index of their own; insertion order is chart order.
	if err := m.store.FindAll(ctx, CollectionOrgs, bson.D{{Key: "_id", Value: 1}}, &ds.Orgs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecodeFailed, err, "read %s", CollectionOrgs)
	}
	return ds, nil
}

// Save replaces the stored dataset with ds.
func (m *Mongo) Save(ctx context.Context, ds *survey.Dataset) error {
	var nodes, links []any
	if ds.Connect != nil {
		nodes = toDocs(ds.Connect.Nodes)
		links = toDocs(ds.Connect.Links)
	}
	writes := []struct {
		coll string
		docs []any
	}{
		{CollectionRoles, toDocs(ds.Roles)},
		{CollectionNodes, nodes},
		{CollectionLinks, links},
		{CollectionOrgs, toDocs(ds.Orgs)},
	}
	for _, w := range writes {
		if err := m.store.ReplaceAll(ctx, w.coll, w.docs); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write %s", w.coll)
		}
	}
	return nil
}

// Close disconnects the client opened by DialMongo.
func (m *Mongo) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	return m.client.Disconnect(ctx)
}

func toDocs[T any](items []T) []any {
	out := make([]any, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

// redactURI drops credentials and query options so the name can be logged
// and used in cache keys.
func redactURI(uri, db string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "mongodb/" + db
	}
	return u.Scheme + "://" + u.Host + "/" + strings.TrimPrefix(db, "/")
}

type mongoStore struct {
	db *mongo.Database
}

func (s *mongoStore) FindAll(ctx context.Context, collection string, sort bson.D, out any) error {
	cur, err := s.db.Collection(collection).Find(ctx, bson.D{}, options.Find().SetSort(sort))
	if err != nil {
		return err
	}
	return cur.All(ctx, out)
}

func (s *mongoStore) ReplaceAll(ctx context.Context, collection string, docs []any) error {
	coll := s.db.Collection(collection)
	if _, err := coll.DeleteMany(ctx, bson.D{}); err != nil {
		return err
	}
	if len(docs) == 0 {
		return nil
	}
	_, err := coll.InsertMany(ctx, docs)
	return err
}
