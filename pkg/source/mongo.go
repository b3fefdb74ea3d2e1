package source

import (
	"context"
	stderrors "errors"
	"fmt"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/highweigh/pkg/errors"
	"github.com/matzehuels/highweigh/pkg/roadmap"
)

// MongoOptions configures a MongoStore.
type MongoOptions struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

// mongoDocument is one stored roadmap: the wire fields plus its name.
type mongoDocument struct {
	Name                 string    `bson:"name"`
	UpdatedAt            time.Time `bson:"updatedAt"`
	roadmap.WireDocument `bson:",inline"`
}

// MongoStore serves roadmaps from a MongoDB collection, one document per
// roadmap keyed by a unique "name" field.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects, pings the server and ensures the name index.
func NewMongoStore(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	if opts.Database == "" {
		opts.Database = "highweigh"
	}
	if opts.Collection == "" {
		opts.Collection = "roadmaps"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongodb")
	}

	coll := client.Database(opts.Database).Collection(opts.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create name index: %w", err)
	}
	return &MongoStore{client: client, coll: coll}, nil
}

// List implements Store.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	values, err := s.coll.Distinct(ctx, "name", bson.D{})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "list roadmaps")
	}
	names := make([]string, 0, len(values))
	for _, v := range values {
		if name, ok := v.(string); ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

// Fetch implements Source. The stored document is validated and returned
// re-encoded as JSON, so a corrupt record fails here with its name.
func (s *MongoStore) Fetch(ctx context.Context, name string) (*Raw, error) {
	var doc mongoDocument
	err := s.coll.FindOne(ctx, bson.D{{Key: "name", Value: name}}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.Wrap(errors.ErrCodeNotFound, ErrNotFound, "roadmap %q", name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "find roadmap %q", name)
	}

	valid, err := roadmap.FromWire(doc.WireDocument)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "stored roadmap %q", name)
	}
	data, err := roadmap.Encode(valid)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode roadmap %q", name)
	}
	return &Raw{Ref: name, Format: roadmap.FormatJSON, Data: data}, nil
}

// Put upserts doc under name.
func (s *MongoStore) Put(ctx context.Context, name string, doc *roadmap.Document) error {
	if err := validName(name); err != nil {
		return err
	}
	record := mongoDocument{Name: name, UpdatedAt: time.Now().UTC(), WireDocument: roadmap.ToWire(doc)}
	_, err := s.coll.ReplaceOne(ctx, bson.D{{Key: "name", Value: name}}, record, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "store roadmap %q", name)
	}
	return nil
}

// Delete removes the roadmap called name.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "delete roadmap %q", name)
	}
	if res.DeletedCount == 0 {
		return errors.Wrap(errors.ErrCodeNotFound, ErrNotFound, "roadmap %q", name)
	}
	return nil
}

// Close implements Store.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
