package source

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/matzehuels/highweigh/pkg/errors"
	"github.com/matzehuels/highweigh/pkg/roadmap"
)

// Set HIGHWEIGH_TEST_MONGO=mongodb://localhost:27017 to run against a live
// server. Each run uses a fresh database that is dropped afterwards.
func TestMongoStore(t *testing.T) {
	uri := os.Getenv("HIGHWEIGH_TEST_MONGO")
	if uri == "" {
		t.Skip("HIGHWEIGH_TEST_MONGO not set")
	}
	ctx := context.Background()
	db := "highweigh_test_" + uuid.NewString()[:8]

	s, err := NewMongoStore(ctx, MongoOptions{URI: uri, Database: db})
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	t.Cleanup(func() {
		_ = s.client.Database(db).Drop(ctx)
		_ = s.Close(ctx)
	})

	doc, err := roadmap.Decode([]byte(sampleYAML), roadmap.FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, "platform", doc); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(ctx, "platform", doc); err != nil {
		t.Fatalf("Put (replace): %v", err)
	}

	names, err := s.List(ctx)
	if err != nil || len(names) != 1 || names[0] != "platform" {
		t.Fatalf("List = %v, %v", names, err)
	}

	raw, err := s.Fetch(ctx, "platform")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	got, err := raw.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Title != doc.Title || len(got.Projects[0].Bars) != 1 {
		t.Errorf("round trip = %+v", got)
	}

	broken := mongoDocument{Name: "broken", WireDocument: roadmap.WireDocument{StartMonth: "2024-1", Months: 0}}
	if _, err := s.coll.InsertOne(ctx, broken); err != nil {
		t.Fatalf("InsertOne: %v", err)
	}
	if _, err := s.Fetch(ctx, "broken"); !errors.Is(err, errors.ErrCodeInvalidDocument) {
		t.Errorf("Fetch of a corrupt record: %v, want %s", err, errors.ErrCodeInvalidDocument)
	}

	if err := s.Delete(ctx, "platform"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Fetch(ctx, "platform"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Fetch after Delete: %v", err)
	}
}
