package firestoredb

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/SAP-F-2025/nova-scholar-service/internal/store"
)

// FirestoreStore implements store.Store on Cloud Firestore
type FirestoreStore struct {
	client *firestore.Client
}

// New wraps an initialised Firestore client
func New(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

type firestoreDocument struct {
	snap *firestore.DocumentSnapshot
}

func (d firestoreDocument) ID() string { return d.snap.Ref.ID }

func (d firestoreDocument) DataTo(dest interface{}) error { return d.snap.DataTo(dest) }

func (s *FirestoreStore) Get(ctx context.Context, path string, dest interface{}) error {
	snap, err := s.client.Doc(path).Get(ctx)
	if err != nil {
		return translateError(err)
	}
	if dest == nil {
		return nil
	}
	if err := snap.DataTo(dest); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

func (s *FirestoreStore) Set(ctx context.Context, path string, data map[string]interface{}) error {
	ref := s.client.Doc(path)
	if ref == nil {
		return fmt.Errorf("%w: %q", store.ErrInvalidPath, path)
	}
	_, err := ref.Set(ctx, toFirestoreValues(data))
	return translateError(err)
}

func (s *FirestoreStore) Merge(ctx context.Context, path string, data map[string]interface{}) error {
	ref := s.client.Doc(path)
	if ref == nil {
		return fmt.Errorf("%w: %q", store.ErrInvalidPath, path)
	}
	_, err := ref.Set(ctx, toFirestoreValues(data), firestore.MergeAll)
	return translateError(err)
}

func (s *FirestoreStore) Update(ctx context.Context, path string, updates []store.Update) error {
	ref := s.client.Doc(path)
	if ref == nil {
		return fmt.Errorf("%w: %q", store.ErrInvalidPath, path)
	}
	fsUpdates := make([]firestore.Update, 0, len(updates))
	for _, u := range updates {
		fsUpdates = append(fsUpdates, firestore.Update{Path: u.Field, Value: toFirestoreValue(u.Value)})
	}
	_, err := ref.Update(ctx, fsUpdates)
	return translateError(err)
}

func (s *FirestoreStore) Delete(ctx context.Context, path string) error {
	ref := s.client.Doc(path)
	if ref == nil {
		return fmt.Errorf("%w: %q", store.ErrInvalidPath, path)
	}
	_, err := ref.Delete(ctx)
	return translateError(err)
}

func (s *FirestoreStore) Add(ctx context.Context, collection string, data map[string]interface{}) (string, error) {
	col := s.client.Collection(collection)
	if col == nil {
		return "", fmt.Errorf("%w: %q", store.ErrInvalidPath, collection)
	}
	ref, _, err := col.Add(ctx, toFirestoreValues(data))
	if err != nil {
		return "", translateError(err)
	}
	return ref.ID, nil
}

func (s *FirestoreStore) Stream(ctx context.Context, collection string, filters []store.Filter, fn func(store.Document) error) error {
	col := s.client.Collection(collection)
	if col == nil {
		return fmt.Errorf("%w: %q", store.ErrInvalidPath, collection)
	}

	query := col.Query
	for _, f := range filters {
		query = query.Where(f.Field, "==", f.Value)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return translateError(err)
		}
		if err := fn(firestoreDocument{snap: snap}); err != nil {
			return err
		}
	}
}

func (s *FirestoreStore) Ping(ctx context.Context) error {
	// Reading a missing document is the cheapest authenticated round trip
	_, err := s.client.Collection("_health").Doc("ping").Get(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return err
	}
	return nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if status.Code(err) == codes.NotFound {
		return store.ErrNotFound
	}
	return err
}

func toFirestoreValues(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		out[k] = toFirestoreValue(v)
	}
	return out
}

func toFirestoreValue(v interface{}) interface{} {
	if store.IsServerTimestamp(v) {
		return firestore.ServerTimestamp
	}
	if n, ok := store.IncrementBy(v); ok {
		return firestore.Increment(n)
	}
	if m, ok := v.(map[string]interface{}); ok {
		return toFirestoreValues(m)
	}
	return v
}
