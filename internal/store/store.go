// Package store persists handover entries in a MongoDB collection.
//
// Every operation dials its own connection authenticated as the signed-in
// user and closes it before returning; no connection is pooled or reused
// across operations. Access control is therefore entirely the store's own:
// if the credentials stop working, the next operation fails with an
// unauthorized or unavailable error and the caller signs the session out.
package store

import (
	"context"
	"time"

	"cylinderlog/internal/config"
	"cylinderlog/internal/handover"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Credentials is the username/password pair a single operation
// authenticates with.
type Credentials struct {
	Username string
	Password string
}

// CredentialProvider supplies the identity for one store operation.
// The second return is false when no identity is available, e.g. after
// sign-out or session expiry.
type CredentialProvider interface {
	Credentials() (Credentials, bool)
}

// StaticCredentials is a CredentialProvider for a fixed pair, used during
// sign-in before any session identity exists.
type StaticCredentials Credentials

// Credentials implements CredentialProvider.
func (c StaticCredentials) Credentials() (Credentials, bool) {
	if c.Username == "" || c.Password == "" {
		return Credentials{}, false
	}
	return Credentials(c), true
}

// Store performs document operations against the handover collection on
// behalf of one identity. It is cheap to construct; build one per
// operation or per request.
type Store struct {
	cfg   config.StoreConfig
	creds CredentialProvider
}

// New returns a Store bound to the given credential provider.
func New(cfg config.StoreConfig, creds CredentialProvider) *Store {
	return &Store{cfg: cfg, creds: creds}
}

// dial opens a fresh connection authenticated as the bound identity and
// verifies liveness with a ping. The caller must disconnect the returned
// client.
func (s *Store) dial(ctx context.Context) (*mongo.Client, error) {
	creds, ok := s.creds.Credentials()
	if !ok {
		return nil, Classify("dial", ErrNoIdentity)
	}

	opts := options.Client().
		ApplyURI(s.cfg.URI).
		SetAuth(options.Credential{
			Username: creds.Username,
			Password: creds.Password,
		}).
		SetServerSelectionTimeout(s.cfg.ConnectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, Classify("dial", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, s.cfg.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnect(client)
		return nil, Classify("ping", err)
	}

	return client, nil
}

// disconnect closes a dialed client with a short independent deadline so
// cleanup cannot hang on an already-dead connection.
func disconnect(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = client.Disconnect(ctx)
}

// Ping verifies that the bound identity can connect to the store. The
// connection used for the check is closed before returning.
func (s *Store) Ping(ctx context.Context) error {
	client, err := s.dial(ctx)
	if err != nil {
		return err
	}
	disconnect(client)
	return nil
}

func (s *Store) collection(client *mongo.Client) *mongo.Collection {
	return client.Database(s.cfg.Database).Collection(s.cfg.Collection)
}

// InsertEntry writes one entry as a single document and returns the
// store-generated id. The document is written atomically or not at all.
func (s *Store) InsertEntry(ctx context.Context, e *handover.Entry) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.OperationTimeout)
	defer cancel()

	client, err := s.dial(ctx)
	if err != nil {
		return "", err
	}
	defer disconnect(client)

	res, err := s.collection(client).InsertOne(ctx, toDocument(e))
	if err != nil {
		return "", Classify("insert", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	return oid.Hex(), nil
}

// ListEntries fetches every document sorted by submission timestamp
// descending (newest first). Missing fields default per entryDocument.
func (s *Store) ListEntries(ctx context.Context) ([]handover.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.OperationTimeout)
	defer cancel()

	client, err := s.dial(ctx)
	if err != nil {
		return nil, err
	}
	defer disconnect(client)

	findOpts := options.Find().SetSort(bson.D{{Key: "submission_timestamp", Value: -1}})
	cur, err := s.collection(client).Find(ctx, bson.D{}, findOpts)
	if err != nil {
		return nil, Classify("list", err)
	}
	defer cur.Close(ctx)

	var docs []entryDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, Classify("list", err)
	}

	entries := make([]handover.Entry, len(docs))
	for i, d := range docs {
		entries[i] = d.toEntry()
	}
	return entries, nil
}

// DeleteEntry deletes exactly the document with the given id. It returns
// a NotFound error when no document was removed, so a delete either
// happened for that one entry or did not happen at all.
func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Classify("delete", ErrNotFound)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.OperationTimeout)
	defer cancel()

	client, err := s.dial(ctx)
	if err != nil {
		return err
	}
	defer disconnect(client)

	res, err := s.collection(client).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return Classify("delete", err)
	}
	if res.DeletedCount == 0 {
		return Classify("delete", ErrNotFound)
	}
	return nil
}
