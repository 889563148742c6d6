package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/republicadrc/memberkit/pkg/auth"
)

const statesCollection = "oauth_states"

type stateDoc struct {
	State     string    `bson:"_id"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}

// StateStore is the MongoDB implementation of auth.StateStore. Consuming a
// state is a FindOneAndDelete, so replayed callbacks always lose.
type StateStore struct {
	col *mongo.Collection
}

// NewStateStore creates an OAuth state store over the given database.
func NewStateStore(db *mongo.Database) *StateStore {
	return &StateStore{col: db.Collection(statesCollection)}
}

func (s *StateStore) StoreState(ctx context.Context, state string, expiresAt time.Time) error {
	doc := stateDoc{
		State:     state,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}

	_, err := s.col.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: state}},
		doc,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to store oauth state: %w", err)
	}
	return nil
}

func (s *StateStore) ConsumeState(ctx context.Context, state string) error {
	var doc stateDoc
	err := s.col.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: state}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return auth.ErrStateNotFound
		}
		return fmt.Errorf("failed to consume oauth state: %w", err)
	}
	if time.Now().After(doc.ExpiresAt) {
		return auth.ErrStateNotFound
	}
	return nil
}

var _ auth.StateStore = (*StateStore)(nil)
