package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/republicadrc/memberkit/pkg/otp"
)

const otpCollection = "otp_challenges"

// challengeDoc is keyed by email, so issuing a new code atomically replaces
// whatever was pending for that address.
type challengeDoc struct {
	Email     string    `bson:"_id"`
	Code      string    `bson:"code"`
	Purpose   string    `bson:"purpose"`
	Verified  bool      `bson:"verified"`
	Attempts  int       `bson:"attempts"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d *challengeDoc) toChallenge() *otp.Challenge {
	return &otp.Challenge{
		Email:     d.Email,
		Code:      d.Code,
		Purpose:   otp.Purpose(d.Purpose),
		Verified:  d.Verified,
		Attempts:  d.Attempts,
		ExpiresAt: d.ExpiresAt,
		CreatedAt: d.CreatedAt,
	}
}

// OTPStore is the MongoDB implementation of otp.Store. A TTL index on
// expires_at reclaims abandoned challenges; expiry checks still happen in
// the ledger because TTL sweeps are not immediate.
type OTPStore struct {
	col *mongo.Collection
}

// NewOTPStore creates a challenge store over the given database.
func NewOTPStore(db *mongo.Database) *OTPStore {
	return &OTPStore{col: db.Collection(otpCollection)}
}

func (s *OTPStore) Upsert(ctx context.Context, challenge *otp.Challenge) error {
	doc := challengeDoc{
		Email:     challenge.Email,
		Code:      challenge.Code,
		Purpose:   string(challenge.Purpose),
		Verified:  challenge.Verified,
		Attempts:  challenge.Attempts,
		ExpiresAt: challenge.ExpiresAt,
		CreatedAt: challenge.CreatedAt,
	}

	_, err := s.col.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: challenge.Email}},
		doc,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert challenge: %w", err)
	}
	return nil
}

func (s *OTPStore) Get(ctx context.Context, email string) (*otp.Challenge, error) {
	var doc challengeDoc
	if err := s.col.FindOne(ctx, bson.D{{Key: "_id", Value: email}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, otp.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load challenge: %w", err)
	}
	return doc.toChallenge(), nil
}

func (s *OTPStore) MarkVerified(ctx context.Context, email string) error {
	res, err := s.col.UpdateByID(ctx, email,
		bson.D{{Key: "$set", Value: bson.D{{Key: "verified", Value: true}}}})
	if err != nil {
		return fmt.Errorf("failed to mark challenge verified: %w", err)
	}
	if res.MatchedCount == 0 {
		return otp.ErrNotFound
	}
	return nil
}

func (s *OTPStore) IncrementAttempts(ctx context.Context, email string) (int, error) {
	var doc challengeDoc
	err := s.col.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: email}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "attempts", Value: 1}}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).
		Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, otp.ErrNotFound
		}
		return 0, fmt.Errorf("failed to count attempt: %w", err)
	}
	return doc.Attempts, nil
}

func (s *OTPStore) Delete(ctx context.Context, email string) error {
	if _, err := s.col.DeleteOne(ctx, bson.D{{Key: "_id", Value: email}}); err != nil {
		return fmt.Errorf("failed to delete challenge: %w", err)
	}
	return nil
}

var _ otp.Store = (*OTPStore)(nil)
