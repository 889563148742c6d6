package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/republicadrc/memberkit/pkg/auth"
)

const usersCollection = "users"

// userDoc is the persisted shape of an account. The password hash lives in
// the document but is only ever read through GetPasswordHash.
type userDoc struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	Name         string    `bson:"name"`
	AvatarURL    string    `bson:"avatar_url,omitempty"`
	ExternalID   string    `bson:"external_id,omitempty"`
	AuthMethod   string    `bson:"auth_method"`
	Role         string    `bson:"role"`
	PasswordHash []byte    `bson:"password_hash,omitempty"`
	CreatedAt    time.Time `bson:"created_at"`
}

func (d *userDoc) toUser() (*auth.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("malformed user id %q: %w", d.ID, err)
	}
	return &auth.User{
		ID:         id,
		Email:      d.Email,
		Name:       d.Name,
		AvatarURL:  d.AvatarURL,
		ExternalID: d.ExternalID,
		AuthMethod: d.AuthMethod,
		Role:       d.Role,
		CreatedAt:  d.CreatedAt,
	}, nil
}

// UserStore is the MongoDB implementation of auth.UserStore. Email
// uniqueness is enforced by a unique index, so concurrent creates for the
// same address leave exactly one record.
type UserStore struct {
	col *mongo.Collection
}

// NewUserStore creates a user store over the given database.
func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{col: db.Collection(usersCollection)}
}

func (s *UserStore) GetUserByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	return s.findOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	return s.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (s *UserStore) GetUserByExternalID(ctx context.Context, externalID string) (*auth.User, error) {
	if externalID == "" {
		return nil, auth.ErrUserNotFound
	}
	return s.findOne(ctx, bson.D{{Key: "external_id", Value: externalID}})
}

func (s *UserStore) CreateUser(ctx context.Context, user *auth.User) error {
	doc := userDoc{
		ID:         user.ID.String(),
		Email:      user.Email,
		Name:       user.Name,
		AvatarURL:  user.AvatarURL,
		ExternalID: user.ExternalID,
		AuthMethod: user.AuthMethod,
		Role:       user.Role,
		CreatedAt:  user.CreatedAt,
	}

	if _, err := s.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return auth.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *UserStore) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.col.DeleteOne(ctx, bson.D{{Key: "_id", Value: id.String()}}); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// LinkExternalID attaches the provider identity in a single update. The
// avatar is only filled when the stored one is missing or empty, so a
// user-chosen picture survives linking.
func (s *UserStore) LinkExternalID(ctx context.Context, id uuid.UUID, externalID, avatarURL string) error {
	update := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "external_id", Value: externalID},
			{Key: "avatar_url", Value: bson.D{{Key: "$cond", Value: bson.A{
				bson.D{{Key: "$in", Value: bson.A{
					bson.D{{Key: "$ifNull", Value: bson.A{"$avatar_url", ""}}},
					bson.A{""},
				}}},
				avatarURL,
				"$avatar_url",
			}}}},
		}}},
	}

	res, err := s.col.UpdateByID(ctx, id.String(), update)
	if err != nil {
		return fmt.Errorf("failed to link external id: %w", err)
	}
	if res.MatchedCount == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

func (s *UserStore) UpdateUserRole(ctx context.Context, id uuid.UUID, role string) error {
	res, err := s.col.UpdateByID(ctx, id.String(),
		bson.D{{Key: "$set", Value: bson.D{{Key: "role", Value: role}}}})
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	if res.MatchedCount == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

func (s *UserStore) ListUsers(ctx context.Context) ([]auth.User, error) {
	cursor, err := s.col.Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var users []auth.User
	for cursor.Next(ctx) {
		var doc userDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode user: %w", err)
		}
		user, err := doc.toUser()
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

func (s *UserStore) GetPasswordHash(ctx context.Context, id uuid.UUID) ([]byte, error) {
	var doc struct {
		PasswordHash []byte `bson:"password_hash"`
	}
	err := s.col.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}},
		options.FindOne().SetProjection(bson.D{{Key: "password_hash", Value: 1}})).
		Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load password hash: %w", err)
	}
	return doc.PasswordHash, nil
}

func (s *UserStore) StorePasswordHash(ctx context.Context, id uuid.UUID, hash []byte) error {
	res, err := s.col.UpdateByID(ctx, id.String(),
		bson.D{{Key: "$set", Value: bson.D{{Key: "password_hash", Value: hash}}}})
	if err != nil {
		return fmt.Errorf("failed to store password hash: %w", err)
	}
	if res.MatchedCount == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

func (s *UserStore) findOne(ctx context.Context, filter bson.D) (*auth.User, error) {
	var doc userDoc
	if err := s.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return doc.toUser()
}

var _ auth.UserStore = (*UserStore)(nil)
