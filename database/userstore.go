// path: database/userstore.go
package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"streetsafety/models"
)

// ErrEmailTaken is returned when registration hits the unique email index.
var ErrEmailTaken = errors.New("email already registered")

// ErrUserNotFound is returned when no account matches the given email.
var ErrUserNotFound = errors.New("user not found")

type UserStore struct{}

func NewUserStore() *UserStore { return &UserStore{} }

func (s *UserStore) col() *mongo.Collection { return Col("users") }

func (s *UserStore) Insert(ctx context.Context, u *models.User) error {
	res, err := s.col().InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.col().FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}
