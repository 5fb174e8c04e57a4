// path: database/crimestore.go
package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"streetsafety/engine"
	"streetsafety/models"
)

// CrimeStore is the Mongo-backed implementation of engine.CrimeStore.
// Vote transitions are expressed as filtered FindOneAndUpdate calls so the
// precondition check and the counter/set mutation happen in one document
// update; two racing voters each match their own precondition and neither
// increment is lost.
type CrimeStore struct{}

func NewCrimeStore() *CrimeStore { return &CrimeStore{} }

func (s *CrimeStore) col() *mongo.Collection { return Col("crimes") }

func (s *CrimeStore) Insert(ctx context.Context, c *models.Crime) error {
	res, err := s.col().InsertOne(ctx, c)
	if err != nil {
		return fmt.Errorf("insert crime: %w", err)
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *CrimeStore) FindByID(ctx context.Context, id string) (*models.Crime, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, engine.ErrNotFound
	}

	var c models.Crime
	err = s.col().FindOne(ctx, bson.M{"_id": oid}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, engine.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find crime %s: %w", id, err)
	}
	return &c, nil
}

func (s *CrimeStore) FindAll(ctx context.Context) ([]models.Crime, error) {
	cur, err := s.col().Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find crimes: %w", err)
	}
	defer cur.Close(ctx)

	crimes := make([]models.Crime, 0)
	if err := cur.All(ctx, &crimes); err != nil {
		return nil, fmt.Errorf("decode crimes: %w", err)
	}
	return crimes, nil
}

// CastVote applies the fresh-vote transition. The filter requires the voter
// to be absent from both sets, which keeps the one-vote-per-voter invariant
// even if a concurrent request lands between the engine's two attempts.
func (s *CrimeStore) CastVote(ctx context.Context, id, voter string, dir engine.Direction) (*models.Crime, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	field, _, counter, _ := voteFields(dir)
	filter := bson.M{
		"_id":          oid,
		"upvoted_by":   bson.M{"$ne": voter},
		"downvoted_by": bson.M{"$ne": voter},
	}
	update := bson.M{
		"$inc":      bson.M{counter: 1},
		"$addToSet": bson.M{field: voter},
	}
	return s.findOneAndUpdate(ctx, filter, update)
}

// SwitchVote moves a voter from the opposite set in a single update:
// decrement-and-pull on the old side, increment-and-add on the new.
func (s *CrimeStore) SwitchVote(ctx context.Context, id, voter string, dir engine.Direction) (*models.Crime, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	field, opposite, counter, oppositeCounter := voteFields(dir)
	filter := bson.M{
		"_id":    oid,
		opposite: voter,
		field:    bson.M{"$ne": voter},
	}
	update := bson.M{
		"$inc":      bson.M{counter: 1, oppositeCounter: -1},
		"$addToSet": bson.M{field: voter},
		"$pull":     bson.M{opposite: voter},
	}
	return s.findOneAndUpdate(ctx, filter, update)
}

func (s *CrimeStore) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*models.Crime, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var c models.Crime
	err := s.col().FindOneAndUpdate(ctx, filter, update, opts).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Precondition did not hold; the caller decides what that means.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update vote state: %w", err)
	}
	return &c, nil
}

func voteFields(dir engine.Direction) (field, opposite, counter, oppositeCounter string) {
	if dir == engine.Up {
		return "upvoted_by", "downvoted_by", "upvotes", "downvotes"
	}
	return "downvoted_by", "upvoted_by", "downvotes", "upvotes"
}
