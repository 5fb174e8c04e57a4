// path: engine/memstore_test.go
package engine

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"streetsafety/models"
)

// memStore is an in-memory CrimeStore for engine tests. The vote methods
// check their precondition and mutate under one lock, mirroring the
// single-document atomicity the Mongo implementation gets from filtered
// FindOneAndUpdate calls.
type memStore struct {
	mu      sync.Mutex
	crimes  map[string]*models.Crime
	order   []string
	inserts int
}

func newMemStore() *memStore {
	return &memStore{crimes: make(map[string]*models.Crime)}
}

func (s *memStore) Insert(_ context.Context, c *models.Crime) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = primitive.NewObjectID()
	cp := *c
	s.crimes[c.ID.Hex()] = &cp
	s.order = append(s.order, c.ID.Hex())
	s.inserts++
	return nil
}

func (s *memStore) FindByID(_ context.Context, id string) (*models.Crime, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.crimes[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := cloneCrime(c)
	return &cp, nil
}

func (s *memStore) FindAll(_ context.Context) ([]models.Crime, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Crime, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, cloneCrime(s.crimes[id]))
	}
	return out, nil
}

func (s *memStore) CastVote(_ context.Context, id, voter string, dir Direction) (*models.Crime, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.crimes[id]
	if !ok || contains(c.UpvotedBy, voter) || contains(c.DownvotedBy, voter) {
		return nil, nil
	}
	if dir == Up {
		c.Upvotes++
		c.UpvotedBy = append(c.UpvotedBy, voter)
	} else {
		c.Downvotes++
		c.DownvotedBy = append(c.DownvotedBy, voter)
	}
	cp := cloneCrime(c)
	return &cp, nil
}

func (s *memStore) SwitchVote(_ context.Context, id, voter string, dir Direction) (*models.Crime, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.crimes[id]
	if !ok {
		return nil, nil
	}
	if dir == Up {
		if !contains(c.DownvotedBy, voter) || contains(c.UpvotedBy, voter) {
			return nil, nil
		}
		c.Downvotes--
		c.DownvotedBy = remove(c.DownvotedBy, voter)
		c.Upvotes++
		c.UpvotedBy = append(c.UpvotedBy, voter)
	} else {
		if !contains(c.UpvotedBy, voter) || contains(c.DownvotedBy, voter) {
			return nil, nil
		}
		c.Upvotes--
		c.UpvotedBy = remove(c.UpvotedBy, voter)
		c.Downvotes++
		c.DownvotedBy = append(c.DownvotedBy, voter)
	}
	cp := cloneCrime(c)
	return &cp, nil
}

func cloneCrime(c *models.Crime) models.Crime {
	cp := *c
	cp.UpvotedBy = append([]string(nil), c.UpvotedBy...)
	cp.DownvotedBy = append([]string(nil), c.DownvotedBy...)
	return cp
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func remove(set []string, v string) []string {
	out := set[:0]
	for _, s := range set {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}
