// path: controllers/helpers_test.go
package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"streetsafety/controllers"
	"streetsafety/database"
	"streetsafety/engine"
	"streetsafety/models"
	"streetsafety/routes"
)

// fakeCrimeStore implements engine.CrimeStore in memory with the same
// conditional-update contract the Mongo store provides.
type fakeCrimeStore struct {
	mu     sync.Mutex
	crimes map[string]*models.Crime
	order  []string
}

func newFakeCrimeStore() *fakeCrimeStore {
	return &fakeCrimeStore{crimes: make(map[string]*models.Crime)}
}

func (s *fakeCrimeStore) Insert(_ context.Context, c *models.Crime) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = primitive.NewObjectID()
	cp := *c
	s.crimes[c.ID.Hex()] = &cp
	s.order = append(s.order, c.ID.Hex())
	return nil
}

func (s *fakeCrimeStore) FindByID(_ context.Context, id string) (*models.Crime, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.crimes[id]
	if !ok {
		return nil, engine.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *fakeCrimeStore) FindAll(_ context.Context) ([]models.Crime, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Crime, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.crimes[id])
	}
	return out, nil
}

func (s *fakeCrimeStore) CastVote(_ context.Context, id, voter string, dir engine.Direction) (*models.Crime, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.crimes[id]
	if !ok || inSet(c.UpvotedBy, voter) || inSet(c.DownvotedBy, voter) {
		return nil, nil
	}
	if dir == engine.Up {
		c.Upvotes++
		c.UpvotedBy = append(c.UpvotedBy, voter)
	} else {
		c.Downvotes++
		c.DownvotedBy = append(c.DownvotedBy, voter)
	}
	cp := *c
	return &cp, nil
}

func (s *fakeCrimeStore) SwitchVote(_ context.Context, id, voter string, dir engine.Direction) (*models.Crime, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.crimes[id]
	if !ok {
		return nil, nil
	}
	from, to := &c.DownvotedBy, &c.UpvotedBy
	fromN, toN := &c.Downvotes, &c.Upvotes
	if dir == engine.Down {
		from, to = &c.UpvotedBy, &c.DownvotedBy
		fromN, toN = &c.Upvotes, &c.Downvotes
	}
	if !inSet(*from, voter) || inSet(*to, voter) {
		return nil, nil
	}
	*fromN--
	*from = dropFromSet(*from, voter)
	*toN++
	*to = append(*to, voter)
	cp := *c
	return &cp, nil
}

func inSet(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func dropFromSet(set []string, v string) []string {
	out := make([]string, 0, len(set))
	for _, s := range set {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}

// fakeUserStore implements controllers.UserStore in memory.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]models.User)}
}

func (s *fakeUserStore) Insert(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.Email]; ok {
		return database.ErrEmailTaken
	}
	u.ID = primitive.NewObjectID()
	s.users[u.Email] = *u
	return nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return nil, database.ErrUserNotFound
	}
	return &u, nil
}

// geocodeFunc adapts a function to geocode.Geocoder.
type geocodeFunc func(ctx context.Context, query string) (float64, float64, error)

func (f geocodeFunc) Resolve(ctx context.Context, query string) (float64, float64, error) {
	return f(ctx, query)
}

type testApp struct {
	app    *fiber.App
	store  *fakeCrimeStore
	users  *fakeUserStore
	engine *engine.Engine
}

func newTestApp(geocoder geocodeFunc) *testApp {
	store := newFakeCrimeStore()
	users := newFakeUserStore()
	eng := engine.New(store, nil)

	app := fiber.New()
	routes.Register(app,
		controllers.NewAuthController(users),
		controllers.NewCrimeController(eng, geocoder),
		controllers.NewProximityController(eng),
	)
	return &testApp{app: app, store: store, users: users, engine: eng}
}

func (ta *testApp) request(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}
