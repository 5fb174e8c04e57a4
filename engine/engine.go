// path: engine/engine.go
package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"streetsafety/models"
)

// Direction of a vote.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// CrimeStore is the persistence contract the engine needs. The two vote
// operations are conditional single-document updates so that concurrent
// voters can never lose an increment (no read-modify-write anywhere):
//
//   - CastVote applies the none → direction transition. The store must only
//     match when the voter is absent from BOTH vote sets, and must increment
//     the counter and add the voter in the same atomic update.
//   - SwitchVote applies the opposite → direction transition. The store must
//     only match when the voter is present in the opposite set, and must
//     move the voter and adjust both counters in the same atomic update.
//
// Both return (nil, nil) when the precondition did not match any document.
type CrimeStore interface {
	Insert(ctx context.Context, c *models.Crime) error
	FindByID(ctx context.Context, id string) (*models.Crime, error)
	FindAll(ctx context.Context) ([]models.Crime, error)
	CastVote(ctx context.Context, id, voter string, dir Direction) (*models.Crime, error)
	SwitchVote(ctx context.Context, id, voter string, dir Direction) (*models.Crime, error)
}

// Engine owns severity classification, the vote state machine and the feed
// sort order. Persistence is delegated to the store.
type Engine struct {
	store      CrimeStore
	classifier *Classifier
}

func New(store CrimeStore, classifier *Classifier) *Engine {
	if classifier == nil {
		classifier = DefaultClassifier()
	}
	return &Engine{store: store, classifier: classifier}
}

// Classify exposes the severity table for callers that only need the tag.
func (e *Engine) Classify(crimeType string) models.Severity {
	return e.classifier.Classify(crimeType)
}

// SubmitInput carries an incoming report. Coordinates must already be
// resolved (by the client or the geocoding collaborator) before Submit.
type SubmitInput struct {
	Type      string
	Location  string
	Address   string
	Details   string
	Latitude  float64
	Longitude float64
}

// Submit validates, classifies and persists a new crime record. Severity is
// computed once here and never recomputed. Vote state starts empty.
func (e *Engine) Submit(ctx context.Context, in SubmitInput) (*models.Crime, error) {
	if strings.TrimSpace(in.Type) == "" {
		return nil, &ValidationError{Field: "type"}
	}
	if strings.TrimSpace(in.Location) == "" {
		return nil, &ValidationError{Field: "location"}
	}
	if strings.TrimSpace(in.Address) == "" {
		return nil, &ValidationError{Field: "address"}
	}

	crime := &models.Crime{
		Type:        strings.TrimSpace(in.Type),
		Location:    strings.TrimSpace(in.Location),
		Address:     strings.TrimSpace(in.Address),
		Details:     strings.TrimSpace(in.Details),
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Severity:    e.classifier.Classify(in.Type),
		Upvotes:     0,
		Downvotes:   0,
		UpvotedBy:   []string{},
		DownvotedBy: []string{},
		CreatedAt:   time.Now().UTC(),
	}

	if err := e.store.Insert(ctx, crime); err != nil {
		return nil, fmt.Errorf("persist crime: %w", err)
	}
	return crime, nil
}

// ListSorted returns every record ordered by upvotes descending. The sort
// is stable over the store's natural retrieval order, so ties keep a
// deterministic order per run.
func (e *Engine) ListSorted(ctx context.Context) ([]models.Crime, error) {
	crimes, err := e.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list crimes: %w", err)
	}
	sort.SliceStable(crimes, func(i, j int) bool {
		return crimes[i].Upvotes > crimes[j].Upvotes
	})
	return crimes, nil
}

// Vote runs the per-voter state machine for one record:
//
//	none      --dir--> voted(dir)         fresh cast
//	voted(!dir) --dir--> voted(dir)       switch, one atomic update
//	voted(dir)  --dir--> voted(dir)       no-op, ErrAlreadyVoted
//
// Each transition is a single conditional store update; at most one of them
// matches. The trailing read only distinguishes the no-op case from an
// unknown id, it never feeds a write.
func (e *Engine) Vote(ctx context.Context, id, voter string, dir Direction) (*models.Crime, error) {
	if c, err := e.store.SwitchVote(ctx, id, voter, dir); err != nil {
		return nil, fmt.Errorf("switch vote: %w", err)
	} else if c != nil {
		return c, nil
	}

	if c, err := e.store.CastVote(ctx, id, voter, dir); err != nil {
		return nil, fmt.Errorf("cast vote: %w", err)
	} else if c != nil {
		return c, nil
	}

	c, err := e.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return c, ErrAlreadyVoted
}
