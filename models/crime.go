// path: models/crime.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Severity is the coarse risk tag assigned to a crime record at creation.
type Severity string

const (
	SeverityRed    Severity = "red"
	SeverityYellow Severity = "yellow"
)

type Crime struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type      string             `bson:"type" json:"type"`
	Location  string             `bson:"location" json:"location"`
	Address   string             `bson:"address" json:"address"`
	Latitude  float64            `bson:"latitude" json:"latitude"`
	Longitude float64            `bson:"longitude" json:"longitude"`
	Severity  Severity           `bson:"severity" json:"severity"`
	Details   string             `bson:"details,omitempty" json:"details,omitempty"`

	// Vote state. A voter email lives in at most one of the two sets,
	// and the counters always equal the set sizes.
	Upvotes     int      `bson:"upvotes" json:"upvotes"`
	Downvotes   int      `bson:"downvotes" json:"downvotes"`
	UpvotedBy   []string `bson:"upvoted_by" json:"upvotedBy"`
	DownvotedBy []string `bson:"downvoted_by" json:"downvotedBy"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
