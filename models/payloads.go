// path: models/payloads.go
package models

// RegisterPayload is the JSON body for POST /api/register.
type RegisterPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginPayload is the JSON body for POST /api/login.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResp mirrors the shape the map frontend stores client-side: the
// email is carried along to later vote calls as the voter identifier.
type LoginResp struct {
	Message   string `json:"message"`
	UserEmail string `json:"userEmail"`
}

// CrimePayload is the JSON body for POST /api/crimes. Latitude/longitude
// may be zero, in which case the address is geocoded server-side.
type CrimePayload struct {
	Type      string  `json:"type"`
	Location  string  `json:"location"`
	Details   string  `json:"details"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

// VotePayload is the JSON body for POST /api/crimes/:id/upvote|downvote.
type VotePayload struct {
	UserEmail string `json:"userEmail"`
}

// VoteResp carries the record after a vote. Message is only set when the
// call was an already-voted no-op.
type VoteResp struct {
	Message string `json:"message,omitempty"`
	Crime   *Crime `json:"crime"`
}
