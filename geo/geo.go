// path: geo/geo.go
package geo

import (
	"math"

	"streetsafety/models"
)

// Two consumers, two units: the nearest-record ranking works in kilometers
// (R = 6371 km) and radius alerting works in meters (R = 6371000 m). They
// are deliberately kept as separate functions rather than one scaled value.
const (
	earthRadiusKm = 6371.0
	earthRadiusM  = 6371000.0

	// DefaultAlertRadiusM is the threshold below which a radius alert fires.
	DefaultAlertRadiusM = 500.0
)

// Point is a position in decimal degrees.
type Point struct {
	Lat float64
	Lng float64
}

func haversine(a, b Point, radius float64) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*math.Pi/180)*math.Cos(b.Lat*math.Pi/180)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return radius * c
}

// DistanceKm returns the great-circle distance between a and b in kilometers.
func DistanceKm(a, b Point) float64 { return haversine(a, b, earthRadiusKm) }

// DistanceM returns the great-circle distance between a and b in meters.
func DistanceM(a, b Point) float64 { return haversine(a, b, earthRadiusM) }

// NearestResult is a renderable summary of the single most relevant record.
type NearestResult struct {
	ID         string  `json:"id"`
	Type       string  `json:"type"`
	Location   string  `json:"location"`
	Address    string  `json:"address"`
	Details    string  `json:"details,omitempty"`
	Upvotes    int     `json:"upvotes"`
	Downvotes  int     `json:"downvotes"`
	DistanceKm float64 `json:"distance_km"`
}

// Nearest selects the minimum-distance record from the user's position.
// Distance ties prefer the record with more upvotes. The second return is
// false when there are no records. Input records are never mutated.
func Nearest(user Point, crimes []models.Crime) (NearestResult, bool) {
	if len(crimes) == 0 {
		return NearestResult{}, false
	}

	best := 0
	bestDist := DistanceKm(user, Point{Lat: crimes[0].Latitude, Lng: crimes[0].Longitude})
	for i := 1; i < len(crimes); i++ {
		d := DistanceKm(user, Point{Lat: crimes[i].Latitude, Lng: crimes[i].Longitude})
		switch {
		case d < bestDist:
			best, bestDist = i, d
		case d == bestDist && crimes[i].Upvotes > crimes[best].Upvotes:
			best = i
		}
	}

	c := crimes[best]
	return NearestResult{
		ID:         c.ID.Hex(),
		Type:       c.Type,
		Location:   c.Location,
		Address:    c.Address,
		Details:    c.Details,
		Upvotes:    c.Upvotes,
		Downvotes:  c.Downvotes,
		DistanceKm: math.Round(bestDist*100) / 100,
	}, true
}

// Alert is one proximity warning emitted by RadiusAlerts.
type Alert struct {
	ID        string          `json:"id"`
	Severity  models.Severity `json:"severity"`
	Type      string          `json:"type"`
	Address   string          `json:"address"`
	DistanceM float64         `json:"distance_m"`
}

// RadiusAlerts emits one alert for every record within thresholdM meters of
// the user. A non-positive threshold falls back to DefaultAlertRadiusM.
// Multiple simultaneous alerts are expected; there is no single-best pick.
func RadiusAlerts(user Point, crimes []models.Crime, thresholdM float64) []Alert {
	if thresholdM <= 0 {
		thresholdM = DefaultAlertRadiusM
	}

	alerts := make([]Alert, 0)
	for _, c := range crimes {
		d := DistanceM(user, Point{Lat: c.Latitude, Lng: c.Longitude})
		if d <= thresholdM {
			alerts = append(alerts, Alert{
				ID:        c.ID.Hex(),
				Severity:  c.Severity,
				Type:      c.Type,
				Address:   c.Address,
				DistanceM: math.Round(d),
			})
		}
	}
	return alerts
}
