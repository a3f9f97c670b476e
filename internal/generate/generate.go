// Package generate produces synthetic user activity logs for seeding demo
// indices. A fixed seed yields a reproducible stream.
package generate

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/datapult/esdex/internal/domain/document"
)

// geoPoint is a named coordinate pair used for the location field.
type geoPoint struct {
	city string
	lat  float64
	lon  float64
}

var (
	users = []struct {
		id         string
		username   string
		department string
	}{
		{"user_001", "alice.martin", "engineering"},
		{"user_002", "bob.chen", "engineering"},
		{"user_003", "carol.diaz", "finance"},
		{"user_004", "dave.okafor", "operations"},
		{"user_005", "erin.kowalski", "support"},
	}

	actions = []string{
		"login", "logout", "file_upload", "file_download", "api_call", "database_query",
	}

	statuses = []string{"success", "failed", "timeout"}

	locations = []geoPoint{
		{"Berlin", 52.5200, 13.4050},
		{"New York", 40.7128, -74.0060},
		{"Tokyo", 35.6762, 139.6503},
		{"Sydney", -33.8688, 151.2093},
		{"Sao Paulo", -23.5505, -46.6333},
	}
)

// Generator produces activity log documents.
type Generator struct {
	faker *gofakeit.Faker
	now   time.Time
}

// New creates a generator. Seed 0 produces a non-deterministic stream;
// any other seed makes the output reproducible.
func New(seed int64) *Generator {
	return &Generator{
		faker: gofakeit.New(uint64(seed)), //nolint:gosec // seed is a fixture knob, not key material
		now:   time.Now().UTC(),
	}
}

// ActivityLogs generates n activity log documents with timestamps spread
// over the last seven days.
func (g *Generator) ActivityLogs(n int) ([]document.Document, error) {
	docs := make([]document.Document, 0, n)
	weekAgo := g.now.AddDate(0, 0, -7)

	for i := 0; i < n; i++ {
		user := users[g.faker.Number(0, len(users)-1)]
		loc := locations[g.faker.Number(0, len(locations)-1)]

		fields := map[string]any{
			"user_id":          user.id,
			"username":         user.username,
			"department":       user.department,
			"action":           g.faker.RandomString(actions),
			"status":           g.faker.RandomString(statuses),
			"response_time":    g.faker.Float64Range(0.1, 5.0),
			"session_duration": g.faker.Number(60, 3600),
			"ip_address":       g.privateIP(),
			"location":         map[string]float64{"lat": loc.lat, "lon": loc.lon},
			"timestamp":        g.faker.DateRange(weekAgo, g.now).Format(time.RFC3339),
		}

		doc, err := document.New(fields)
		if err != nil {
			return nil, fmt.Errorf("generate document %d: %w", i, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// privateIP renders an address in the 192.168.0.0/16 block so generated
// logs never point at routable hosts.
func (g *Generator) privateIP() string {
	return fmt.Sprintf("192.168.%d.%d", g.faker.Number(0, 255), g.faker.Number(1, 254))
}
