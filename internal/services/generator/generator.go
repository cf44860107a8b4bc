// Package generator produces the demo complaint collection
package generator

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/bobmcallan/citypulse/internal/models"
)

// DefaultCount is the number of complaints in a generated snapshot.
const DefaultCount = 50

// PlaceholderImage is attached to roughly half of the generated complaints.
const PlaceholderImage = "https://placehold.co/600x400?text=Issue+Image"

// Area is a neighbourhood with its postal code.
type Area struct {
	Name    string
	Pincode string
}

// Areas is the fixed set of neighbourhoods complaints are spread over.
var Areas = []Area{
	{"Indiranagar", "560038"},
	{"Koramangala", "560034"},
	{"Whitefield", "560066"},
	{"HSR Layout", "560102"},
	{"Jayanagar", "560041"},
	{"JP Nagar", "560078"},
	{"Marathahalli", "560037"},
}

const (
	baseLat = 12.9716
	baseLng = 77.5946
	spread  = 0.05

	demoUserID   = "user-123"
	demoUserName = "Rahul Sharma"
)

// ComplaintID formats the sequential complaint identifier for n (1-based).
func ComplaintID(n int) string {
	return fmt.Sprintf("CP-2023-%04d", n)
}

// Generate returns DefaultCount complaints drawn from rng relative to now.
// The same departments, seed and now always produce the same collection.
func Generate(departments []models.Department, rng *rand.Rand, now time.Time) []models.Complaint {
	return GenerateN(departments, DefaultCount, rng, now)
}

// GenerateN returns n complaints. With no departments there is nothing to
// attribute complaints to and the result is empty.
func GenerateN(departments []models.Department, n int, rng *rand.Rand, now time.Time) []models.Complaint {
	out := make([]models.Complaint, 0, max(n, 0))
	if len(departments) == 0 {
		return out
	}

	for i := 1; i <= n; i++ {
		dept := departments[rng.Intn(len(departments))]
		status := models.ComplaintStatuses[rng.Intn(len(models.ComplaintStatuses))]
		priority := models.ComplaintPriorities[rng.Intn(len(models.ComplaintPriorities))]
		area := Areas[rng.Intn(len(Areas))]

		createdAt := now.AddDate(0, 0, -rng.Intn(30))
		updatedAt := createdAt.AddDate(0, 0, rng.Intn(5))

		id := ComplaintID(i)
		commentCount := rng.Intn(5)
		comments := make([]models.Comment, 0, commentCount)
		for j := 0; j < commentCount; j++ {
			comments = append(comments, generateComment(rng, id, i, j, createdAt))
		}

		lat := baseLat + rng.Float64()*spread
		lng := baseLng + rng.Float64()*spread
		upvotes := rng.Intn(50)

		images := []string{}
		if rng.Float64() > 0.5 {
			images = append(images, PlaceholderImage)
		}

		out = append(out, models.Complaint{
			ID:          id,
			Title:       fmt.Sprintf("%s issue in %s", dept.Name, area.Name),
			Description: fmt.Sprintf("This is a detailed description of a %s related issue in %s area.", strings.ToLower(dept.Name), area.Name),
			Department:  dept,
			Location: models.Location{
				Area:        area.Name,
				Pincode:     area.Pincode,
				Coordinates: &models.Coordinates{Lat: lat, Lng: lng},
			},
			Status:    status,
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
			UserID:    demoUserID,
			UserName:  demoUserName,
			Upvotes:   upvotes,
			Images:    images,
			Priority:  priority,
			Comments:  comments,
		})
	}
	return out
}

func generateComment(rng *rand.Rand, complaintID string, i, j int, createdAt time.Time) models.Comment {
	userID := fmt.Sprintf("user-%d", rng.Intn(100))

	userName := "Department Official"
	if rng.Float64() > 0.5 {
		userName = "Citizen User"
	}
	role := models.RoleOfficial
	if rng.Float64() > 0.5 {
		role = models.RoleCitizen
	}

	return models.Comment{
		ID:        fmt.Sprintf("comment-%d-%d", i, j),
		Text:      "This is a comment on complaint #" + complaintID,
		CreatedAt: createdAt.AddDate(0, 0, j+1),
		UserID:    userID,
		UserName:  userName,
		UserRole:  role,
	}
}
