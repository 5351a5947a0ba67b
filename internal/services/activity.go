package services

import (
	"context"
	"sort"
	"time"

	"wheeladmin/internal/models"
)

type ActivityClient interface {
	ListWheelPrizeExtractions(ctx context.Context) ([]models.WheelPrizeExtraction, error)
	GetWheelPrizeExtraction(ctx context.Context, req models.GetWheelPrizeExtractionRequest) (models.WheelPrizeExtraction, error)
	GetWheelPrizeExtractionsStats(ctx context.Context) (models.WheelPrizeExtractionsStats, error)
	ListUsers(ctx context.Context) ([]models.UserProfile, error)
}

// ActivityEntry is an extraction with the team member who triggered it.
type ActivityEntry struct {
	models.WheelPrizeExtraction
	ExtractedBy *models.UserProfile `json:"extracted_by"`
}

type Activity struct {
	client ActivityClient
}

func NewActivity(c ActivityClient) *Activity {
	return &Activity{client: c}
}

// List returns all extractions, newest first.
func (a *Activity) List(ctx context.Context) ([]ActivityEntry, error) {
	extractions, err := a.client.ListWheelPrizeExtractions(ctx)
	if err != nil {
		return nil, err
	}
	users, err := a.client.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.UserProfile, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	entries := make([]ActivityEntry, 0, len(extractions))
	for _, e := range extractions {
		entry := ActivityEntry{WheelPrizeExtraction: e}
		if u, ok := byID[e.ExtractedByUserID]; ok {
			entry.ExtractedBy = &u
		}
		entries = append(entries, entry)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return createdAt(entries[i].WheelPrizeExtraction).After(createdAt(entries[j].WheelPrizeExtraction))
	})
	return entries, nil
}

func createdAt(e models.WheelPrizeExtraction) time.Time {
	t, err := time.Parse(time.RFC3339Nano, e.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (a *Activity) Get(ctx context.Context, id string) (models.WheelPrizeExtraction, error) {
	return a.client.GetWheelPrizeExtraction(ctx, models.GetWheelPrizeExtractionRequest{WheelPrizeExtractionID: id})
}

func (a *Activity) Stats(ctx context.Context) (models.WheelPrizeExtractionsStats, error) {
	return a.client.GetWheelPrizeExtractionsStats(ctx)
}
