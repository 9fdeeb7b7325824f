// Package store is the PocketBase-backed persistence layer. All collection
// access and dbx aggregate queries live here; services consume it through
// the interfaces they declare.
package store

import (
	"context"
	"fmt"
	"strings"

	"event-management/internal/status"
	"event-management/models"

	"github.com/pocketbase/pocketbase/core"
)

type Store struct {
	app core.App
}

func New(app core.App) *Store {
	return &Store{app: app}
}

// --- events ---

// EventFilter narrows event listings. Zero values mean "no constraint".
type EventFilter struct {
	CategoryID string
	Status     string
	Search     string
	Page       int
	PerPage    int
}

func (f *EventFilter) normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 || f.PerPage > 100 {
		f.PerPage = 10
	}
}

func (s *Store) EventByID(ctx context.Context, id string) (*models.Event, error) {
	record, err := s.app.FindRecordById("events", id)
	if err != nil {
		return nil, fmt.Errorf("%w: event %s", status.ErrNotFound, id)
	}
	return eventFromRecord(record), nil
}

func (s *Store) ListEvents(ctx context.Context, filter EventFilter) ([]models.Event, int, error) {
	filter.normalize()

	var parts []string
	params := map[string]any{}
	if filter.CategoryID != "" {
		parts = append(parts, "category = {:category}")
		params["category"] = filter.CategoryID
	}
	if filter.Status != "" {
		parts = append(parts, "status = {:status}")
		params["status"] = filter.Status
	}
	if filter.Search != "" {
		parts = append(parts, "(title ~ {:search} || description ~ {:search} || venue ~ {:search} || city ~ {:search})")
		params["search"] = filter.Search
	}

	expr := strings.Join(parts, " && ")
	records, err := s.app.FindRecordsByFilter("events", expr, "start_time",
		filter.PerPage, (filter.Page-1)*filter.PerPage, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}

	total, err := s.countByFilter("events", expr, params)
	if err != nil {
		return nil, 0, err
	}

	return eventsFromRecords(records), total, nil
}

func (s *Store) UpcomingEvents(ctx context.Context, limit int) ([]models.Event, error) {
	if limit < 1 {
		limit = 50
	}
	records, err := s.app.FindRecordsByFilter("events",
		"start_time >= @now && status = {:status}", "start_time", limit, 0,
		map[string]any{"status": models.EventStatusUpcoming})
	if err != nil {
		return nil, fmt.Errorf("upcoming events: %w", err)
	}
	return eventsFromRecords(records), nil
}

// SearchEvents matches by category name and/or venue, both as substrings.
func (s *Store) SearchEvents(ctx context.Context, categoryName, location string, page, perPage int) ([]models.Event, error) {
	filter := EventFilter{Page: page, PerPage: perPage}
	filter.normalize()

	var parts []string
	params := map[string]any{}

	if categoryName != "" {
		category, err := s.app.FindFirstRecordByFilter("categories", "name ~ {:name}",
			map[string]any{"name": categoryName})
		if err != nil {
			// Unknown category matches nothing, mirroring a failed lookup
			// rather than an error.
			return []models.Event{}, nil
		}
		parts = append(parts, "category = {:category}")
		params["category"] = category.Id
	}
	if location != "" {
		parts = append(parts, "venue ~ {:venue}")
		params["venue"] = location
	}

	records, err := s.app.FindRecordsByFilter("events", strings.Join(parts, " && "),
		"start_time", filter.PerPage, (filter.Page-1)*filter.PerPage, params)
	if err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}
	return eventsFromRecords(records), nil
}

func (s *Store) EventsInRange(ctx context.Context, startDate, endDate string, page, perPage int) ([]models.Event, error) {
	filter := EventFilter{Page: page, PerPage: perPage}
	filter.normalize()

	var parts []string
	params := map[string]any{}
	if startDate != "" {
		parts = append(parts, "start_time >= {:start}")
		params["start"] = startDate
	}
	if endDate != "" {
		parts = append(parts, "start_time <= {:end}")
		params["end"] = endDate
	}

	records, err := s.app.FindRecordsByFilter("events", strings.Join(parts, " && "),
		"start_time", filter.PerPage, (filter.Page-1)*filter.PerPage, params)
	if err != nil {
		return nil, fmt.Errorf("events in range: %w", err)
	}
	return eventsFromRecords(records), nil
}

func (s *Store) TopRatedEvents(ctx context.Context, limit, minReviews int) ([]models.Event, error) {
	if limit < 1 {
		limit = 10
	}
	records, err := s.app.FindRecordsByFilter("events",
		"total_reviews >= {:min}", "-average_rating,-total_reviews", limit, 0,
		map[string]any{"min": minReviews})
	if err != nil {
		return nil, fmt.Errorf("top rated events: %w", err)
	}
	return eventsFromRecords(records), nil
}

func (s *Store) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	if err := event.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", status.ErrInvalidInput, err)
	}
	if _, err := s.app.FindRecordById("categories", event.CategoryID); err != nil {
		return nil, fmt.Errorf("%w: category %s", status.ErrNotFound, event.CategoryID)
	}

	collection, err := s.app.FindCollectionByNameOrId("events")
	if err != nil {
		return nil, err
	}

	record := core.NewRecord(collection)
	applyEvent(record, event)
	if event.Status == "" {
		record.Set("status", models.EventStatusUpcoming)
	}

	if err := s.app.Save(record); err != nil {
		return nil, fmt.Errorf("save event: %w", err)
	}
	return eventFromRecord(record), nil
}

// UpdateEvent applies the non-zero fields of patch to an existing event and
// revalidates the result as a whole.
func (s *Store) UpdateEvent(ctx context.Context, id string, patch *models.Event) (*models.Event, error) {
	record, err := s.app.FindRecordById("events", id)
	if err != nil {
		return nil, fmt.Errorf("%w: event %s", status.ErrNotFound, id)
	}

	merged := eventFromRecord(record)
	mergeEvent(merged, patch)
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", status.ErrInvalidInput, err)
	}

	applyEvent(record, merged)
	if err := s.app.Save(record); err != nil {
		return nil, fmt.Errorf("save event: %w", err)
	}
	return eventFromRecord(record), nil
}

// DeleteEvent removes the event; the tickets relation cascades, so the
// event's tickets go with it.
func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	record, err := s.app.FindRecordById("events", id)
	if err != nil {
		return fmt.Errorf("%w: event %s", status.ErrNotFound, id)
	}
	if err := s.app.Delete(record); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// --- categories ---

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	records, err := s.app.FindRecordsByFilter("categories", "", "name", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	categories := make([]models.Category, 0, len(records))
	for _, r := range records {
		categories = append(categories, categoryFromRecord(r))
	}
	return categories, nil
}

func (s *Store) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if strings.TrimSpace(category.Name) == "" {
		return nil, fmt.Errorf("%w: category name is required", status.ErrInvalidInput)
	}
	if _, err := s.app.FindFirstRecordByData("categories", "name", category.Name); err == nil {
		return nil, fmt.Errorf("%w: category name already exists", status.ErrInvalidInput)
	}

	collection, err := s.app.FindCollectionByNameOrId("categories")
	if err != nil {
		return nil, err
	}

	record := core.NewRecord(collection)
	record.Set("name", category.Name)
	record.Set("description", category.Description)

	if err := s.app.Save(record); err != nil {
		return nil, fmt.Errorf("save category: %w", err)
	}
	created := categoryFromRecord(record)
	return &created, nil
}

// InitializeCategories wipes the collection and seeds the defaults.
func (s *Store) InitializeCategories(ctx context.Context) ([]models.Category, error) {
	err := s.app.RunInTransaction(func(txApp core.App) error {
		existing, err := txApp.FindRecordsByFilter("categories", "", "", 0, 0)
		if err != nil {
			return err
		}
		for _, r := range existing {
			if err := txApp.Delete(r); err != nil {
				return err
			}
		}

		collection, err := txApp.FindCollectionByNameOrId("categories")
		if err != nil {
			return err
		}
		for _, c := range models.DefaultCategories() {
			record := core.NewRecord(collection)
			record.Set("name", c.Name)
			record.Set("description", c.Description)
			if err := txApp.Save(record); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("initialize categories: %w", err)
	}
	return s.ListCategories(ctx)
}

// --- users ---

func (s *Store) UserByID(ctx context.Context, id string) (*models.User, error) {
	record, err := s.app.FindRecordById("users", id)
	if err != nil {
		return nil, fmt.Errorf("%w: user %s", status.ErrNotFound, id)
	}
	return userFromRecord(record), nil
}

func (s *Store) SearchUsersByEmail(ctx context.Context, email string, page, perPage int) ([]models.User, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}

	records, err := s.app.FindRecordsByFilter("users", "email ~ {:email}", "email",
		perPage, (page-1)*perPage, map[string]any{"email": email})
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}

	users := make([]models.User, 0, len(records))
	for _, r := range records {
		users = append(users, *userFromRecord(r))
	}
	return users, nil
}

func (s *Store) countByFilter(collection, expr string, params map[string]any) (int, error) {
	records, err := s.app.FindRecordsByFilter(collection, expr, "", 0, 0, params)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return len(records), nil
}
