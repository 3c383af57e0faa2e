package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/rotatijuca/excursio-backend/models"
	"github.com/rotatijuca/excursio-backend/repository"
	"github.com/rotatijuca/excursio-backend/utils"
)

// AnalyticsService tracks the single-user usage blob: page views, searches,
// viewed trips and element clicks.
type AnalyticsService struct {
	store repository.Store
}

// NewAnalyticsService creates an analytics service.
func NewAnalyticsService(store repository.Store) *AnalyticsService {
	return &AnalyticsService{store: store}
}

// Track applies one tracking event.
func (s *AnalyticsService) Track(req *models.TrackEventRequest) error {
	data, err := s.store.GetAnalytics()
	if err != nil {
		return utils.NewInternalError(utils.ErrFailedToRetrieve)
	}

	now := time.Now()
	data.Session.LastActivity = now
	if data.Session.StartTime.IsZero() {
		data.Session.StartTime = now
	}

	switch req.Type {
	case "pageview":
		data.PageViews++
	case "search":
		if err := utils.ValidateRequired(req.Query, "query"); err != nil {
			return err
		}
		data.SearchQueries = append(data.SearchQueries, req.Query)
	case "tripview":
		if req.TripID <= 0 {
			return utils.NewValidationError("tripId is required")
		}
		data.TripsViewed = appendUniqueTrip(data.TripsViewed, req.TripID)
	case "click":
		if err := utils.ValidateRequired(req.Element, "element"); err != nil {
			return err
		}
		data.ClickEvents = append(data.ClickEvents, models.ClickEvent{
			Element:   req.Element,
			Timestamp: now,
		})
	default:
		return utils.NewValidationError("type must be one of pageview, search, tripview, click")
	}

	if err := s.store.SaveAnalytics(data); err != nil {
		return utils.NewInternalError(utils.ErrFailedToStore)
	}
	return nil
}

func appendUniqueTrip(trips []int, id int) []int {
	for _, t := range trips {
		if t == id {
			return trips
		}
	}
	return append(trips, id)
}

// Summary digests the blob for the dashboard: session duration, last five
// searches and the five most-clicked elements.
func (s *AnalyticsService) Summary() (*models.AnalyticsSummary, error) {
	data, err := s.store.GetAnalytics()
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}

	summary := &models.AnalyticsSummary{
		PageViews:       data.PageViews,
		SessionDuration: formatDuration(data.Session),
		TripsViewed:     len(data.TripsViewed),
		TopClicks:       topClicks(data.ClickEvents, 5),
	}

	searches := data.SearchQueries
	if len(searches) > 5 {
		searches = searches[len(searches)-5:]
	}
	summary.LastSearches = searches
	return summary, nil
}

func formatDuration(session models.SessionInfo) string {
	if session.StartTime.IsZero() {
		return "0min"
	}
	d := session.LastActivity.Sub(session.StartTime)
	if d < time.Minute {
		return "0min"
	}
	return fmt.Sprintf("%dmin", int(d.Minutes()))
}

func topClicks(events []models.ClickEvent, n int) map[string]int {
	counts := map[string]int{}
	for _, e := range events {
		counts[e.Element]++
	}
	if len(counts) <= n {
		return counts
	}

	type kv struct {
		element string
		count   int
	}
	var sorted []kv
	for element, count := range counts {
		sorted = append(sorted, kv{element, count})
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].count > sorted[j].count })

	top := map[string]int{}
	for _, e := range sorted[:n] {
		top[e.element] = e.count
	}
	return top
}
