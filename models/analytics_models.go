// models/analytics_models.go
package models

import "time"

// ClickEvent is one tracked element click
type ClickEvent struct {
	Element   string    `json:"element"`
	Timestamp time.Time `json:"timestamp"`
}

// SessionInfo tracks the single-user session window
type SessionInfo struct {
	StartTime    time.Time `json:"startTime"`
	LastActivity time.Time `json:"lastActivity"`
}

// AnalyticsData is the usage blob persisted under the user_analytics key
type AnalyticsData struct {
	PageViews     int          `json:"pageViews"`
	TripsViewed   []int        `json:"tripsViewed"`
	SearchQueries []string     `json:"searchQueries"`
	ClickEvents   []ClickEvent `json:"clickEvents"`
	Session       SessionInfo  `json:"userSession"`
}

// AnalyticsSummary is the digest served to the dashboard
type AnalyticsSummary struct {
	PageViews       int            `json:"pageViews"`
	SessionDuration string         `json:"sessionDuration"`
	TripsViewed     int            `json:"tripsViewed"`
	LastSearches    []string       `json:"lastSearches"`
	TopClicks       map[string]int `json:"topClicks"`
}

// TrackEventRequest request model
type TrackEventRequest struct {
	Type    string `json:"type" binding:"required"` // pageview | search | tripview | click
	Query   string `json:"query"`
	TripID  int    `json:"tripId"`
	Element string `json:"element"`
}
