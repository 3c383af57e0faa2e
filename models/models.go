// models/models.go
package models

import "time"

// Organizer is the party running an excursion
type Organizer struct {
	Name    string  `json:"name"`
	Rating  float64 `json:"rating"`
	Reviews int     `json:"reviews"`
}

// Excursion represents a schedulable group trip offering
type Excursion struct {
	ID                  int       `json:"id"`
	Destination         string    `json:"destination"`
	Neighborhood        string    `json:"neighborhood"`
	Date                string    `json:"date"` // calendar date, YYYY-MM-DD
	Time                string    `json:"time"` // local time-of-day, HH:MM
	MeetingPoint        string    `json:"meetingPoint"`
	MapsURL             string    `json:"mapsUrl,omitempty"`
	Price               float64   `json:"price"`
	Category            string    `json:"category"`
	Image               string    `json:"image,omitempty"`
	Organizer           Organizer `json:"organizer"`
	Itinerary           string    `json:"itinerary"`
	Passengers          []string  `json:"passengers"`
	MinParticipants     int       `json:"minParticipants"`
	CurrentParticipants int       `json:"currentParticipants"`
	SpotsLeft           int       `json:"spotsLeft"`
	IsPast              bool      `json:"isPast"`
}

// Capacity is the fixed seat count of the excursion. CurrentParticipants and
// SpotsLeft always sum to it.
func (e *Excursion) Capacity() int {
	return e.CurrentParticipants + e.SpotsLeft
}

// RefreshIsPast recomputes the derived IsPast flag against the given clock.
func (e *Excursion) RefreshIsPast(now time.Time) {
	d, err := time.Parse("2006-01-02", e.Date)
	if err != nil {
		return
	}
	e.IsPast = d.Before(now.Truncate(24 * time.Hour))
}

// Status derives the admin-facing excursion status
func (e *Excursion) Status() string {
	if e.SpotsLeft == 0 {
		return "Esgotada"
	}
	if e.MinParticipants > 0 && e.CurrentParticipants < e.MinParticipants {
		return "Aguardando Grupo"
	}
	return "Confirmada"
}

// QuorumStatus reports progress toward an excursion's minimum group size
type QuorumStatus struct {
	Met        bool    `json:"met"`
	Percentage float64 `json:"percentage"`
}

// Booking is a user's reservation against one excursion, tracked
// independently of the excursion's own passenger roster
type Booking struct {
	ExcursionID int       `json:"excursionId"`
	UserName    string    `json:"userName"`
	UserEmail   string    `json:"userEmail,omitempty"`
	Destination string    `json:"destination"`
	Date        string    `json:"date"`
	Status      string    `json:"status"`
	BookingCode string    `json:"bookingCode"`
	IsPast      bool      `json:"isPast"`
	Rated       bool      `json:"rated"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ChatMessage is one entry in an excursion's group chat
type ChatMessage struct {
	ID          int64     `json:"id"`
	ExcursionID int       `json:"excursionId"`
	User        string    `json:"user"`
	Text        string    `json:"text"`
	IsOrganizer bool      `json:"isOrganizer"`
	Timestamp   time.Time `json:"timestamp"`
}

// Rating is a passenger's review of an organizer after a trip
type Rating struct {
	ID              int    `json:"id"`
	UserName        string `json:"userName"`
	UserEmail       string `json:"userEmail,omitempty"`
	Rating          int    `json:"rating"`
	Comment         string `json:"comment,omitempty"`
	Date            string `json:"date"`
	TripID          int    `json:"tripId,omitempty"`
	TripDestination string `json:"tripDestination,omitempty"`
}

// CreateExcursionRequest request model (admin)
type CreateExcursionRequest struct {
	Destination     string  `json:"destination" binding:"required"`
	Neighborhood    string  `json:"neighborhood" binding:"required"`
	Date            string  `json:"date" binding:"required"`
	Time            string  `json:"time" binding:"required"`
	MeetingPoint    string  `json:"meetingPoint" binding:"required"`
	Price           float64 `json:"price" binding:"required,gt=0"`
	Category        string  `json:"category" binding:"required"`
	Image           string  `json:"image"`
	OrganizerName   string  `json:"organizerName" binding:"required"`
	Itinerary       string  `json:"itinerary"`
	Capacity        int     `json:"capacity" binding:"required,gt=0"`
	MinParticipants int     `json:"minParticipants" binding:"min=0"`
}

// UpdateExcursionRequest request model (admin)
type UpdateExcursionRequest struct {
	Destination     *string  `json:"destination"`
	Neighborhood    *string  `json:"neighborhood"`
	Date            *string  `json:"date"`
	Time            *string  `json:"time"`
	MeetingPoint    *string  `json:"meetingPoint"`
	Price           *float64 `json:"price"`
	Category        *string  `json:"category"`
	Itinerary       *string  `json:"itinerary"`
	MinParticipants *int     `json:"minParticipants"`
}

// ParticipantRequest request model for roster joins/leaves
type ParticipantRequest struct {
	Name string `json:"name" binding:"required"`
}

// BookRequest request model for the booking + payment flow
type BookRequest struct {
	UserName    string         `json:"userName" binding:"required"`
	UserEmail   string         `json:"userEmail"`
	ExcursionID int            `json:"excursionId" binding:"required"`
	Payment     PaymentDetails `json:"payment" binding:"required"`
}

// RateTripRequest request model
type RateTripRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// UpdateBookingStatusRequest request model (admin)
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PostChatMessageRequest request model
type PostChatMessageRequest struct {
	User string `json:"user" binding:"required"`
	Text string `json:"text" binding:"required"`
}

// AdminLoginRequest request model
type AdminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// AdminLoginResponse response model
type AdminLoginResponse struct {
	Token string `json:"token"`
}

// BookResponse response model
type BookResponse struct {
	Booking Booking       `json:"booking"`
	Payment PaymentRecord `json:"payment"`
}
