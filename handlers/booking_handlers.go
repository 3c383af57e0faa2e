// handlers/booking_handlers.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/rotatijuca/excursio-backend/models"
	"github.com/rotatijuca/excursio-backend/utils"
)

// CreateBooking handles the booking + payment flow
func (a *API) CreateBooking(c *gin.Context) {
	var request models.BookRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	response, err := a.Bookings.Book(c.Request.Context(), &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, response)
}

// ListBookings handles listing a user's bookings
func (a *API) ListBookings(c *gin.Context) {
	user := c.Query("user")
	if user == "" {
		utils.HandleError(c, utils.NewBadRequestError("user query parameter is required"))
		return
	}

	bookings, err := a.Bookings.ListForUser(user)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, bookings)
}

// CancelBooking handles booking cancellation
func (a *API) CancelBooking(c *gin.Context) {
	booking, err := a.Bookings.Cancel(c.Param("code"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, booking)
}

// RateBooking handles the post-trip organizer rating
func (a *API) RateBooking(c *gin.Context) {
	var request models.RateTripRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	rating, err := a.Bookings.Rate(c.Param("code"), &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, rating)
}

// ListTripRatings handles listing the reviews for one excursion
func (a *API) ListTripRatings(c *gin.Context) {
	id, ok := excursionID(c)
	if !ok {
		return
	}

	ratings, err := a.Bookings.RatingsForTrip(id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	var average float64
	if len(ratings) > 0 {
		var sum int
		for _, r := range ratings {
			sum += r.Rating
		}
		average = utils.Round(float64(sum) / float64(len(ratings)))
	}
	utils.HandleSuccess(c, gin.H{"ratings": ratings, "average": average})
}

// UpdateBookingStatus handles admin booking status transitions
func (a *API) UpdateBookingStatus(c *gin.Context) {
	var request models.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	booking, err := a.Bookings.UpdateStatus(c.Param("code"), request.Status)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, booking)
}
