package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/rotatijuca/excursio-backend/handlers"
)

// SetupRoutes configures all API routes for the application
func SetupRoutes(router *gin.Engine, api *handlers.API) {
	v1 := router.Group("/api/v1")
	{
		// Excursion catalog and roster
		v1.GET("/excursions", api.ListExcursions)
		v1.GET("/excursions/:id", api.GetExcursion)
		v1.GET("/excursions/:id/quorum", api.GetQuorum)
		v1.POST("/excursions/:id/join", api.JoinExcursion)
		v1.POST("/excursions/:id/leave", api.LeaveExcursion)

		// Bookings and ratings
		v1.POST("/bookings", api.CreateBooking)
		v1.GET("/bookings", api.ListBookings)
		v1.POST("/bookings/:code/cancel", api.CancelBooking)
		v1.POST("/bookings/:code/rate", api.RateBooking)
		v1.GET("/excursions/:id/ratings", api.ListTripRatings)

		// Group chat
		v1.GET("/excursions/:id/chat", api.ListChat)
		v1.POST("/excursions/:id/chat", api.PostChat)

		// Usage analytics
		v1.POST("/analytics/track", api.TrackEvent)
		v1.GET("/analytics/summary", api.AnalyticsSummary)

		// Admin dashboard
		v1.POST("/admin/login", api.Login)
		admin := v1.Group("/admin")
		{
			admin.POST("/excursions", api.AdminOnly(api.CreateExcursion))
			admin.PUT("/excursions/:id", api.AdminOnly(api.UpdateExcursion))
			admin.DELETE("/excursions/:id", api.AdminOnly(api.DeleteExcursion))
			admin.PUT("/bookings/:code/status", api.AdminOnly(api.UpdateBookingStatus))

			admin.GET("/payments", api.AdminOnly(api.ListPayments))
			admin.GET("/payments/summary", api.AdminOnly(api.PaymentsSummary))
			admin.POST("/payments/:transactionId/refund", api.AdminOnly(api.RefundPayment))

			admin.GET("/balance", api.AdminOnly(api.GetBalance))
			admin.GET("/withdrawals", api.AdminOnly(api.ListWithdrawals))
			admin.POST("/withdrawals", api.AdminOnly(api.CreateWithdrawal))

			admin.GET("/reports/payments.xlsx", api.AdminOnly(api.DownloadPaymentsReport))
			admin.GET("/excursions/:id/manifest.xlsx", api.AdminOnly(api.DownloadManifest))
		}
	}

	// Server-sent mutation events
	router.GET("/events", api.StreamEvents)
}
