package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rotatijuca/excursio-backend/models"
	"github.com/rotatijuca/excursio-backend/services"
	"github.com/rotatijuca/excursio-backend/utils"
)

// API bundles the service dependencies behind the HTTP handlers.
type API struct {
	Excursions  *services.ExcursionService
	Bookings    *services.BookingService
	Payments    *services.PaymentService
	Ledger      *services.LedgerService
	Withdrawals *services.WithdrawalService
	Chat        *services.ChatService
	Analytics   *services.AnalyticsService
	Excel       *services.ExcelService
	Auth        *services.AuthService
	Hub         *services.EventHub
}

// New creates the API handler set.
func New(
	excursions *services.ExcursionService,
	bookings *services.BookingService,
	payments *services.PaymentService,
	ledger *services.LedgerService,
	withdrawals *services.WithdrawalService,
	chat *services.ChatService,
	analytics *services.AnalyticsService,
	excel *services.ExcelService,
	auth *services.AuthService,
	hub *services.EventHub,
) *API {
	return &API{
		Excursions:  excursions,
		Bookings:    bookings,
		Payments:    payments,
		Ledger:      ledger,
		Withdrawals: withdrawals,
		Chat:        chat,
		Analytics:   analytics,
		Excel:       excel,
		Auth:        auth,
		Hub:         hub,
	}
}

// AdminOnly guards admin routes with the session bearer token.
func (a *API) AdminOnly(handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !a.Auth.Validate(token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing admin token"})
			return
		}
		handler(c)
	}
}

// Login handles the admin password exchange.
func (a *API) Login(c *gin.Context) {
	var request models.AdminLoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	token, err := a.Auth.Login(request.Password)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, models.AdminLoginResponse{Token: token})
}
