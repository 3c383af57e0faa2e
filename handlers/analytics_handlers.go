// handlers/analytics_handlers.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/rotatijuca/excursio-backend/models"
	"github.com/rotatijuca/excursio-backend/utils"
)

// TrackEvent handles usage tracking events
func (a *API) TrackEvent(c *gin.Context) {
	var request models.TrackEventRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	if err := a.Analytics.Track(&request); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{"tracked": request.Type})
}

// AnalyticsSummary handles the usage digest query
func (a *API) AnalyticsSummary(c *gin.Context) {
	summary, err := a.Analytics.Summary()
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, summary)
}
