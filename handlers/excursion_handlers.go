// handlers/excursion_handlers.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rotatijuca/excursio-backend/models"
	"github.com/rotatijuca/excursio-backend/utils"
)

// excursionID parses the :id path parameter.
func excursionID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		utils.HandleError(c, utils.NewBadRequestError("invalid excursion id"))
		return 0, false
	}
	return id, true
}

// ListExcursions handles catalog listing with optional category/when filters
func (a *API) ListExcursions(c *gin.Context) {
	excursions, err := a.Excursions.List(c.Query("category"), c.Query("when"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, excursions)
}

// GetExcursion handles retrieving one excursion
func (a *API) GetExcursion(c *gin.Context) {
	id, ok := excursionID(c)
	if !ok {
		return
	}

	excursion, err := a.Excursions.GetByID(id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, excursion)
}

// GetQuorum handles the quorum progress query
func (a *API) GetQuorum(c *gin.Context) {
	id, ok := excursionID(c)
	if !ok {
		return
	}

	excursion, err := a.Excursions.GetByID(id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, a.Excursions.QuorumStatus(excursion))
}

// JoinExcursion handles adding a participant to the roster
func (a *API) JoinExcursion(c *gin.Context) {
	id, ok := excursionID(c)
	if !ok {
		return
	}

	var request models.ParticipantRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	excursion, err := a.Excursions.AddParticipant(id, request.Name)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, excursion)
}

// LeaveExcursion handles removing a participant from the roster
func (a *API) LeaveExcursion(c *gin.Context) {
	id, ok := excursionID(c)
	if !ok {
		return
	}

	var request models.ParticipantRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	excursion, err := a.Excursions.RemoveParticipant(id, request.Name)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, excursion)
}

// CreateExcursion handles admin excursion creation
func (a *API) CreateExcursion(c *gin.Context) {
	var request models.CreateExcursionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	excursion, err := a.Excursions.Create(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, excursion)
}

// UpdateExcursion handles admin excursion updates
func (a *API) UpdateExcursion(c *gin.Context) {
	id, ok := excursionID(c)
	if !ok {
		return
	}

	var request models.UpdateExcursionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	excursion, err := a.Excursions.Update(id, &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, excursion)
}

// DeleteExcursion handles admin excursion deletion
func (a *API) DeleteExcursion(c *gin.Context) {
	id, ok := excursionID(c)
	if !ok {
		return
	}

	if err := a.Excursions.Delete(id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{"deleted": id})
}
