package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rotatijuca/excursio-backend/models"
	"github.com/rotatijuca/excursio-backend/utils"
)

func newExcursionService(t *testing.T) *ExcursionService {
	return NewExcursionService(newTestStore(t), NewEventHub())
}

func TestExcursionService_AddRemoveParticipant_RoundTrip(t *testing.T) {
	service := newExcursionService(t)

	// Seeded Copacabana trip: 6 passengers, 5 spots left.
	before, err := service.GetByID(1)
	assert.NoError(t, err)
	capacity := before.Capacity()

	joined, err := service.AddParticipant(1, "  Rafael   Mota ")
	assert.NoError(t, err)
	assert.Equal(t, before.CurrentParticipants+1, joined.CurrentParticipants)
	assert.Equal(t, before.SpotsLeft-1, joined.SpotsLeft)
	assert.Contains(t, joined.Passengers, "Rafael Mota")
	assert.Equal(t, capacity, joined.Capacity())

	left, err := service.RemoveParticipant(1, "rafael mota")
	assert.NoError(t, err)
	assert.Equal(t, before.CurrentParticipants, left.CurrentParticipants)
	assert.Equal(t, before.SpotsLeft, left.SpotsLeft)
	assert.NotContains(t, left.Passengers, "Rafael Mota")
	assert.Equal(t, capacity, left.Capacity())
}

func TestExcursionService_AddParticipant_SoldOut(t *testing.T) {
	service := newExcursionService(t)

	// Seeded Itaipava trip has no spots left.
	_, err := service.AddParticipant(2, "Novo Passageiro")
	assert.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	assert.True(t, ok)
	assert.Equal(t, 409, appErr.Code)

	after, err := service.GetByID(2)
	assert.NoError(t, err)
	assert.Equal(t, 0, after.SpotsLeft)
}

func TestExcursionService_RemoveParticipant_Absent(t *testing.T) {
	service := newExcursionService(t)

	_, err := service.RemoveParticipant(1, "Ninguém")
	assert.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	assert.True(t, ok)
	assert.Equal(t, 404, appErr.Code)

	// The roster counters are untouched by a failed removal.
	after, err := service.GetByID(1)
	assert.NoError(t, err)
	assert.Equal(t, 6, after.CurrentParticipants)
	assert.Equal(t, 5, after.SpotsLeft)
}

func TestExcursionService_QuorumStatus(t *testing.T) {
	service := newExcursionService(t)

	// Angra: 7 of 15 minimum -> 46.67%, not met.
	angra, err := service.GetByID(3)
	assert.NoError(t, err)
	quorum := service.QuorumStatus(angra)
	assert.False(t, quorum.Met)
	assert.Equal(t, 46.67, quorum.Percentage)

	// Copacabana has no minimum, so the quorum is vacuously met.
	copacabana, err := service.GetByID(1)
	assert.NoError(t, err)
	quorum = service.QuorumStatus(copacabana)
	assert.True(t, quorum.Met)
	assert.Equal(t, 100.0, quorum.Percentage)

	// Percentage is capped at 100 even when the group overshoots.
	over := &models.Excursion{MinParticipants: 10, CurrentParticipants: 25}
	quorum = service.QuorumStatus(over)
	assert.True(t, quorum.Met)
	assert.Equal(t, 100.0, quorum.Percentage)
}

func TestExcursionService_Create(t *testing.T) {
	service := newExcursionService(t)

	created, err := service.Create(&models.CreateExcursionRequest{
		Destination:     "Trilha na Pedra do Sino",
		Neighborhood:    "Tijuca",
		Date:            "2030-05-12",
		Time:            "05:30",
		MeetingPoint:    "Praça Saens Peña (metrô)",
		Price:           130.999,
		Category:        utils.CategoryAdventure,
		OrganizerName:   "Rio Serra Tour",
		Capacity:        20,
		MinParticipants: 8,
	})
	assert.NoError(t, err)
	assert.Equal(t, 5, created.ID)
	assert.Equal(t, 131.00, created.Price)
	assert.Equal(t, 20, created.SpotsLeft)
	assert.Equal(t, 0, created.CurrentParticipants)
	assert.Equal(t, 20, created.Capacity())
	assert.False(t, created.IsPast)
	assert.NotEmpty(t, created.MapsURL)
}

func TestExcursionService_Create_Validation(t *testing.T) {
	service := newExcursionService(t)

	base := models.CreateExcursionRequest{
		Destination:   "Trilha",
		Neighborhood:  "Tijuca",
		Date:          "2030-05-12",
		Time:          "05:30",
		MeetingPoint:  "Praça Saens Peña",
		Price:         100,
		Category:      utils.CategoryAdventure,
		OrganizerName: "Rio Serra Tour",
		Capacity:      10,
	}

	badCategory := base
	badCategory.Category = "balada"
	_, err := service.Create(&badCategory)
	assert.Error(t, err)

	badDate := base
	badDate.Date = "12/05/2030"
	_, err = service.Create(&badDate)
	assert.Error(t, err)

	badTime := base
	badTime.Time = "5h30"
	_, err = service.Create(&badTime)
	assert.Error(t, err)

	badMin := base
	badMin.MinParticipants = 11
	_, err = service.Create(&badMin)
	assert.Error(t, err)
}

func TestExcursionService_Update_PatchesOnlyGivenFields(t *testing.T) {
	service := newExcursionService(t)

	price := 99.90
	meetingPoint := "Rua Conde de Bonfim, 100"
	updated, err := service.Update(1, &models.UpdateExcursionRequest{
		Price:        &price,
		MeetingPoint: &meetingPoint,
	})
	assert.NoError(t, err)
	assert.Equal(t, 99.90, updated.Price)
	assert.Equal(t, meetingPoint, updated.MeetingPoint)
	assert.Contains(t, updated.MapsURL, "Rua")
	// Untouched fields survive the patch.
	assert.Equal(t, "Praia de Copacabana", updated.Destination)
	assert.Equal(t, 5, updated.SpotsLeft)
}

func TestExcursionService_ListFilters(t *testing.T) {
	service := newExcursionService(t)

	beach, err := service.List(utils.CategoryBeach, "")
	assert.NoError(t, err)
	assert.Len(t, beach, 1)
	assert.Equal(t, "Praia de Copacabana", beach[0].Destination)

	all, err := service.List("", "")
	assert.NoError(t, err)
	assert.Len(t, all, 4)

	// The 2024 Petrópolis trip is always in the past.
	past, err := service.List("", "past")
	assert.NoError(t, err)
	for _, e := range past {
		assert.True(t, e.IsPast)
	}
}

func TestExcursionService_Delete(t *testing.T) {
	service := newExcursionService(t)

	assert.NoError(t, service.Delete(4))

	_, err := service.GetByID(4)
	assert.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	assert.True(t, ok)
	assert.Equal(t, 404, appErr.Code)

	err = service.Delete(4)
	assert.Error(t, err)
}

func TestExcursion_StatusDerivation(t *testing.T) {
	soldOut := &models.Excursion{SpotsLeft: 0}
	assert.Equal(t, utils.ExcursionSoldOut, soldOut.Status())

	awaiting := &models.Excursion{SpotsLeft: 8, MinParticipants: 15, CurrentParticipants: 7}
	assert.Equal(t, utils.ExcursionAwaitingGroup, awaiting.Status())

	confirmed := &models.Excursion{SpotsLeft: 5, MinParticipants: 0, CurrentParticipants: 6}
	assert.Equal(t, utils.ExcursionConfirmed, confirmed.Status())
}
