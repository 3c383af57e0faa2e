package services

import (
	"time"

	"github.com/rotatijuca/excursio-backend/models"
	"github.com/rotatijuca/excursio-backend/repository"
	"github.com/rotatijuca/excursio-backend/utils"
)

// ExcursionService manages the excursion catalog and each excursion's
// passenger roster.
type ExcursionService struct {
	store repository.Store
	hub   *EventHub
}

// NewExcursionService creates an excursion service over the given store.
func NewExcursionService(store repository.Store, hub *EventHub) *ExcursionService {
	return &ExcursionService{store: store, hub: hub}
}

// List returns the catalog, optionally filtered by category and/or by
// upcoming/past ("when" is "", "upcoming" or "past").
func (s *ExcursionService) List(category, when string) ([]models.Excursion, error) {
	excursions, err := s.store.ListExcursions()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var out []models.Excursion
	for _, e := range excursions {
		e.RefreshIsPast(now)
		if category != "" && e.Category != category {
			continue
		}
		if when == "upcoming" && e.IsPast {
			continue
		}
		if when == "past" && !e.IsPast {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// GetByID returns one excursion.
func (s *ExcursionService) GetByID(id int) (*models.Excursion, error) {
	e, err := s.store.GetExcursion(id)
	if err != nil {
		if err == repository.ErrExcursionNotFound {
			return nil, utils.NewNotFoundError("excursion")
		}
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	e.RefreshIsPast(time.Now())
	return e, nil
}

// AddParticipant appends a passenger to an excursion's roster. A sold-out
// excursion rejects the join instead of clamping.
func (s *ExcursionService) AddParticipant(excursionID int, name string) (*models.Excursion, error) {
	name = utils.NormalizeName(name)
	if err := utils.ValidateRequired(name, "participant name"); err != nil {
		return nil, err
	}

	e, err := s.GetByID(excursionID)
	if err != nil {
		return nil, err
	}
	if e.SpotsLeft == 0 {
		return nil, utils.NewCapacityError(e.Destination)
	}

	e.Passengers = append(e.Passengers, name)
	e.CurrentParticipants++
	e.SpotsLeft--

	if err := s.store.UpdateExcursion(e); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}
	s.hub.Publish(Event{Type: "roster", Data: e})
	return e, nil
}

// RemoveParticipant removes the first roster entry matching the name.
// An absent name is an explicit error, not a silent no-op.
func (s *ExcursionService) RemoveParticipant(excursionID int, name string) (*models.Excursion, error) {
	e, err := s.GetByID(excursionID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, p := range e.Passengers {
		if utils.EqualNames(p, name) {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, utils.NewNotFoundError("participant")
	}

	e.Passengers = append(e.Passengers[:idx], e.Passengers[idx+1:]...)
	if e.CurrentParticipants > 0 {
		e.CurrentParticipants--
	}
	e.SpotsLeft++

	if err := s.store.UpdateExcursion(e); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}
	s.hub.Publish(Event{Type: "roster", Data: e})
	return e, nil
}

// QuorumStatus reports progress toward the minimum group size. A zero
// MinParticipants disables the requirement (vacuously met).
func (s *ExcursionService) QuorumStatus(e *models.Excursion) models.QuorumStatus {
	if e.MinParticipants == 0 {
		return models.QuorumStatus{Met: true, Percentage: 100}
	}

	percentage := float64(e.CurrentParticipants) / float64(e.MinParticipants) * 100
	return models.QuorumStatus{
		Met:        e.CurrentParticipants >= e.MinParticipants,
		Percentage: utils.Min(utils.Round(percentage), 100),
	}
}

// Create stores a new excursion from the admin form. The capacity invariant
// (currentParticipants + spotsLeft constant) is established here.
func (s *ExcursionService) Create(req *models.CreateExcursionRequest) (*models.Excursion, error) {
	if err := utils.ValidateOneOf(req.Category, "category", utils.ValidCategories); err != nil {
		return nil, err
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return nil, utils.NewValidationError("date must be YYYY-MM-DD")
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		return nil, utils.NewValidationError("time must be HH:MM")
	}
	if req.MinParticipants > req.Capacity {
		return nil, utils.NewValidationError("minParticipants cannot exceed capacity")
	}

	e := &models.Excursion{
		Destination:     utils.NormalizeName(req.Destination),
		Neighborhood:    req.Neighborhood,
		Date:            req.Date,
		Time:            req.Time,
		MeetingPoint:    req.MeetingPoint,
		MapsURL:         utils.MapsURL(req.MeetingPoint),
		Price:           utils.Round(req.Price),
		Category:        req.Category,
		Image:           req.Image,
		Organizer:       models.Organizer{Name: req.OrganizerName},
		Itinerary:       req.Itinerary,
		Passengers:      []string{},
		MinParticipants: req.MinParticipants,
		SpotsLeft:       req.Capacity,
	}
	e.RefreshIsPast(time.Now())

	if err := s.store.CreateExcursion(e); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}
	s.hub.Publish(Event{Type: "excursion", Data: e})
	return e, nil
}

// Update applies the non-nil fields of the admin update form.
func (s *ExcursionService) Update(id int, req *models.UpdateExcursionRequest) (*models.Excursion, error) {
	e, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Destination != nil {
		e.Destination = utils.NormalizeName(*req.Destination)
	}
	if req.Neighborhood != nil {
		e.Neighborhood = *req.Neighborhood
	}
	if req.Date != nil {
		if _, err := time.Parse("2006-01-02", *req.Date); err != nil {
			return nil, utils.NewValidationError("date must be YYYY-MM-DD")
		}
		e.Date = *req.Date
	}
	if req.Time != nil {
		if _, err := time.Parse("15:04", *req.Time); err != nil {
			return nil, utils.NewValidationError("time must be HH:MM")
		}
		e.Time = *req.Time
	}
	if req.MeetingPoint != nil {
		e.MeetingPoint = *req.MeetingPoint
		e.MapsURL = utils.MapsURL(*req.MeetingPoint)
	}
	if req.Price != nil {
		if err := utils.ValidatePositive(*req.Price, "price"); err != nil {
			return nil, err
		}
		e.Price = utils.Round(*req.Price)
	}
	if req.Category != nil {
		if err := utils.ValidateOneOf(*req.Category, "category", utils.ValidCategories); err != nil {
			return nil, err
		}
		e.Category = *req.Category
	}
	if req.Itinerary != nil {
		e.Itinerary = *req.Itinerary
	}
	if req.MinParticipants != nil {
		if err := utils.ValidateNonNegative(float64(*req.MinParticipants), "minParticipants"); err != nil {
			return nil, err
		}
		e.MinParticipants = *req.MinParticipants
	}
	e.RefreshIsPast(time.Now())

	if err := s.store.UpdateExcursion(e); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}
	s.hub.Publish(Event{Type: "excursion", Data: e})
	return e, nil
}

// Delete removes an excursion from the catalog.
func (s *ExcursionService) Delete(id int) error {
	if err := s.store.DeleteExcursion(id); err != nil {
		if err == repository.ErrExcursionNotFound {
			return utils.NewNotFoundError("excursion")
		}
		return utils.NewInternalError(utils.ErrFailedToStore)
	}
	s.hub.Publish(Event{Type: "excursion-deleted", Data: id})
	return nil
}
