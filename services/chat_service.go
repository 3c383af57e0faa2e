package services

import (
	"time"

	"github.com/rotatijuca/excursio-backend/models"
	"github.com/rotatijuca/excursio-backend/repository"
	"github.com/rotatijuca/excursio-backend/utils"
)

// ChatService manages the per-excursion group chat.
type ChatService struct {
	store      repository.Store
	excursions *ExcursionService
	hub        *EventHub
}

// NewChatService creates a chat service.
func NewChatService(store repository.Store, excursions *ExcursionService, hub *EventHub) *ChatService {
	return &ChatService{store: store, excursions: excursions, hub: hub}
}

// Post appends a message to an excursion's chat. Messages from the
// excursion's organizer are flagged.
func (s *ChatService) Post(excursionID int, user, text string) (*models.ChatMessage, error) {
	user = utils.NormalizeName(user)
	if err := utils.ValidateRequired(user, "user"); err != nil {
		return nil, err
	}
	if err := utils.ValidateRequired(text, "text"); err != nil {
		return nil, err
	}

	excursion, err := s.excursions.GetByID(excursionID)
	if err != nil {
		return nil, err
	}

	message := &models.ChatMessage{
		ExcursionID: excursion.ID,
		User:        user,
		Text:        text,
		IsOrganizer: utils.EqualNames(user, excursion.Organizer.Name),
		Timestamp:   time.Now(),
	}
	if err := s.store.AppendChatMessage(message); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	s.hub.Publish(Event{Type: "chat", Data: message})
	return message, nil
}

// List returns an excursion's chat in insertion order.
func (s *ChatService) List(excursionID int) ([]models.ChatMessage, error) {
	if _, err := s.excursions.GetByID(excursionID); err != nil {
		return nil, err
	}

	messages, err := s.store.ListChatMessages(excursionID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	return messages, nil
}
