// repository/seed.go
package repository

import (
	"time"

	"github.com/rotatijuca/excursio-backend/models"
	"github.com/rotatijuca/excursio-backend/utils"
)

// seed loads the sample catalog and reviews the product ships with.
func (s *MemStore) seed() {
	s.excursions = sampleExcursions()
	s.ratings = sampleRatings()
	s.nextExcursionID = 5
	s.nextRatingID = 7
	s.nextWithdrawalID = 1
	s.nextMessageID = 1

	now := time.Now()
	for i := range s.excursions {
		s.excursions[i].RefreshIsPast(now)
		s.excursions[i].MapsURL = utils.MapsURL(s.excursions[i].MeetingPoint)
	}
}

func sampleExcursions() []models.Excursion {
	return []models.Excursion{
		{
			ID:           1,
			Destination:  "Praia de Copacabana",
			Neighborhood: "Tijuca",
			Date:         "2025-10-26",
			Time:         "07:00",
			MeetingPoint: "Praça Saens Peña (metrô)",
			Price:        95.50,
			SpotsLeft:    5,
			Category:     utils.CategoryBeach,
			Organizer:    models.Organizer{Name: "Beto Viagens", Rating: 4.8, Reviews: 120},
			Itinerary:    "Saída da Tijuca, parada para café da manhã (não incluso), dia livre na praia de Copacabana, retorno às 17h.",
			Passengers: []string{
				"Ana Silva", "Carlos Souza", "Mariana Lima",
				"Pedro Costa", "Juliana Alves", "Fernando Martins",
			},
			MinParticipants:     0,
			CurrentParticipants: 6,
		},
		{
			ID:           2,
			Destination:  "Feirinha de Itaipava",
			Neighborhood: "Tijuca",
			Date:         "2025-08-25",
			Time:         "08:30",
			MeetingPoint: "Shopping Tijuca (porta principal)",
			Price:        70.00,
			SpotsLeft:    0,
			Category:     utils.CategoryShopping,
			Organizer:    models.Organizer{Name: "Rio Serra Tour", Rating: 4.9, Reviews: 85},
			Itinerary:    "Viagem tranquila até a serra, 4 horas livres para compras na Feirinha de Itaipava, parada para lanche no retorno.",
			Passengers: []string{
				"Ricardo Nunes", "Lúcia Pereira", "Beatriz Santos",
			},
			MinParticipants:     0,
			CurrentParticipants: 15,
		},
		{
			ID:           3,
			Destination:  "Passeio em Angra dos Reis",
			Neighborhood: "Tijuca",
			Date:         "2025-09-10",
			Time:         "06:00",
			MeetingPoint: "Rua Uruguai, 480",
			Price:        180.00,
			SpotsLeft:    8,
			Category:     utils.CategoryTourism,
			Organizer:    models.Organizer{Name: "Beto Viagens", Rating: 4.8, Reviews: 120},
			Itinerary:    "Passeio de escuna pelas principais ilhas de Angra, com parada para mergulho e almoço (incluso).",
			Passengers: []string{
				"Marcos Andrade", "Sofia Ribeiro", "Tiago Almeida", "Clara Ferreira",
				"Eduardo Barros", "Helena Gomes", "Fábio Rocha", "Isabela Pinto",
			},
			MinParticipants:     15,
			CurrentParticipants: 7,
		},
		{
			ID:                  4,
			Destination:         "Tour Histórico em Petrópolis",
			Neighborhood:        "Tijuca",
			Date:                "2024-07-20",
			Time:                "08:00",
			MeetingPoint:        "Praça Afonso Pena",
			Price:               110.00,
			SpotsLeft:           0,
			Category:            utils.CategoryTourism,
			Organizer:           models.Organizer{Name: "Rio Serra Tour", Rating: 4.9, Reviews: 85},
			Itinerary:           "Visita ao Museu Imperial, Palácio de Cristal e tempo livre na Rua Teresa para compras.",
			Passengers:          []string{"Maria Clara"},
			MinParticipants:     0,
			CurrentParticipants: 20,
		},
	}
}

func sampleRatings() []models.Rating {
	return []models.Rating{
		{ID: 1, UserName: "Ana Silva", UserEmail: "ana.silva@email.com", Rating: 5, Comment: "Organizador excelente! Viagem muito bem planejada e executada. Recomendo!", Date: "2025-01-20", TripID: 1, TripDestination: "Praia de Copacabana"},
		{ID: 2, UserName: "Carlos Souza", UserEmail: "carlos.souza@email.com", Rating: 4, Comment: "Boa organização, apenas alguns pequenos atrasos no cronograma.", Date: "2025-01-18", TripID: 1, TripDestination: "Praia de Copacabana"},
		{ID: 3, UserName: "Mariana Lima", UserEmail: "mariana.lima@email.com", Rating: 5, Comment: "Perfeito! Atendimento impecável e viagem inesquecível.", Date: "2025-01-15", TripID: 2, TripDestination: "Feirinha de Itaipava"},
		{ID: 4, UserName: "Ricardo Nunes", UserEmail: "ricardo.nunes@email.com", Rating: 3, Comment: "Viagem ok, mas poderia ter mais atividades incluídas.", Date: "2025-01-12", TripID: 2, TripDestination: "Feirinha de Itaipava"},
		{ID: 5, UserName: "Lúcia Pereira", UserEmail: "lucia.pereira@email.com", Rating: 5, Comment: "Organizador muito atencioso e profissional. Viagem superou expectativas!", Date: "2025-01-10", TripID: 3, TripDestination: "Passeio em Angra dos Reis"},
		{ID: 6, UserName: "João Santos", UserEmail: "joao.santos@email.com", Rating: 4, Comment: "Muito bom! Apenas o transporte poderia ser mais confortável.", Date: "2025-01-08", TripID: 3, TripDestination: "Passeio em Angra dos Reis"},
	}
}
