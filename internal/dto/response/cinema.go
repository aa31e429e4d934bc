package response

import (
	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/domain"
)

type RoomResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	NbRows    int    `json:"nbRows"`
	NbColumns int    `json:"nbColumns"`
}

type SeatResponse struct {
	ID     string `json:"id"`
	Row    int    `json:"row"`
	Number int    `json:"number"`
	Taken  *bool  `json:"taken,omitempty"`
}

type ScreeningMovie struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Duration int    `json:"duration"`
}

type ScreeningRoom struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ScreeningResponse struct {
	ID     string         `json:"id"`
	Price  float64        `json:"price"`
	Date   string         `json:"date"`
	Time   string         `json:"time"`
	Status string         `json:"status"`
	Movie  ScreeningMovie `json:"movie"`
	Room   ScreeningRoom  `json:"room"`
}

// Helper converters
func RoomToResponse(room *entity.Room) RoomResponse {
	return RoomResponse{
		ID:        room.ID.String(),
		Name:      room.Name,
		NbRows:    room.NbRows,
		NbColumns: room.NbColumns,
	}
}

func SeatToResponse(seat *entity.Seat) SeatResponse {
	return SeatResponse{
		ID:     seat.ID.String(),
		Row:    seat.Row,
		Number: seat.Number,
	}
}

func SeatAvailabilityToResponse(seat *entity.SeatAvailability) SeatResponse {
	resp := SeatToResponse(&seat.Seat)
	taken := seat.Taken
	resp.Taken = &taken
	return resp
}

// ScreeningToResponse derives the status from snap, the request's "now".
func ScreeningToResponse(screening *entity.ScreeningView, snap domain.Snapshot) ScreeningResponse {
	return ScreeningResponse{
		ID:     screening.ID.String(),
		Price:  screening.Price,
		Date:   screening.Date.Format(domain.DateLayout),
		Time:   domain.FormatClock(screening.Time),
		Status: snap.Status(screening.Date, screening.Time),
		Movie: ScreeningMovie{
			ID:       screening.MovieID.String(),
			Title:    screening.MovieTitle,
			Duration: screening.MovieDuration,
		},
		Room: ScreeningRoom{
			ID:   screening.RoomID.String(),
			Name: screening.RoomName,
		},
	}
}

func ScreeningsToResponse(screenings []*entity.ScreeningView, snap domain.Snapshot) []ScreeningResponse {
	result := make([]ScreeningResponse, len(screenings))
	for i, screening := range screenings {
		result[i] = ScreeningToResponse(screening, snap)
	}
	return result
}
