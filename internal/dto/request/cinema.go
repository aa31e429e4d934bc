package request

type RoomRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=100"`
	NbRows    int    `json:"nbRows" validate:"required,gte=1,max=100"`
	NbColumns int    `json:"nbColumns" validate:"required,gte=1,max=100"`
}

// RoomUpdateRequest only renames a room; its seat grid is fixed.
type RoomUpdateRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type ScreeningRequest struct {
	MovieID string  `json:"movieId" validate:"required,uuid"`
	RoomID  string  `json:"roomId" validate:"required,uuid"`
	Price   float64 `json:"price" validate:"gte=0"`
	Date    string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time    string  `json:"time" validate:"required"`
}
