package request

type ReservationRequest struct {
	Screening string   `json:"screening" validate:"required,uuid"`
	SeatIDs   []string `json:"seats_ids" validate:"required,min=1,unique,dive,uuid"`
}
