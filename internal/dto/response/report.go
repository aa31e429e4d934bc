package response

type NamedValue struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type CategorySeries struct {
	Name   string       `json:"name"`
	Series []NamedValue `json:"series"`
}

type TotalUsersResponse struct {
	Total int `json:"total"`
}

type ReservationTotalsResponse struct {
	TotalNumber int     `json:"totalNumber"`
	TotalIncome float64 `json:"totalIncome"`
}
