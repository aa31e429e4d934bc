package domain

// SeatPosition is one cell of a room's grid, both coordinates 1-based.
type SeatPosition struct {
	Row    int
	Number int
}

// SeatGrid lists every position of an nbRows x nbColumns room in row-major
// order. A non-positive dimension yields no seats.
func SeatGrid(nbRows, nbColumns int) []SeatPosition {
	if nbRows <= 0 || nbColumns <= 0 {
		return nil
	}

	grid := make([]SeatPosition, 0, nbRows*nbColumns)
	for row := 1; row <= nbRows; row++ {
		for number := 1; number <= nbColumns; number++ {
			grid = append(grid, SeatPosition{Row: row, Number: number})
		}
	}
	return grid
}
