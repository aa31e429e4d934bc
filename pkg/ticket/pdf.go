package ticket

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

const qrSize = 300

// Data is everything printed on a reservation ticket.
type Data struct {
	ReservationID string
	MovieTitle    string
	RoomName      string
	Date          time.Time
	Time          string // HH:MM:SS
	Seats         []string
	Total         float64
	HolderEmail   string
	CreatedAt     time.Time
}

// Render produces a one-page A4 PDF ticket. The QR code encodes the
// reservation id for check-in.
func Render(data Data) ([]byte, error) {
	qrPNG, err := QRCodePNG(data.ReservationID, qrSize)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Ticket "+data.ReservationID, false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 22)
	pdf.CellFormat(0, 12, clip(data.MovieTitle, 40), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	imgOpts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	imgName := "qr_" + data.ReservationID
	pdf.RegisterImageOptionsReader(imgName, imgOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions(imgName, (210.0-80.0)/2, pdf.GetY(), 80, 80, false, imgOpts, 0, "")
	pdf.Ln(84)

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.5)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.Ln(6)

	rows := [][2]string{
		{"Date", data.Date.Format("Monday, January 2, 2006")},
		{"Time", data.Time},
		{"Room", data.RoomName},
		{"Seats", strings.Join(data.Seats, ", ")},
		{"Total", fmt.Sprintf("%.2f", data.Total)},
		{"Holder", data.HolderEmail},
		{"Booked", data.CreatedAt.Format("2006-01-02 15:04")},
	}
	for _, row := range rows {
		pdf.SetX(30)
		pdf.SetFont("Arial", "", 14)
		pdf.CellFormat(40, 9, row[0]+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "B", 14)
		pdf.MultiCell(110, 9, row[1], "", "L", false)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, "Reservation "+data.ReservationID, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render ticket PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func clip(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max-3]) + "..."
}
