package utils

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/driveazur/car-rental-app/models"
)

// DocumentRenderer turns a flat reservation record into a byte stream.
type DocumentRenderer interface {
	RenderReservation(doc models.ReservationDocument) ([]byte, error)
}

// Renderer is the process-wide document renderer.
var Renderer DocumentRenderer = PDFRenderer{}

// PDFRenderer renders booking confirmations with gofpdf.
type PDFRenderer struct{}

func (PDFRenderer) RenderReservation(doc models.ReservationDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "Reservation Confirmation")
	pdf.Ln(16)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Reservation #%d", doc.ReservationID))
	pdf.Ln(12)

	rows := [][2]string{
		{"Customer", doc.CustomerName},
		{"Email", doc.CustomerEmail},
		{"Phone", doc.CustomerPhone},
		{"Age", fmt.Sprintf("%d", doc.CustomerAge)},
		{"Car", doc.CarBrand + " " + doc.CarModel},
		{"Pickup location", doc.PickupLocation},
		{"Return location", doc.ReturnLocation},
		{"Pickup date", doc.PickupDate},
		{"Return date", doc.ReturnDate},
		{"Driver", doc.Driver},
		{"Status", doc.Status},
		{"Total cost", fmt.Sprintf("%.2f", doc.TotalCost)},
	}

	pdf.SetFont("Arial", "", 11)
	for _, row := range rows {
		pdf.CellFormat(50, 8, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(120, 8, row[1], "1", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
