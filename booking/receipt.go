package booking

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"hostelhub/models"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// WriteReceipt renders a one-page PDF confirmation for b. The QR code
// encodes the booking id for check-in desks.
func WriteReceipt(w io.Writer, b models.Booking) error {
	qrPNG, err := qrcode.Encode("booking:"+b.ID, qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("generate qr code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Booking Confirmation")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	lines := []string{
		"Booking ID: " + b.ID,
		"Status: " + strings.ToUpper(string(b.Status)),
		"Hostel: " + orDash(b.HostelName),
		"Room type: " + string(b.RoomType),
		fmt.Sprintf("Stay: %s - %s (%d nights)", b.CheckIn, b.CheckOut, b.CheckIn.Nights(b.CheckOut)),
		"Guest: " + b.Contact.FullName,
		"Email: " + b.Contact.Email,
		"Phone: " + b.Contact.Phone,
		"Price: " + orDash(b.Price),
		"Booked on: " + b.BookingDate.String(),
	}
	if b.SpecialRequests != "" {
		lines = append(lines, "Special requests: "+b.SpecialRequests)
	}
	for _, l := range lines {
		pdf.Cell(0, 10, l)
		pdf.Ln(8)
	}

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 30, 40, 40, false, imageOpts, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
