// Package invoice renders booking invoices as PDF and caches the result.
package invoice

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/YarKhan02/Workshop-sub000/models"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

const qrImage = "booking-qr"

// Render writes an A4 invoice for booking to w.
func Render(w io.Writer, booking models.Booking, company models.Company) error {
	qrPNG, err := qrcode.Encode(qrPayload(booking), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	money := func(amount string) string { return tr(FormatAmount(company.Currency, amount)) }

	pdf.SetTitle(Number(booking.ID), true)
	pdf.SetAuthor(company.Name, true)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(120, 10, tr(company.Name))
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "INVOICE", "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(120, 6, tr(company.Address))
	pdf.CellFormat(0, 6, Number(booking.ID), "", 1, "R", false, 0, "")
	pdf.Cell(120, 6, "")
	if !booking.CreatedAt.IsZero() {
		pdf.CellFormat(0, 6, "Issued "+booking.CreatedAt.Format("02 Jan 2006"), "", 1, "R", false, 0, "")
	} else {
		pdf.Ln(6)
	}
	pdf.Ln(6)

	section(pdf, "Billed to")
	pdf.Cell(0, 6, tr(booking.CustomerName))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(booking.CustomerEmail))
	pdf.Ln(10)

	v := booking.Vehicle
	section(pdf, "Vehicle")
	pdf.Cell(0, 6, tr(strings.TrimSpace(fmt.Sprintf("%s %s %s", v.Year, v.Make, v.Model))))
	pdf.Ln(6)
	plate := "Plate " + v.LicensePlate
	if v.Color != "" {
		plate += ", " + v.Color
	}
	pdf.Cell(0, 6, tr(plate))
	pdf.Ln(10)

	section(pdf, "Appointment")
	slot := booking.TimeSlot
	date := slot.Date
	if date == "" {
		date = booking.ScheduledDate
	}
	pdf.Cell(0, 6, tr(FormatSchedule(date, slot.StartTime, slot.EndTime)))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Status: "+string(booking.Status))
	pdf.Ln(12)

	// Line items
	pdf.SetFillColor(235, 235, 235)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(110, 8, "Service", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Duration", "1", 0, "C", true, 0, "")
	pdf.CellFormat(0, 8, "Amount", "1", 1, "R", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(110, 8, tr(booking.Service.Name), "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, durationLabel(booking.Service.Duration), "1", 0, "C", false, 0, "")
	pdf.CellFormat(0, 8, money(booking.Amounts.Subtotal), "1", 1, "R", false, 0, "")
	pdf.Ln(4)

	total := func(label, amount string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 11)
		pdf.CellFormat(140, 7, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(0, 7, money(amount), "", 1, "R", false, 0, "")
	}
	total("Subtotal", booking.Amounts.Subtotal, false)
	total("Tax", booking.Amounts.Tax, false)
	if d := booking.Amounts.Discount; d != "" && !isZero(d) {
		total("Discount", "-"+strings.TrimPrefix(d, "-"), false)
	}
	total("Total", booking.Amounts.Total, true)

	if booking.Notes != "" {
		pdf.Ln(6)
		section(pdf, "Notes")
		pdf.MultiCell(120, 6, tr(booking.Notes), "", "L", false)
	}

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(qrImage, imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions(qrImage, 160, 240, 35, 35, false, imageOpts, 0, "")

	pdf.SetY(-25)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 6, tr("Thank you for choosing "+company.Name), "", 0, "C", false, 0, "")

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to build invoice: %w", err)
	}
	return pdf.Output(w)
}

// Generate renders the invoice into memory.
func Generate(booking models.Booking, company models.Company) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, booking, company); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 6, title)
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
}

func qrPayload(booking models.Booking) string {
	return fmt.Sprintf("%s|%s|%s", Number(booking.ID), booking.ID, booking.Amounts.Total)
}

func durationLabel(minutes int) string {
	if minutes <= 0 {
		return "-"
	}
	if minutes < 60 {
		return strconv.Itoa(minutes) + " min"
	}
	if minutes%60 == 0 {
		return fmt.Sprintf("%d h", minutes/60)
	}
	return fmt.Sprintf("%d h %d min", minutes/60, minutes%60)
}

func isZero(amount string) bool {
	f, err := strconv.ParseFloat(amount, 64)
	return err == nil && f == 0
}
