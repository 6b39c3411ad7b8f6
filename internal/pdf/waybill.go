// Package pdf renders printable shipment documents.
package pdf

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"cargo-portal/config"
	"cargo-portal/internal/model"
)

const (
	pageWidth = 210.0
	margin    = 15.0
	lineH     = 6.0
)

// Waybill writes a single A4 waybill for s to w.
func Waybill(w io.Writer, s model.Shipment, site config.SiteConfig) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(margin, margin, margin)
	doc.SetAutoPageBreak(true, margin)
	doc.SetTitle(fmt.Sprintf("Waybill %s", s.TrackingNumber), true)
	doc.SetCreator(site.Name, true)
	if !s.CreatedAt.IsZero() {
		doc.SetCreationDate(s.CreatedAt)
	}
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	content := pageWidth - 2*margin

	// Header
	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(content/2, 10, tr(site.Name), "", 0, "L", false, 0, "")
	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(content/2, 10, "WAYBILL", "", 1, "R", false, 0, "")
	doc.SetFont("Helvetica", "", 9)
	contact := strings.Join(nonEmpty(site.Address, site.Phone, site.Email), "  |  ")
	doc.CellFormat(content, 5, tr(contact), "", 1, "L", false, 0, "")
	doc.Ln(3)

	doc.SetFillColor(235, 235, 235)
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(content, 9, tr("Tracking number: "+s.TrackingNumber), "1", 1, "C", true, 0, "")
	doc.Ln(4)

	// Parties
	partyW := content / 2
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(partyW, lineH, "Sender", "B", 0, "L", false, 0, "")
	doc.CellFormat(partyW, lineH, "Recipient", "B", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	left, right := partyLines(s.Sender), partyLines(s.Recipient)
	for i := 0; i < max(len(left), len(right)); i++ {
		doc.CellFormat(partyW, lineH, tr(at(left, i)), "", 0, "L", false, 0, "")
		doc.CellFormat(partyW, lineH, tr(at(right, i)), "", 1, "L", false, 0, "")
	}
	doc.Ln(4)

	// Shipment details
	section(doc, content, "Shipment")
	rows := [][2]string{
		{"Route", s.Origin + " -> " + s.Destination},
		{"Status", s.Status},
		{"Facility", s.FacilityName},
		{"Weight", fmt.Sprintf("%.2f kg", s.Weight)},
		{"Dimensions", dimensions(s.Dimensions)},
		{"Cost", money(s.Cost, s.Currency)},
		{"Created", date(s.CreatedAt)},
	}
	if s.EstimatedDelivery != nil {
		rows = append(rows, [2]string{"Estimated delivery", date(*s.EstimatedDelivery)})
	}
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(45, lineH, r[0], "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 10)
		doc.CellFormat(content-45, lineH, tr(r[1]), "", 1, "L", false, 0, "")
	}
	if d := PlainText(s.Description); d != "" {
		doc.Ln(2)
		doc.MultiCell(content, 5, tr(d), "", "L", false)
	}

	// History
	if len(s.Replies) > 0 {
		doc.Ln(4)
		section(doc, content, "History")
		for _, r := range s.Replies {
			doc.SetFont("Helvetica", "B", 9)
			doc.CellFormat(content, 5, tr(strings.TrimSpace(date(r.CreatedAt)+"  "+r.Author)), "", 1, "L", false, 0, "")
			doc.SetFont("Helvetica", "", 9)
			doc.MultiCell(content, 5, tr(PlainText(r.Message)), "", "L", false)
			doc.Ln(1)
		}
	}

	if doc.Err() {
		return fmt.Errorf("failed to render waybill: %w", doc.Error())
	}
	return doc.Output(w)
}

func section(doc *fpdf.Fpdf, width float64, title string) {
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(width, 7, title, "B", 1, "L", false, 0, "")
	doc.Ln(1)
}

func partyLines(p model.Party) []string {
	return nonEmpty(p.Name, p.Address, p.Phone, p.Email)
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func at(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}

func dimensions(d model.Dimensions) string {
	if d.Length == 0 && d.Width == 0 && d.Height == 0 {
		return ""
	}
	unit := d.Unit
	if unit == "" {
		unit = "cm"
	}
	return fmt.Sprintf("%g x %g x %g %s", d.Length, d.Width, d.Height, unit)
}

func money(amount float64, currency string) string {
	if currency == "" {
		currency = "USD"
	}
	return fmt.Sprintf("%.2f %s", amount, currency)
}

func date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02 Jan 2006")
}
