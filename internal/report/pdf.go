// Package report renders the daily appointment report as a PDF.
package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"

	domain "github.com/BruksfildServices01/agenda-online/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-online/internal/timezone"
)

const (
	barMaxWidth = 100.0
	rowHeight   = 8.0
)

// WritePDF writes a table of rows (date, total, bar scaled to maxTotal).
func WritePDF(w io.Writer, rows []domain.DailyCount, maxTotal int64, generatedAt time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(tr("Relatório de agendamentos"), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr("Relatório de agendamentos"))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Gerado em %s", generatedAt.Format("02/01/2006 15:04"))))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(35, rowHeight, "Data", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, rowHeight, "Total", "1", 0, "C", true, 0, "")
	pdf.CellFormat(barMaxWidth+10, rowHeight, "", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	if len(rows) == 0 {
		pdf.CellFormat(170, rowHeight, tr("Nenhum agendamento no período."), "1", 1, "C", false, 0, "")
	}

	pdf.SetFillColor(13, 110, 253)
	for _, r := range rows {
		y := pdf.GetY()
		pdf.CellFormat(35, rowHeight, timezone.FormatBookingDate(r.Date), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, rowHeight, fmt.Sprintf("%d", r.Total), "1", 0, "C", false, 0, "")

		x := pdf.GetX()
		pdf.CellFormat(barMaxWidth+10, rowHeight, "", "1", 1, "", false, 0, "")
		if width := barWidth(r.Total, maxTotal); width > 0 {
			pdf.Rect(x+5, y+2, width, rowHeight-4, "F")
		}
	}

	return pdf.Output(w)
}

// Bytes is WritePDF into memory.
func Bytes(rows []domain.DailyCount, maxTotal int64, generatedAt time.Time) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, rows, maxTotal, generatedAt); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func barWidth(total, maxTotal int64) float64 {
	if maxTotal <= 0 || total <= 0 {
		return 0
	}
	return barMaxWidth * float64(total) / float64(maxTotal)
}
