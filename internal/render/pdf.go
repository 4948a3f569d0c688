package render

import (
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/board"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/game"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/usecase/record"
)

const (
	pageMargin = 25.0 // mm
	gridTop    = 40.0
	gridWidth  = 160.0
	cell       = gridWidth / (board.Size - 1)
	stoneRad   = cell * 0.47
)

var hoshi = []int{3, 9, 15}

// PDF writes a one page A4 diagram of snap to w.
func PDF(w io.Writer, snap game.Snapshot, title string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	if title == "" {
		title = "Game record"
	}
	pdf.CellFormat(0, 10, pdf.UnicodeTranslatorFromDescriptor("")(title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, Caption(snap), "", 1, "C", false, 0, "")

	drawGrid(pdf)
	drawStones(pdf, snap)

	return pdf.Output(w)
}

func pos(i int) (float64, float64) {
	return pageMargin + float64(i)*cell, gridTop + float64(i)*cell
}

func drawGrid(pdf *gofpdf.Fpdf) {
	pdf.SetFillColor(220, 179, 92)
	pdf.Rect(pageMargin-cell, gridTop-cell, gridWidth+2*cell, gridWidth+2*cell, "F")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	for i := 0; i < board.Size; i++ {
		x, y := pos(i)
		pdf.Line(x, gridTop, x, gridTop+gridWidth)
		pdf.Line(pageMargin, y, pageMargin+gridWidth, y)
	}

	pdf.SetFillColor(0, 0, 0)
	for _, hx := range hoshi {
		for _, hy := range hoshi {
			x, _ := pos(hx)
			_, y := pos(hy)
			pdf.Circle(x, y, 0.8, "F")
		}
	}

	pdf.SetFont("Helvetica", "", 8)
	for i := 0; i < board.Size; i++ {
		x, y := pos(i)
		pdf.Text(x-1, gridTop-cell*0.6, record.ColumnLabel(i))
		pdf.Text(pageMargin-cell*0.9, y+1, strconv.Itoa(board.Size-i))
	}
}

func drawStones(pdf *gofpdf.Fpdf, snap game.Snapshot) {
	for _, c := range []board.Color{board.Black, board.White} {
		for _, p := range snap.Board.Stones(c) {
			x, _ := pos(p.X)
			_, y := pos(p.Y)
			if c == board.Black {
				pdf.SetFillColor(0, 0, 0)
			} else {
				pdf.SetFillColor(255, 255, 255)
			}
			pdf.Circle(x, y, stoneRad, "FD")
		}
	}

	if snap.LastMove == nil || snap.LastMove.IsPass {
		return
	}
	x, _ := pos(snap.LastMove.X)
	_, y := pos(snap.LastMove.Y)
	if snap.LastMove.Player == board.Black {
		pdf.SetDrawColor(255, 255, 255)
	} else {
		pdf.SetDrawColor(0, 0, 0)
	}
	pdf.SetLineWidth(0.5)
	pdf.Circle(x, y, stoneRad*0.5, "D")
}
