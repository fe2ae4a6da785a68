package components

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

const columnWidth = 64

// GridSource is the read side of the cell store.
type GridSource interface {
	RowCount() int
	ColumnCount() int
	ColumnLabels() []string
	Cell(row, col int) string
}

// GridTable renders a GridSource as a read-only table with column headers
// and no row labels.
type GridTable struct {
	source GridSource
	labels []string
	table  *widget.Table
}

func NewGridTable(source GridSource) *GridTable {
	gt := &GridTable{
		source: source,
		labels: source.ColumnLabels(),
	}

	gt.table = widget.NewTableWithHeaders(gt.dimensions, gt.createCell, gt.updateCell)
	gt.table.ShowHeaderColumn = false
	gt.table.CreateHeader = gt.createHeader
	gt.table.UpdateHeader = gt.updateHeader

	for col := range gt.labels {
		gt.table.SetColumnWidth(col, columnWidth)
	}
	return gt
}

func (gt *GridTable) dimensions() (int, int) {
	return gt.source.RowCount(), gt.source.ColumnCount()
}

func (gt *GridTable) createCell() fyne.CanvasObject {
	label := widget.NewLabel("000.00")
	label.Alignment = fyne.TextAlignTrailing
	return label
}

func (gt *GridTable) updateCell(id widget.TableCellID, obj fyne.CanvasObject) {
	label := obj.(*widget.Label)
	rows, cols := gt.dimensions()
	if id.Row < 0 || id.Row >= rows || id.Col < 0 || id.Col >= cols {
		label.SetText("")
		return
	}
	label.SetText(gt.source.Cell(id.Row, id.Col))
}

func (gt *GridTable) createHeader() fyne.CanvasObject {
	label := widget.NewLabel("x00")
	label.TextStyle.Bold = true
	label.Alignment = fyne.TextAlignCenter
	return label
}

func (gt *GridTable) updateHeader(id widget.TableCellID, obj fyne.CanvasObject) {
	label := obj.(*widget.Label)
	if id.Row >= 0 {
		label.SetText(strconv.Itoa(id.Row + 1))
		return
	}
	if id.Col >= 0 && id.Col < len(gt.labels) {
		label.SetText(gt.labels[id.Col])
	}
}

func (gt *GridTable) Refresh() {
	gt.table.Refresh()
}

func (gt *GridTable) Widget() *widget.Table {
	return gt.table
}
