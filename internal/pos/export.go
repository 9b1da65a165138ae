package pos

import (
	"fmt"
	"io"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"

	"github.com/openpdv/pdvserver/internal/domain"
)

// exportRow is one line-item row of the accounting export.
type exportRow struct {
	OrderID   int64   `csv:"order_id"`
	OrderNo   string  `csv:"order_no"`
	TableID   int64   `csv:"table_id"`
	CreatedAt string  `csv:"created_at"`
	Product   string  `csv:"product"`
	UnitPrice float64 `csv:"unit_price"`
	Quantity  int     `csv:"quantity"`
	Subtotal  float64 `csv:"subtotal"`
	Total     float64 `csv:"order_total"`
}

func exportRows(orders []domain.Order) []exportRow {
	rows := make([]exportRow, 0, len(orders))
	for _, o := range orders {
		for _, it := range o.Items {
			rows = append(rows, exportRow{
				OrderID:   o.ID,
				OrderNo:   o.OrderNo,
				TableID:   o.TableID,
				CreatedAt: o.CreatedAt.Format("2006-01-02 15:04:05"),
				Product:   it.ProductName,
				UnitPrice: it.UnitPrice,
				Quantity:  it.Quantity,
				Subtotal:  it.Subtotal,
				Total:     o.Total,
			})
		}
	}
	return rows
}

// WriteCSV writes the report as CSV, one row per line item.
func (s *Report) WriteCSV(w io.Writer, orders []domain.Order) error {
	return gocsv.Marshal(exportRows(orders), w)
}

// WriteXLSX writes the report as an Excel workbook with a summary footer.
func (s *Report) WriteXLSX(w io.Writer, orders []domain.Order) error {
	f := excelize.NewFile()
	const sheet = "Sheet1"

	headers := []string{"order_id", "order_no", "table_id", "created_at", "product", "unit_price", "quantity", "subtotal", "order_total"}
	for i, h := range headers {
		f.SetCellValue(sheet, fmt.Sprintf("%s1", excelize.ToAlphaString(i)), h)
	}

	rows := exportRows(orders)
	for i, r := range rows {
		n := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", n), r.OrderID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", n), r.OrderNo)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", n), r.TableID)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", n), r.CreatedAt)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", n), r.Product)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", n), r.UnitPrice)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", n), r.Quantity)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", n), r.Subtotal)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", n), r.Total)
	}

	sum := s.Summarize(orders)
	footer := len(rows) + 3
	f.SetCellValue(sheet, fmt.Sprintf("A%d", footer), "orders")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", footer), sum.Count)
	f.SetCellValue(sheet, fmt.Sprintf("A%d", footer+1), "total_sum")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", footer+1), sum.TotalSum)

	return f.Write(w)
}
