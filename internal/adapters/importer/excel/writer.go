package excel

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ndtrung/khoban/internal/domain"
)

const exportSheet = "Xuất hàng TMDT"

var exportHeader = []any{
	"STT", "Nguồn đơn hàng", "Order ID", "Tracking ID", "Số SKU",
	"Lý do hoàn", "Ngày hoàn", "Shipping Provider", "Tổng tiền",
	"Trạng thái", "Ghi chú",
}

var exportWidths = []float64{5, 15, 22, 18, 8, 15, 12, 15, 12, 15, 30}

// WriteOrders renders the slips into an xlsx workbook with the column layout
// the shop's spreadsheets have used all along.
func WriteOrders(w io.Writer, orders []domain.EcommerceOrder) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(exportSheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	for i, width := range exportWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(exportSheet, col, col, width); err != nil {
			return err
		}
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return err
	}
	for i, o := range orders {
		status := "Đang xử lý"
		if o.Status == domain.OrderStatusCompleted {
			status = "Hoàn thành"
		}
		row := []any{
			i + 1,
			o.CustomerName,
			o.Code,
			o.TrackingID(),
			len(o.Items),
			o.Reason,
			o.Date.Format("02/01/2006"),
			o.Shipment.Carrier,
			o.TotalAmount,
			status,
			o.Notes,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return err
		}
	}

	_, err = f.WriteTo(w)
	return err
}
