package excel

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/ndtrung/khoban/internal/domain"
	"github.com/ndtrung/khoban/internal/usecase"
)

// ErrUnknownFormat is returned when the sheet matches neither marketplace
// layout.
var ErrUnknownFormat = errors.New("spreadsheet is neither a TikTok nor a Shopee export")

const (
	SourceTikTok = "TIKTOK"
	SourceShopee = "SHOPEE"
)

// row is one spreadsheet row keyed by header text.
type row map[string]string

func (r row) get(keys ...string) string {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != "" {
			return v
		}
	}
	return ""
}

func (r row) getInt(def int, keys ...string) int {
	v := strings.TrimSpace(r.get(keys...))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func (r row) getFloat(keys ...string) float64 {
	v := strings.ReplaceAll(strings.TrimSpace(r.get(keys...)), ",", "")
	f, _ := strconv.ParseFloat(v, 64)
	return f
}

// ReadOrders parses a marketplace return spreadsheet into an import batch.
// Rows are grouped by order id in sheet order; one order per group.
func ReadOrders(rd io.Reader) (*usecase.ImportBatch, error) {
	f, err := excelize.OpenReader(rd)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(raw) < 2 {
		return nil, ErrUnknownFormat
	}

	header := raw[0]
	rows := make([]row, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		m := row{}
		for i, h := range header {
			if i < len(cells) {
				m[strings.TrimSpace(h)] = strings.TrimSpace(cells[i])
			}
		}
		rows = append(rows, m)
	}

	switch {
	case hasHeader(header, "Order ID") || hasHeader(header, "Cancelled Time"):
		return groupOrders(SourceTikTok, rows, tiktokRow), nil
	case hasHeader(header, "Mã đơn hàng") || hasHeader(header, "Đơn Vị Vận Chuyển"):
		return groupOrders(SourceShopee, rows, shopeeRow), nil
	default:
		return nil, ErrUnknownFormat
	}
}

func hasHeader(header []string, name string) bool {
	for _, h := range header {
		if strings.TrimSpace(h) == name {
			return true
		}
	}
	return false
}

// parsedRow is one line item plus the order-level fields it carries.
type parsedRow struct {
	orderID  string
	item     domain.OrderItem
	date     string
	carrier  string
	tracking string
	reason   string
	customer string
	amount   float64
}

func tiktokRow(r row) (parsedRow, bool) {
	orderID := r.get("Order ID")
	name := r.get("Product Name")
	tracking := r.get("Tracking ID")
	// The TikTok template ships a second header row describing each column.
	if strings.Contains(orderID, "Platform unique") || strings.Contains(tracking, "order's tracking") {
		return parsedRow{}, false
	}
	if orderID == "" || name == "" {
		return parsedRow{}, false
	}
	variation := r.get("Variation")
	qty := r.getInt(1, "Quantity of return", "Quantity of Return")
	amount := r.getFloat("Order Amount")
	return parsedRow{
		orderID: orderID,
		item: domain.OrderItem{
			ProductName: joinVariation(name, variation),
			Color:       variation,
			VariantSKU:  r.get("SKU", "Sku"),
			Quantity:    qty,
			UnitPrice:   safeDiv(amount, qty),
			Total:       amount,
		},
		date:     r.get("Cancelled Time", "Cancelled time"),
		carrier:  r.get("Shipping Provider Name"),
		tracking: tracking,
		reason:   "Hủy đơn TikTok",
		customer: "TikTok",
		amount:   amount,
	}, true
}

func shopeeRow(r row) (parsedRow, bool) {
	orderID := r.get("Mã đơn hàng")
	name := r.get("Tên sản phẩm", "Tên Sản Phẩm")
	if orderID == "" || name == "" {
		return parsedRow{}, false
	}
	variation := r.get("Tên phân loại hàng", "Phân loại hàng")
	qty := r.getInt(1, "Số lượng")
	amount := r.getFloat("Tổng giá bán (sản phẩm)", "Tổng cộng")
	reason := r.get("Trạng Thái Đơn Hàng")
	if reason == "" {
		reason = "Hủy đơn Shopee"
	}
	return parsedRow{
		orderID: orderID,
		item: domain.OrderItem{
			ProductName: joinVariation(name, variation),
			Color:       variation,
			VariantSKU:  r.get("Mã phân loại hàng", "SKU phân loại hàng"),
			Quantity:    qty,
			UnitPrice:   safeDiv(amount, qty),
			Total:       amount,
		},
		date:     r.get("Ngày gửi hàng", "Thời gian tạo đơn hàng"),
		carrier:  r.get("Đơn Vị Vận Chuyển"),
		tracking: r.get("Mã vận đơn"),
		reason:   reason,
		customer: "Shopee",
		amount:   amount,
	}, true
}

func joinVariation(name, variation string) string {
	if variation == "" {
		return name
	}
	return name + " - " + variation
}

func safeDiv(amount float64, qty int) float64 {
	if qty == 0 {
		return 0
	}
	return amount / float64(qty)
}

func groupOrders(source string, rows []row, parse func(row) (parsedRow, bool)) *usecase.ImportBatch {
	batch := &usecase.ImportBatch{Source: source}

	groups := map[string][]parsedRow{}
	var order []string
	for _, r := range rows {
		pr, ok := parse(r)
		if !ok {
			continue
		}
		if _, seen := groups[pr.orderID]; !seen {
			order = append(order, pr.orderID)
		}
		groups[pr.orderID] = append(groups[pr.orderID], pr)
	}

	for _, id := range order {
		lines := groups[id]
		first := lines[0]

		tracking := strings.TrimSpace(first.tracking)
		if tracking == "" || tracking == "N/A" || tracking == "—" {
			log.Warn().Str("order", id).Msg("import: skipping order without tracking id")
			batch.SkippedNoTracking++
			continue
		}

		var items []domain.OrderItem
		totalQty := 0
		totalAmount := 0.0
		for _, l := range lines {
			items = append(items, l.item)
			totalQty += l.item.Quantity
			totalAmount += l.amount
		}

		shipment := domain.Shipment{
			Carrier:       first.carrier,
			TrackingID:    tracking,
			SKUCount:      len(items),
			TotalQuantity: totalQty,
		}
		batch.Orders = append(batch.Orders, domain.EcommerceOrder{
			Code:         id,
			CustomerName: first.customer,
			Reason:       first.reason,
			Date:         parseDate(first.date),
			Status:       domain.OrderStatusPending,
			Items:        items,
			TotalAmount:  totalAmount,
			Shipment:     shipment,
			Notes:        shipment.NotesLine(),
		})
	}
	return batch
}

func parseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{
		"2006-01-02 15:04:05", "2006-01-02 15:04", "2006-01-02",
		"02/01/2006 15:04", "02/01/2006",
	} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Now()
}
