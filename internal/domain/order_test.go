package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShipmentNotesRoundTrip(t *testing.T) {
	s := Shipment{Carrier: "GHN Express", TrackingID: "VN123456789", SKUCount: 2, TotalQuantity: 5}
	line := s.NotesLine()
	assert.Equal(t, "Shipping: GHN Express | Tracking: VN123456789 | 2 SKU | SL: 5", line)
	assert.Equal(t, s, ParseShipmentNotes(line))
}

func TestParseShipmentNotes(t *testing.T) {
	cases := []struct {
		name  string
		notes string
		want  Shipment
	}{
		{
			name:  "tracking bounded by pipe",
			notes: "Shipping: SPX | Tracking: SPXVN0123 | 1 SKU | SL: 1",
			want:  Shipment{Carrier: "SPX", TrackingID: "SPXVN0123", SKUCount: 1, TotalQuantity: 1},
		},
		{
			name:  "tracking at end of string",
			notes: "Tracking: ABC999",
			want:  Shipment{TrackingID: "ABC999"},
		},
		{
			name:  "value is trimmed",
			notes: "Tracking:   ABC999   | 3 SKU",
			want:  Shipment{TrackingID: "ABC999", SKUCount: 3},
		},
		{
			name:  "n/a counts as absent",
			notes: "Shipping: N/A | Tracking: N/A | 0 SKU | SL: 0",
			want:  Shipment{},
		},
		{
			name:  "no structured segments",
			notes: "khách hẹn giao lại",
			want:  Shipment{},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ParseShipmentNotes(c.notes))
		})
	}
}

func TestOrderTrackingIDFallsBackToNotes(t *testing.T) {
	o := EcommerceOrder{Notes: "Shipping: GHTK | Tracking: LEGACY42 | 1 SKU | SL: 2"}
	assert.Equal(t, "LEGACY42", o.TrackingID())

	o.Shipment.TrackingID = "STRUCTURED7"
	assert.Equal(t, "STRUCTURED7", o.TrackingID())
}
