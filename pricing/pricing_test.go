package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ronautumn/hhnyc-api/models"
)

var testSettings = []models.DeliverySetting{
	{Borough: "Brooklyn", DeliveryFee: 5, FreeDeliveryMinimum: 50},
	{Borough: "Manhattan", DeliveryFee: 10, FreeDeliveryMinimum: 100},
}

func TestSubtotal(t *testing.T) {
	lines := []Line{
		{Price: 20, Quantity: 2},
		{Price: 7.5, Quantity: 3},
	}
	assert.Equal(t, 62.5, Subtotal(lines))
	assert.Equal(t, 0.0, Subtotal(nil))
}

func TestComputeTotals_Delivery(t *testing.T) {
	tests := []struct {
		name    string
		lines   []Line
		borough string
		wantFee float64
	}{
		{"below free minimum", []Line{{Price: 20, Quantity: 2}}, "Brooklyn", 5},
		{"at free minimum", []Line{{Price: 25, Quantity: 2}}, "Brooklyn", 0},
		{"above free minimum", []Line{{Price: 27.5, Quantity: 2}}, "Brooklyn", 0},
		{"borough lookup is case-insensitive", []Line{{Price: 20, Quantity: 2}}, "brooklyn", 5},
		{"unknown borough gets no fee", []Line{{Price: 20, Quantity: 2}}, "Hoboken", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.lines, models.MethodDelivery, tt.borough, testSettings, Options{})
			assert.Equal(t, tt.wantFee, got.Fee)
			assert.Equal(t, got.Subtotal+got.Fee, got.Total)
		})
	}
}

// Cart with one $20 item at qty 2 pays Brooklyn's $5 fee; raising the
// subtotal past the $50 minimum makes delivery free.
func TestComputeTotals_BrooklynScenario(t *testing.T) {
	got := ComputeTotals([]Line{{Price: 20, Quantity: 2}}, models.MethodDelivery, "Brooklyn", testSettings, Options{})
	assert.Equal(t, Totals{Subtotal: 40, Fee: 5, Total: 45}, got)

	got = ComputeTotals([]Line{{Price: 27.5, Quantity: 2}}, models.MethodDelivery, "Brooklyn", testSettings, Options{})
	assert.Equal(t, Totals{Subtotal: 55, Fee: 0, Total: 55}, got)
}

func TestComputeTotals_Shipping(t *testing.T) {
	got := ComputeTotals([]Line{{Price: 40, Quantity: 1}}, models.MethodShipping, "", nil, Options{})
	assert.Equal(t, Totals{Subtotal: 40, Fee: 15, Total: 55}, got)

	got = ComputeTotals([]Line{{Price: 75, Quantity: 2}}, models.MethodShipping, "", nil, Options{})
	assert.Equal(t, 0.0, got.Fee)

	got = ComputeTotals([]Line{{Price: 40, Quantity: 1}}, models.MethodShipping, "", nil, Options{ShippingFee: 8, FreeShippingMinimum: 200})
	assert.Equal(t, 8.0, got.Fee)
}

func TestMinDeliveryDate(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)

	beforeCutoff := time.Date(2026, 3, 4, 17, 59, 0, 0, loc) // Wednesday
	assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, loc), MinDeliveryDate(beforeCutoff))

	afterCutoff := time.Date(2026, 3, 4, 18, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 3, 5, 0, 0, 0, 0, loc), MinDeliveryDate(afterCutoff))
}

func TestIsDeliveryDateEligible(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, loc) // Monday morning
	day := func(offset int) time.Time { return time.Date(2026, 3, 2, 0, 0, 0, 0, loc).AddDate(0, 0, offset) }

	tests := []struct {
		name    string
		borough string
		date    time.Time
		want    bool
	}{
		{"same day before cutoff", "Brooklyn", day(0), true},
		{"yesterday", "Brooklyn", day(-1), false},
		{"last day of window", "Brooklyn", day(14), true},
		{"past the window", "Brooklyn", day(15), false},
		{"sunday excluded", "Brooklyn", day(6), false},
		{"manhattan monday", "Manhattan", day(0), false},
		{"manhattan tuesday", "Manhattan", day(1), true},
		{"manhattan friday", "Manhattan", day(4), true},
		{"manhattan saturday", "Manhattan", day(5), false},
		{"manhattan case-insensitive", "manhattan", day(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDeliveryDateEligible(now, tt.borough, tt.date))
		})
	}
}

func TestEligibleDeliveryDates(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC) // Monday morning

	dates := EligibleDeliveryDates(now, "Brooklyn")
	// 15 calendar days in the window minus two Sundays.
	assert.Len(t, dates, 13)
	for _, d := range dates {
		assert.NotEqual(t, time.Sunday, d.Weekday())
	}

	manhattan := EligibleDeliveryDates(now, "Manhattan")
	for _, d := range manhattan {
		assert.Contains(t, []time.Weekday{time.Tuesday, time.Friday}, d.Weekday())
	}
	assert.Len(t, manhattan, 4)
}
