package conversation

import "testing"

func TestEstimatePriceRangeDeterministic(t *testing.T) {
	d := BookingDetails{Guests: 100, Date: "24/12", TimeSlot: "morning"}
	want := "₹16,200–₹20,700"
	for i := 0; i < 3; i++ {
		if got := estimatePriceRange(d); got != want {
			t.Fatalf("estimatePriceRange() = %q, want %q", got, want)
		}
	}
}

func TestEstimatePriceRangeSurcharges(t *testing.T) {
	tests := []struct {
		name string
		d    BookingDetails
		want string
	}{
		{"no surcharge", BookingDetails{Guests: 100}, "₹16,200–₹20,700"},
		{"evening surcharge", BookingDetails{Guests: 100, TimeSlot: "evening"}, "₹17,800–₹22,800"},
		{"weekend surcharge", BookingDetails{Guests: 100, Date: "sat 24/12"}, "₹18,600–₹23,800"},
		{"both multiplicative", BookingDetails{Guests: 100, Date: "sat", TimeSlot: "evening"}, "₹20,500–₹26,200"},
		{"pm token counts as evening", BookingDetails{Guests: 100, TimeSlot: "6 pm - 9 pm"}, "₹17,800–₹22,800"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := estimatePriceRange(tt.d); got != tt.want {
				t.Errorf("estimatePriceRange(%+v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestEstimatePriceRangeClamping(t *testing.T) {
	tests := []struct {
		name string
		d    BookingDetails
		want string
	}{
		{"absent guests default to 50", BookingDetails{}, "₹8,100–₹10,400"},
		{"clamped to 800", BookingDetails{Guests: 5000}, "₹1,29,600–₹1,65,600"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := estimatePriceRange(tt.d); got != tt.want {
				t.Errorf("estimatePriceRange(%+v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}
