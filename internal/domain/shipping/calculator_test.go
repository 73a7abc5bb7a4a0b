// internal/domain/shipping/calculator_test.go
package shipping

import (
	"testing"

	"github.com/ro7arthub/storefront-backend/internal/config"
	"github.com/stretchr/testify/assert"
)

func newTestCalculator() *Calculator {
	return NewCalculator(config.ShippingConfig{
		NorthernFee: 60,
		SouthernFee: 90,
		DefaultFee:  30,
	})
}

func TestComputeByGovernorate(t *testing.T) {
	calc := newTestCalculator()

	tests := []struct {
		governorate string
		expected    int64
	}{
		{"Cairo", 60},
		{"Giza", 60},
		{"Alexandria", 60},
		{"Port Said", 60},
		{"South Sinai", 60},
		{"Minya", 90},
		{"Aswan", 90},
		{"Luxor", 90},
		{"Kafr Al sheikh", 90},
		{"", 30},
		{"Unknown", 30},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, calc.Compute(tt.governorate), "governorate %q", tt.governorate)
	}
}

func TestComputeIsCaseSensitive(t *testing.T) {
	calc := newTestCalculator()

	// Only the exact catalog spelling gets the tier fee
	assert.Equal(t, int64(60), calc.Compute("Cairo"))
	assert.Equal(t, int64(30), calc.Compute("cairo"))
	assert.Equal(t, int64(30), calc.Compute("CAIRO"))
}

func TestTierFor(t *testing.T) {
	calc := newTestCalculator()

	assert.Equal(t, TierNorthern, calc.TierFor("Cairo"))
	assert.Equal(t, TierSouthern, calc.TierFor("Sohag"))
	assert.Equal(t, TierDefault, calc.TierFor(""))
	assert.Equal(t, TierDefault, calc.TierFor("Somewhere Else"))
}

func TestConfiguredFees(t *testing.T) {
	calc := NewCalculator(config.ShippingConfig{
		NorthernFee: 10,
		SouthernFee: 20,
		DefaultFee:  5,
	})

	assert.Equal(t, int64(10), calc.Compute("Cairo"))
	assert.Equal(t, int64(20), calc.Compute("Aswan"))
	assert.Equal(t, int64(5), calc.Compute("Elsewhere"))
}
