package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		wantErr error
	}{
		{"12.99", 12.99, nil},
		{"3", 3, nil},
		{" 3 ", 3, nil},
		{"  ", 0, nil},
		{"-5", -5, nil},
		{"0", 0, nil},
		{"1e3", 1000, nil},
		{"", 0, ErrEmptyAmount},
		{"abc", 0, ErrNotANumber},
		{"12,50", 0, ErrNotANumber},
		{"NaN", 0, ErrNotANumber},
		{"Inf", 0, ErrNotANumber},
		{"1.2.3", 0, ErrNotANumber},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseAmount(tc.in)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "12.99", FormatAmount(12.99))
	assert.Equal(t, "3.00", FormatAmount(3))
	assert.Equal(t, "0.10", FormatAmount(0.1))
}

func TestAmountField(t *testing.T) {
	assert.Equal(t, "", AmountField(0))
	assert.Equal(t, "3000", AmountField(3000))
	assert.Equal(t, "12.5", AmountField(12.5))
}
