package kernel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_OrderNumberPrefix(t *testing.T) {
	day := time.Date(2025, 11, 19, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "K111925FL", OrderNumberPrefix(day, "FL"))
	assert.Equal(t, "K010203UT", OrderNumberPrefix(time.Date(2003, 1, 2, 0, 0, 0, 0, time.UTC), "UT"))
}

func Test_FormatOrderNumber(t *testing.T) {
	day := time.Date(2025, 11, 19, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "K111925FL1", FormatOrderNumber(day, "FL", 1))
	assert.Equal(t, "K111925FL12", FormatOrderNumber(day, "FL", 12))
}

func Test_NormalizeRegionCode(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"FL", "FL"},
		{"fl", "FL"},
		{" ut ", "UT"},
		{"Florida", "FL"},
		{"", ""},
		{"XX", ""},
		{"xx", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeRegionCode(tt.raw))
		})
	}
}

func Test_FallbackRegionCode(t *testing.T) {
	for range 20 {
		code := FallbackRegionCode()
		assert.Len(t, code, 2)
		assert.Equal(t, byte('X'), code[0])
		assert.GreaterOrEqual(t, code[1], byte('A'))
		assert.LessOrEqual(t, code[1], byte('Z'))
	}
}
