package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSize(t *testing.T) {
	testCases := []struct {
		input    string
		expected uint64
		invalid  bool
	}{
		{input: "1024", expected: 1024},
		{input: "2K", expected: 2048},
		{input: "2kb", expected: 2048},
		{input: "1.5MB", expected: 1572864},
		{input: "24MB", expected: 24 * MiB},
		{input: " 1 gb ", expected: GiB},
		{input: "1T", expected: TiB},
		{input: "10B", expected: 10},
		{input: "0.5K", expected: 512},
		{input: "1.3B", expected: 1},
		{input: "5XB", invalid: true},
		{input: "MB", invalid: true},
		{input: "", invalid: true},
		{input: "-1MB", invalid: true},
		{input: "1.2.3M", invalid: true},
		{input: "99999999999999999999", invalid: true},
		{input: "16777216TB", invalid: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			n, err := ParseSize(tc.input)
			if tc.invalid {
				assert.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, n)
		})
	}
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "0 Bytes", FormatBytes(0))
	assert.Equal(t, "1023 Bytes", FormatBytes(1023))
	assert.Equal(t, "1.5 MiB (1572864 Bytes)", FormatBytes(1572864))
	assert.Equal(t, "24 MiB (25165824 Bytes)", FormatBytes(24*MiB))
}
