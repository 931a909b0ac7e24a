package internal

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

var sizeUnits = map[string]uint64{
	"":   1,
	"B":  1,
	"K":  KiB,
	"KB": KiB,
	"M":  MiB,
	"MB": MiB,
	"G":  GiB,
	"GB": GiB,
	"T":  TiB,
	"TB": TiB,
}

// ParseSize parses strings like "1024", "2K", "1.5MB" or "1 gb" into a byte
// count. Units are 1024-based and case-insensitive. Fractional bytes are
// truncated.
func ParseSize(sizeStr string) (uint64, error) {
	s := strings.ToUpper(strings.TrimSpace(sizeStr))

	split := strings.IndexFunc(s, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})
	if split == -1 {
		split = len(s)
	}
	numeral, unit := s[:split], strings.TrimSpace(s[split:])
	if numeral == "" {
		return 0, fmt.Errorf("%w: invalid size %q: missing number", ErrInvalidArgument, sizeStr)
	}

	multiplier, ok := sizeUnits[unit]
	if !ok {
		return 0, fmt.Errorf("%w: invalid size unit %q, use B, KB, MB, GB or TB", ErrInvalidArgument, unit)
	}

	if !strings.Contains(numeral, ".") {
		n, err := strconv.ParseUint(numeral, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid size %q: %v", ErrInvalidArgument, sizeStr, err)
		}
		if n > math.MaxUint64/multiplier {
			return 0, fmt.Errorf("%w: size %q overflows", ErrInvalidArgument, sizeStr)
		}
		return n * multiplier, nil
	}

	f, err := strconv.ParseFloat(numeral, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid size %q: %v", ErrInvalidArgument, sizeStr, err)
	}
	bytes := f * float64(multiplier)
	if bytes >= math.MaxUint64 {
		return 0, fmt.Errorf("%w: size %q overflows", ErrInvalidArgument, sizeStr)
	}
	return uint64(bytes), nil
}

// FormatBytes renders n as "1.5 MiB (1572864 Bytes)", or just "N Bytes"
// below one KiB.
func FormatBytes(n uint64) string {
	if n < KiB {
		return fmt.Sprintf("%d Bytes", n)
	}
	return fmt.Sprintf("%s (%d Bytes)", humanize.IBytes(n), n)
}
