package importer

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseVolume reads a liter figure written either way: "12.345,678" and
// "12,345.678" are the same volume. When only one separator appears it is
// the decimal separator.
func parseVolume(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimSuffix(clean, "L")
	clean = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\u00a0' {
			return -1
		}

		return r
	}, clean)

	dot, comma := strings.LastIndex(clean, "."), strings.LastIndex(clean, ",")

	switch {
	case dot >= 0 && comma >= 0 && comma > dot:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	case dot >= 0 && comma >= 0:
		clean = strings.ReplaceAll(clean, ",", "")
	case comma >= 0:
		clean = strings.Replace(clean, ",", ".", 1)
	}

	return decimal.NewFromString(clean)
}
