package property

import (
	"strconv"
	"strings"
)

// ParseDimension parses style dimension values like "200", "200px",
// "200lu", "25%" and "auto". Percentages resolve against ref; "auto"
// resolves to the full ref; bare numbers and px/lu-suffixed values are
// logical units run through scale. Returns -1 for empty or unparseable
// input so callers can apply their own defaults; a failed parse is not an
// error here.
func ParseDimension(value string, ref int, scale func(float64) int) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return -1
	}
	if value == "auto" {
		return ref
	}

	percent := false
	if strings.HasSuffix(value, "%") {
		percent = true
		value = strings.TrimSuffix(value, "%")
	} else if strings.HasSuffix(value, "px") || strings.HasSuffix(value, "lu") {
		value = value[:len(value)-2]
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return -1
	}
	if percent {
		return int(float64(ref) * f / 100)
	}
	if scale == nil {
		return int(f)
	}
	return scale(f)
}
