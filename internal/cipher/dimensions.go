package cipher

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxDimension is the exclusive upper bound accepted by ParseDimensions.
const MaxDimension = 255

// ParseDimensions reads a "width,height" pair such as "3, 2". Spaces are
// ignored anywhere in the input. Each value must lie in [0, MaxDimension).
//
// A zero value passes the range check; Fill rejects it with ErrEmptyGrid.
func ParseDimensions(s string) (width, height int, err error) {
	compact := strings.Join(strings.Fields(s), "")
	parts := strings.Split(compact, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrDimensionFormat, strings.TrimSpace(s))
	}
	var dims [2]int
	for i, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %q is not a number", ErrDimensionFormat, part)
		}
		if v < 0 || v >= MaxDimension {
			return 0, 0, fmt.Errorf("%w: got %d", ErrDimensionRange, v)
		}
		dims[i] = v
	}
	return dims[0], dims[1], nil
}
