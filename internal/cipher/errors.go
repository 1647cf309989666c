package cipher

import "errors"

var (
	// ErrEmptyGrid indicates a grid with no rows or no columns was requested.
	ErrEmptyGrid = errors.New("cipher: grid must have at least one row and one column")
	// ErrInvalidFiller indicates a filler outside A-Z.
	ErrInvalidFiller = errors.New("cipher: filler must be an uppercase letter A-Z")
	// ErrDimensionFormat indicates a dimension string that is not "int,int".
	ErrDimensionFormat = errors.New("cipher: dimensions must look like #,#")
	// ErrDimensionRange indicates a dimension outside [0, MaxDimension).
	ErrDimensionRange = errors.New("cipher: dimensions must be between 0 and 254")
	// ErrUnknownDirection indicates a direction token other than c or cc.
	ErrUnknownDirection = errors.New("cipher: unknown direction, try (c) or (cc) for clockwise or counter-clockwise")
)
