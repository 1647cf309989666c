// Package cipher implements a spiral route cipher.
//
// A message is written row by row into a Width×Height grid (letters only,
// uppercased, padded with a filler letter) and read back out along an inward
// spiral that starts at the top-right corner and turns either clockwise or
// counter-clockwise:
//
//	H E L        clockwise:          L X O L H E
//	L O X        counter-clockwise:  L E H L O X
//
// The spiral is peeled one ring at a time. Each ring is four straight legs
// and every leg is run by the same walk primitive, so the only difference
// between the two directions is the leg table in ringLegs.
//
// Errors:
//
//   - ErrEmptyGrid: width or height is not positive.
//   - ErrInvalidFiller: the filler is not an uppercase ASCII letter.
//   - ErrDimensionFormat, ErrDimensionRange: ParseDimensions rejected its input.
//   - ErrUnknownDirection: ParseDirection rejected its input.
package cipher
