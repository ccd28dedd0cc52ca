package universe

import "github.com/pkg/errors"

var (
	//ErrDimensionMismatch is returned when a cell buffer does not hold width*height cells
	ErrDimensionMismatch = errors.New("dimension mismatch")
	//ErrInvalidSymbol is returned by Parse for characters that are not a known cell symbol
	ErrInvalidSymbol = errors.New("invalid cell symbol")
)
