package conv

import (
	"errors"
	"fmt"
	"math"
)

// ErrOverflow is returned when a value cannot be represented by the target type.
var ErrOverflow = errors.New("integer overflow")

// Word is the set of storage types backing compact id arrays.
type Word interface {
	~uint8 | ~uint16 | ~int32
}

// Width identifies a storage tier by its size in bytes.
type Width uint8

const (
	Width8  Width = 1
	Width16 Width = 2
	Width32 Width = 4
)

func (w Width) String() string {
	switch w {
	case Width8:
		return "uint8"
	case Width16:
		return "uint16"
	case Width32:
		return "int32"
	default:
		return fmt.Sprintf("Width(%d)", uint8(w))
	}
}

// Max returns the largest id representable in this width.
func (w Width) Max() int {
	switch w {
	case Width8:
		return math.MaxUint8
	case Width16:
		return math.MaxUint16
	default:
		return math.MaxInt32
	}
}

// WidthFor returns the narrowest width able to hold every id in [0, maxID].
func WidthFor(maxID int) (Width, error) {
	switch {
	case maxID < 0:
		return Width8, nil
	case maxID <= math.MaxUint8:
		return Width8, nil
	case maxID <= math.MaxUint16:
		return Width16, nil
	case maxID <= math.MaxInt32:
		return Width32, nil
	default:
		return 0, fmt.Errorf("%w: id %d exceeds the widest encoding", ErrOverflow, maxID)
	}
}

// MaxOf returns the largest id a W can hold.
func MaxOf[W Word]() int {
	var w W
	switch any(w).(type) {
	case uint8:
		return math.MaxUint8
	case uint16:
		return math.MaxUint16
	default:
		return math.MaxInt32
	}
}

// Narrow converts v to W, failing when v is negative or too large.
func Narrow[W Word](v int, limit int) (W, error) {
	if v < 0 || v > limit {
		return 0, fmt.Errorf("%w: %d does not fit in [0, %d]", ErrOverflow, v, limit)
	}
	return W(v), nil
}
