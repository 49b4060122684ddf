// Package conv provides checked integer narrowing for the fixed-width id
// encodings used by the transaction and tid-list stores.
//
// Every store picks one of three storage widths once, at construction time,
// from the largest id it will ever hold:
//
//   - Width8:  uint8, ids in [0, 255]
//   - Width16: uint16, ids in [0, 65535]
//   - Width32: int32, ids in [0, math.MaxInt32]
//
// Values that do not fit the chosen width are reported as ErrOverflow instead
// of being truncated.
//
// For conversions that are provably safe by domain constraints (loop
// indices, bounded counters), use direct type casts instead to avoid overhead.
package conv
