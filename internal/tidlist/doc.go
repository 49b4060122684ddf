// Package tidlist stores, for every item of a dataset, the ascending list of
// transaction identifiers containing that item.
//
// All lists live in one concatenated array: list i occupies
// [start[i], start[i]+length[i]) and is filled through an end cursor, so a
// store is a handful of flat slices regardless of the number of items. The
// element type is one of the conv.Word widths, picked by the caller from the
// largest transaction id the store will receive.
package tidlist
