// Package fimi reads transaction datasets in the FIMI text format and writes
// mined patterns next to them.
//
// A FIMI file holds one transaction per line, items being non-negative
// integers separated by spaces or tabs. Every line is a transaction, blank
// ones included. Files named *.zst or *.zstd are zstd-compressed, files
// named *.lz4 are lz4-compressed; compression applies to both directions.
package fimi
