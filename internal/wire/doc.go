// Package wire encodes alarms and settings in the protobuf wire format.
//
// A collection is a sequence of length-prefixed alarm records preceded by a
// format version. Fields are written in a fixed order so equal inputs always
// produce identical bytes. Unknown fields are skipped when decoding, which
// keeps older binaries able to read files written by newer ones.
package wire
