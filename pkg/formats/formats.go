// Package formats provides codecs for text mesh file formats.
package formats

// Note: OFF (Object File Format) decoding is in off_decode.go, encoding in off_encode.go
