// Package constraints provides type constraints shared by the codec packages.
package constraints

// Byteseq is accepted by every parse entry point: a string or a byte slice.
type Byteseq interface {
	~string | ~[]byte
}
