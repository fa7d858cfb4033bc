//go:build !striped_disable_padding

package opt

// PaddingMult_ scales the trailing padding of cells and probe tokens.
// Padding is enabled by default on every architecture so that slots
// updated from different Ps never share a cache line.
// Use: go build -tags=striped_disable_padding to turn it off.
const PaddingMult_ = 1
