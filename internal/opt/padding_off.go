//go:build striped_disable_padding

package opt

// PaddingMult_ is zero: padding is force-disabled via the
// striped_disable_padding build tag, trading false sharing for memory.
const PaddingMult_ = 0
