package striped

import "unsafe"

// Number is the set of value types a striped accumulator can hold.
// Every value is stored as a 64-bit pattern; 32-bit types occupy the
// low half.
type Number interface {
	~int | ~int32 | ~int64 |
		~uint | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// toBits returns the raw bit pattern of v. Floating point values are not
// canonicalized: NaN payloads and the sign of zero survive, so a CAS on
// the result compares identity, not numeric equality.
//
//go:nosplit
func toBits[T Number](v T) uint64 {
	if unsafe.Sizeof(v) == 4 {
		return uint64(*(*uint32)(unsafe.Pointer(&v)))
	}
	return *(*uint64)(unsafe.Pointer(&v))
}

//go:nosplit
func fromBits[T Number](u uint64) (v T) {
	if unsafe.Sizeof(v) == 4 {
		b := uint32(u)
		return *(*T)(unsafe.Pointer(&b))
	}
	return *(*T)(unsafe.Pointer(&u))
}

func add[T Number](x, y T) T {
	return x + y
}
