package infra

type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

type Integer interface {
	Signed | Unsigned
}

type Float interface {
	~float32 | ~float64
}

// OrderedKey is the key set that owns a natural ordering (<, ==, >).
// byte => ~uint8
// Complex numbers are excluded, they are not ordered.
type OrderedKey interface {
	Integer | Float | ~string
}
