package bytearray

// The spec names three isomorphic containers, distinguished only by
// element type. Go's byte and uint8 are identical, so ByteArray and
// UnsignedCharArray are deliberately the same instantiation; CharArray
// uses int8 to mirror C's (signed, on most platforms) char.
type (
	ByteArray         = Array[byte]
	UnsignedCharArray = Array[uint8]
	CharArray         = Array[int8]
)
