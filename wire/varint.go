package wire

// AppendVarU32 appends v to dst using unsigned LEB128: 7 payload bits per
// byte, high bit set on every byte but the last.
func AppendVarU32(dst []byte, v uint32) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}

	return append(dst, byte(v))
}

// AppendVarI32 zigzag-encodes v, then appends it as a var_u32.
//
// Zigzag maps signed values to unsigned ones so small-magnitude negative
// numbers stay compact: 0, -1, 1, -2, 2, ... become 0, 1, 2, 3, 4, ...
func AppendVarI32(dst []byte, v int32) []byte {
	u := uint32(v<<1) ^ uint32(v>>31)
	return AppendVarU32(dst, u)
}

// varU32Size returns the number of bytes AppendVarU32 would emit for v.
func varU32Size(v uint32) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}

	return n
}
