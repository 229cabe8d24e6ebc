package ntfs

import (
	"encoding/binary"
	"unicode/utf16"
)

// decodeUTF16LE decodes a little-endian UTF-16 byte slice into a string.
// An odd trailing byte is dropped rather than rejected. Invalid surrogate
// pairs decode to the Unicode replacement character via utf16.Decode, never
// an error — grounded on the teacher's decodeUTF16 in internal/ntfs.
func decodeUTF16LE(b []byte) string {
	if len(b)%2 != 0 {
		b = b[:len(b)-1]
	}
	u16 := make([]uint16, len(b)/2)
	for i := range u16 {
		u16[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	return string(utf16.Decode(u16))
}
