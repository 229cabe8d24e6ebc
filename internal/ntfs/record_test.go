package ntfs

import (
	"encoding/binary"
	"strings"
	"testing"
)

// buildRecord assembles a minimal but well-formed 1024-byte $MFT record with
// the given attributes appended from offset 64, after the fixed header
// (whose last field, the record number, occupies bytes 56-59). Each
// attribute in attrs is already a complete, correctly-sized attribute
// (header + content); buildRecord appends the end marker after them.
func buildRecord(recordNumber uint32, attrs ...[]byte) []byte {
	raw := make([]byte, RecordSize)
	binary.LittleEndian.PutUint32(raw[0:], MagicGood)
	binary.LittleEndian.PutUint16(raw[4:], 0)  // update sequence offset, unused
	binary.LittleEndian.PutUint16(raw[6:], 0)  // update sequence count, unused
	binary.LittleEndian.PutUint16(raw[30:], 1) // sequence
	binary.LittleEndian.PutUint16(raw[32:], 1) // hard link count
	binary.LittleEndian.PutUint16(raw[36:], FlagInUse)
	binary.LittleEndian.PutUint64(raw[44:], 0) // base ref
	binary.LittleEndian.PutUint32(raw[56:], recordNumber)

	offset := 64
	for _, a := range attrs {
		copy(raw[offset:], a)
		offset += len(a)
	}
	binary.LittleEndian.PutUint16(raw[34:], uint16(64))
	binary.LittleEndian.PutUint32(raw[offset:], AttrEndMarker)

	return raw
}

func attributeHeaderBytes(typeCode, length uint32, nonResident uint8) []byte {
	h := make([]byte, 24)
	binary.LittleEndian.PutUint32(h[0:], typeCode)
	binary.LittleEndian.PutUint32(h[4:], length)
	h[8] = nonResident
	if nonResident == 0 {
		binary.LittleEndian.PutUint32(h[16:], length-24) // content length
		binary.LittleEndian.PutUint16(h[20:], 24)         // content offset
	}
	return h
}

func standardInfoAttr() []byte {
	content := make([]byte, 32)
	// all four timestamps zero (empty-date sentinel)
	length := uint32(24 + len(content))
	return append(attributeHeaderBytes(AttrStandardInformation, length, 0), content...)
}

func fileNameAttr(name string, parentRef uint64) []byte {
	nameUTF16 := utf16Encode(name)
	content := make([]byte, 66+len(nameUTF16))
	binary.LittleEndian.PutUint64(content[0:], parentRef)
	content[64] = byte(len(name))
	content[65] = byte(NamespaceWin32)
	copy(content[66:], nameUTF16)
	length := uint32(24 + len(content))
	return append(attributeHeaderBytes(AttrFileName, length, 0), content...)
}

func utf16Encode(s string) []byte {
	out := make([]byte, 0, len(s)*2)
	for _, r := range s {
		out = append(out, byte(r), 0)
	}
	return out
}

func TestDecodeRecordGood(t *testing.T) {
	raw := buildRecord(12, standardInfoAttr(), fileNameAttr("hello.txt", 5))
	r := DecodeRecord(raw)

	if r.Status != StatusGood {
		t.Fatalf("status = %v, want StatusGood", r.Status)
	}
	if r.RecordNumber != 12 {
		t.Fatalf("record number = %d, want 12", r.RecordNumber)
	}
	if !r.InUse() {
		t.Fatalf("expected in-use flag set")
	}
	if r.StandardInfo == nil {
		t.Fatalf("expected standard information to be decoded")
	}
	if len(r.FileNames) != 1 || r.FileNames[0].Name != "hello.txt" {
		t.Fatalf("file names = %+v, want one named hello.txt", r.FileNames)
	}
	if !r.AttributePresence[AttrStandardInformation] || !r.AttributePresence[AttrFileName] {
		t.Fatalf("attribute presence not recorded: %+v", r.AttributePresence)
	}
}

func TestDecodeRecordBadMagic(t *testing.T) {
	raw := make([]byte, RecordSize)
	binary.LittleEndian.PutUint32(raw[0:], MagicBad)

	r := DecodeRecord(raw)
	if r.Status != StatusBad {
		t.Fatalf("status = %v, want StatusBad", r.Status)
	}
	if len(r.Notes) == 0 || r.Notes[0] != "BAAD MFT Record" {
		t.Fatalf("notes = %v, want [BAAD MFT Record]", r.Notes)
	}
}

func TestDecodeRecordZeroMagic(t *testing.T) {
	raw := make([]byte, RecordSize)
	r := DecodeRecord(raw)
	if r.Status != StatusZero {
		t.Fatalf("status = %v, want StatusZero", r.Status)
	}
}

func TestDecodeRecordCorruptMagic(t *testing.T) {
	raw := make([]byte, RecordSize)
	binary.LittleEndian.PutUint32(raw[0:], 0xDEADBEEF)
	r := DecodeRecord(raw)
	if r.Status != StatusCorrupt {
		t.Fatalf("status = %v, want StatusCorrupt", r.Status)
	}
}

func TestDecodeRecordTooShort(t *testing.T) {
	raw := make([]byte, 10)
	r := DecodeRecord(raw)
	if r.Status != StatusCorrupt {
		t.Fatalf("status = %v, want StatusCorrupt", r.Status)
	}
	if len(r.Notes) == 0 {
		t.Fatalf("expected a note explaining the short buffer")
	}
}

func TestDecodeFileNameTruncated(t *testing.T) {
	full := fileNameAttr("truncated-name", 5)
	// Chop off the last 8 bytes of name content without adjusting the
	// declared length field, and shrink the header's own length to match.
	short := full[:len(full)-8]
	binary.LittleEndian.PutUint32(short[4:], uint32(len(short)))
	binary.LittleEndian.PutUint32(short[16:], uint32(len(short)-24))

	raw := buildRecord(20, short)
	r := DecodeRecord(raw)

	if len(r.FileNames) != 1 {
		t.Fatalf("expected one file name despite truncation, got %d", len(r.FileNames))
	}
	fn := r.FileNames[0]
	if len(fn.Name) >= len("truncated-name") {
		t.Fatalf("expected name to be truncated, got %q", fn.Name)
	}
	found := false
	for _, n := range r.Notes {
		if strings.Contains(n, "truncated") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a truncation note, got %v", r.Notes)
	}
}

func TestPrimaryVsPathFileName(t *testing.T) {
	raw := buildRecord(30, fileNameAttr("DOSNAME~1", 5), fileNameAttr("LongName.txt", 5))
	r := DecodeRecord(raw)

	primary, ok := r.PrimaryFileName()
	if !ok || primary.Name != "DOSNAME~1" {
		t.Fatalf("PrimaryFileName = %+v, want first entry", primary)
	}
	path, ok := r.PathFileName()
	if !ok || path.Name != "LongName.txt" {
		t.Fatalf("PathFileName = %+v, want last entry", path)
	}
}

func TestFileTimeFromHalvesZero(t *testing.T) {
	ft, ok := FileTimeFromHalves(0, 0)
	if !ok {
		t.Fatalf("zero ticks should never report a clamp")
	}
	if !ft.IsZero() {
		t.Fatalf("expected zero-value FileTime")
	}
	if ft.String() != "" {
		t.Fatalf("String() = %q, want empty sentinel", ft.String())
	}
}

func TestFileTimeFromHalvesRoundTrip(t *testing.T) {
	const ticks = 132223104000000000 // 2020-01-01 00:00:00 UTC
	low := uint32(ticks & 0xFFFFFFFF)
	high := uint32(ticks >> 32)

	ft, ok := FileTimeFromHalves(low, high)
	if !ok {
		t.Fatalf("expected no clamping for an in-range timestamp")
	}
	gotLow, gotHigh := ft.ToHalves()
	if gotLow != low || gotHigh != high {
		t.Fatalf("ToHalves() = (%d, %d), want (%d, %d)", gotLow, gotHigh, low, high)
	}
	if !strings.HasPrefix(ft.String(), "2020-01-01") {
		t.Fatalf("String() = %q, want a 2020-01-01 date", ft.String())
	}
}

func TestFormatGUIDAllZero(t *testing.T) {
	if got := formatGUID(make([]byte, 16)); got != "" {
		t.Fatalf("formatGUID(zero) = %q, want empty string", got)
	}
}

func TestFormatGUIDReversesLeadingFields(t *testing.T) {
	// time_low=0x01020304, time_mid=0x0506, time_hi=0x0708, rest verbatim.
	b := []byte{0x04, 0x03, 0x02, 0x01, 0x06, 0x05, 0x08, 0x07, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10}
	got := formatGUID(b)
	want := "01020304-0506-0708-090a-0b0c0d0e0f10"
	if got != want {
		t.Fatalf("formatGUID() = %q, want %q", got, want)
	}
}

func TestDecodeUTF16LE(t *testing.T) {
	b := utf16Encode("abc")
	if got := decodeUTF16LE(b); got != "abc" {
		t.Fatalf("decodeUTF16LE() = %q, want abc", got)
	}
	// odd trailing byte is dropped rather than panicking.
	if got := decodeUTF16LE(append(b, 0x41)); got != "abc" {
		t.Fatalf("decodeUTF16LE() with trailing byte = %q, want abc", got)
	}
}
