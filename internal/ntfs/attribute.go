package ntfs

import "encoding/binary"

// Attribute type codes. The set is closed — sixteen types plus the
// end-of-attributes terminator — so dispatch is a plain switch rather than
// a registration table.
const (
	AttrStandardInformation uint32 = 0x10
	AttrAttributeList       uint32 = 0x20
	AttrFileName            uint32 = 0x30
	AttrObjectID            uint32 = 0x40
	AttrSecurityDescriptor  uint32 = 0x50
	AttrVolumeName          uint32 = 0x60
	AttrVolumeInformation   uint32 = 0x70
	AttrData                uint32 = 0x80
	AttrIndexRoot           uint32 = 0x90
	AttrIndexAllocation     uint32 = 0xA0
	AttrBitmap              uint32 = 0xB0
	AttrReparsePoint        uint32 = 0xC0
	AttrEAInformation       uint32 = 0xD0
	AttrEA                  uint32 = 0xE0
	AttrPropertySet         uint32 = 0xF0
	AttrLoggedUtilityStream uint32 = 0x100
	AttrEndMarker           uint32 = 0xFFFFFFFF
)

// PresenceColumns lists, in report-column order, the attribute type codes
// exposed as individual presence booleans. $FILE_NAME is surfaced through
// its own decoded fields instead, so it is excluded here even though it is
// tracked in Record.AttributePresence like every other type;
// $SECURITY_DESCRIPTOR has no column either.
var PresenceColumns = []uint32{
	AttrStandardInformation, AttrAttributeList, AttrObjectID,
	AttrVolumeName, AttrVolumeInformation, AttrData,
	AttrIndexRoot, AttrIndexAllocation, AttrBitmap, AttrReparsePoint,
	AttrEAInformation, AttrEA, AttrPropertySet, AttrLoggedUtilityStream,
}

// PresenceColumnName returns the lowercase column label used in report
// output for a PresenceColumns entry.
func PresenceColumnName(typeCode uint32) string {
	switch typeCode {
	case AttrStandardInformation:
		return "si"
	case AttrAttributeList:
		return "al"
	case AttrObjectID:
		return "objid"
	case AttrVolumeName:
		return "volname"
	case AttrVolumeInformation:
		return "volinfo"
	case AttrData:
		return "data"
	case AttrIndexRoot:
		return "indexroot"
	case AttrIndexAllocation:
		return "indexallocation"
	case AttrBitmap:
		return "bitmap"
	case AttrReparsePoint:
		return "reparse"
	case AttrEAInformation:
		return "eainfo"
	case AttrEA:
		return "ea"
	case AttrPropertySet:
		return "propertyset"
	case AttrLoggedUtilityStream:
		return "loggedutility"
	default:
		return "unknown"
	}
}

// AttributeHeader is the 16-byte header common to every attribute, plus the
// resident-only content pointer when NonResident == 0.
type AttributeHeader struct {
	TypeCode      uint32
	Length        uint32
	NonResident   uint8
	NameLength    uint8
	NameOffset    uint16
	Flags         uint16
	AttributeID   uint16
	ContentLength uint32 // resident only
	ContentOffset uint16 // resident only
}

// headerStatus classifies the result of parsing one attribute header.
type headerStatus int

const (
	headerOK headerStatus = iota
	headerEnd
	headerMalformed
)

// parseAttributeHeader reads the attribute header at offset within buf. It
// never panics on hostile input: any field that would run past buf's bounds
// yields headerMalformed instead.
func parseAttributeHeader(buf []byte, offset int) (AttributeHeader, headerStatus) {
	if offset < 0 || offset+16 > len(buf) {
		return AttributeHeader{}, headerMalformed
	}

	typeCode := binary.LittleEndian.Uint32(buf[offset:])
	if typeCode == AttrEndMarker {
		return AttributeHeader{}, headerEnd
	}

	length := binary.LittleEndian.Uint32(buf[offset+4:])
	if length == 0 || length < 16 || offset+int(length) > len(buf) {
		return AttributeHeader{}, headerMalformed
	}

	h := AttributeHeader{
		TypeCode:    typeCode,
		Length:      length,
		NonResident: buf[offset+8],
		NameLength:  buf[offset+9],
		NameOffset:  binary.LittleEndian.Uint16(buf[offset+10:]),
		Flags:       binary.LittleEndian.Uint16(buf[offset+12:]),
		AttributeID: binary.LittleEndian.Uint16(buf[offset+14:]),
	}

	if h.NonResident == 0 {
		if offset+24 > len(buf) {
			return AttributeHeader{}, headerMalformed
		}
		h.ContentLength = binary.LittleEndian.Uint32(buf[offset+16:])
		h.ContentOffset = binary.LittleEndian.Uint16(buf[offset+20:])
	}

	return h, headerOK
}

// residentContent returns the attribute's resident payload, bounded to lie
// within [offset, offset+h.Length), or nil when the declared bounds don't
// fit inside the record — the caller treats that as a decode failure for
// this attribute only.
func residentContent(buf []byte, offset int, h AttributeHeader) []byte {
	start := offset + int(h.ContentOffset)
	end := start + int(h.ContentLength)
	if start < offset || end > offset+int(h.Length) || end > len(buf) || start > end {
		return nil
	}
	return buf[start:end]
}

// attributeName returns the attribute's name, if any, decoded from UTF-16LE
// at NameOffset/NameLength*2 within the attribute's own bytes.
func attributeName(buf []byte, offset int, h AttributeHeader) string {
	if h.NameLength == 0 {
		return ""
	}
	start := offset + int(h.NameOffset)
	end := start + int(h.NameLength)*2
	if start < offset || end > offset+int(h.Length) || end > len(buf) {
		return ""
	}
	return decodeUTF16LE(buf[start:end])
}
