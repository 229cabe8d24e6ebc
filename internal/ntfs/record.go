package ntfs

import (
	"encoding/binary"
	"fmt"
)

// RecordSize is the on-disk size of one $MFT record in bytes.
const RecordSize = 1024

// Magic values for the fixed record header.
const (
	MagicGood uint32 = 0x454C4946 // "FILE"
	MagicBad  uint32 = 0x44414142 // "BAAD"
	MagicZero uint32 = 0x00000000
)

// Status classifies a decoded record by its magic and parse outcome.
type Status int

const (
	StatusGood Status = iota
	StatusBad
	StatusZero
	StatusCorrupt
)

func (s Status) String() string {
	switch s {
	case StatusGood:
		return "Good"
	case StatusBad:
		return "Bad"
	case StatusZero:
		return "Zero"
	default:
		return "Unknown"
	}
}

// Record flag bits.
const (
	FlagInUse      uint16 = 0x0001
	FlagDirectory  uint16 = 0x0002
	FlagUnknown1   uint16 = 0x0004
	FlagUnknown2   uint16 = 0x0008
)

// maxAttributeIterations bounds the attribute-walk loop against a
// malformed-but-nonzero length field looping forever.
const maxAttributeIterations = 64

// Record is one decoded $MFT entry.
type Record struct {
	RecordNumber  uint32
	Sequence      uint16
	HardLinkCount uint16
	Flags         uint16
	Magic         uint32
	BaseRef       uint64

	StandardInfo *StandardInformation
	FileNames    []FileNameAttr

	AttributePresence map[uint32]bool

	ObjectID      string
	BirthVolumeID string
	BirthObjectID string
	BirthDomainID string

	ParsedPath string
	Notes      []string
	UsecZero   bool
	Status     Status

	// Raw is the original 1024-byte (or shorter, for a corrupt tail) record
	// image. Report hashing needs it; callers that never enable hashing can
	// drop the reference after decoding to avoid holding the whole table in
	// memory twice.
	Raw []byte
}

// InUse reports whether the in-use flag bit is set.
func (r *Record) InUse() bool {
	return r.Flags&FlagInUse != 0
}

// IsDirectory reports whether the directory flag bit is set.
func (r *Record) IsDirectory() bool {
	return r.Flags&FlagDirectory != 0
}

// PrimaryFileName returns the first FILE_NAME attribute encountered, used
// for display. Path resolution instead uses the last one — see
// Record.PathFileName. Both behaviors are preserved verbatim from the
// source tool per an open design question left unresolved.
func (r *Record) PrimaryFileName() (FileNameAttr, bool) {
	if len(r.FileNames) == 0 {
		return FileNameAttr{}, false
	}
	return r.FileNames[0], true
}

// PathFileName returns the last FILE_NAME attribute encountered, used when
// building parsed paths (typically the Win32 long name on a volume with
// both Win32 and DOS short names).
func (r *Record) PathFileName() (FileNameAttr, bool) {
	if len(r.FileNames) == 0 {
		return FileNameAttr{}, false
	}
	return r.FileNames[len(r.FileNames)-1], true
}

func (r *Record) addNote(format string, args ...interface{}) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}

// DecodeRecord parses one on-disk $MFT record. raw is expected to be
// RecordSize bytes (the pipeline driver guarantees this for real input);
// shorter buffers degrade to StatusCorrupt rather than panicking.
func DecodeRecord(raw []byte) *Record {
	r := &Record{
		AttributePresence: make(map[uint32]bool),
		Raw:               raw,
	}

	if len(raw) < 60 {
		r.Status = StatusCorrupt
		r.addNote("record shorter than fixed header (%d bytes)", len(raw))
		return r
	}

	r.Magic = binary.LittleEndian.Uint32(raw[0:])

	if r.Magic == MagicGood || r.Magic == MagicBad {
		r.Sequence = binary.LittleEndian.Uint16(raw[30:])
		r.HardLinkCount = binary.LittleEndian.Uint16(raw[32:])
		r.Flags = binary.LittleEndian.Uint16(raw[36:])
		r.BaseRef = binary.LittleEndian.Uint64(raw[44:])
		r.RecordNumber = binary.LittleEndian.Uint32(raw[56:])
	}

	switch r.Magic {
	case MagicGood:
		r.Status = StatusGood
	case MagicBad:
		r.Status = StatusBad
		r.addNote("BAAD MFT Record")
		return r
	case MagicZero:
		r.Status = StatusZero
		return r
	default:
		r.Status = StatusCorrupt
		return r
	}

	firstAttrOffset := int(binary.LittleEndian.Uint16(raw[34:]))

	r.parseAttributes(raw, firstAttrOffset)

	if r.StandardInfo != nil {
		r.UsecZero = r.StandardInfo.usecZero()
	}

	return r
}

func (r *Record) parseAttributes(raw []byte, offset int) {
	for i := 0; i < maxAttributeIterations; i++ {
		header, status := parseAttributeHeader(raw, offset)
		if status == headerEnd || status == headerMalformed {
			return
		}

		r.AttributePresence[header.TypeCode] = true

		if err := r.decodeAttribute(raw, offset, header); err != nil {
			r.addNote("Error parsing attribute 0x%X: %s", header.TypeCode, err)
		}

		offset += int(header.Length)
	}
}

func (r *Record) decodeAttribute(raw []byte, offset int, h AttributeHeader) error {
	if h.TypeCode == AttrAttributeList {
		r.addNote("record has $ATTRIBUTE_LIST; extension records not traversed")
		return nil
	}

	if h.NonResident != 0 {
		// Non-resident attributes (data runs external to the record) are
		// recorded as present only; resolving their content is out of
		// scope — this tool never reads the volume itself.
		return nil
	}

	content := residentContent(raw, offset, h)
	if content == nil {
		return fmt.Errorf("resident content out of bounds")
	}

	switch h.TypeCode {
	case AttrStandardInformation:
		si, notes, err := decodeStandardInformation(content)
		if err != nil {
			return err
		}
		r.StandardInfo = &si
		r.Notes = append(r.Notes, notes...)

	case AttrFileName:
		fn, notes, err := decodeFileName(content)
		if err != nil {
			return err
		}
		r.FileNames = append(r.FileNames, fn)
		r.Notes = append(r.Notes, notes...)

	case AttrObjectID:
		ids, err := decodeObjectID(content)
		if err != nil {
			return err
		}
		r.ObjectID = ids.ObjectID
		r.BirthVolumeID = ids.BirthVolumeID
		r.BirthObjectID = ids.BirthObjectID
		r.BirthDomainID = ids.BirthDomainID
	}

	return nil
}
