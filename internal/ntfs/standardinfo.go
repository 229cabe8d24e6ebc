package ntfs

import (
	"encoding/binary"
	"fmt"
)

// StandardInformation holds the four timestamps carried by a
// $STANDARD_INFORMATION (0x10) attribute's resident payload.
type StandardInformation struct {
	CreateTime FileTime
	ModifyTime FileTime
	MFTChgTime FileTime
	AccessTime FileTime
}

// decodeStandardInformation reads the four FileTimes at offsets
// {0, 8, 16, 24} from the start of payload. It requires at least 32 bytes.
func decodeStandardInformation(payload []byte) (StandardInformation, []string, error) {
	if len(payload) < 32 {
		return StandardInformation{}, nil, fmt.Errorf("standard information payload too short: %d bytes", len(payload))
	}

	var notes []string
	readTime := func(off int) FileTime {
		low := binary.LittleEndian.Uint32(payload[off:])
		high := binary.LittleEndian.Uint32(payload[off+4:])
		ft, ok := FileTimeFromHalves(low, high)
		if !ok {
			notes = append(notes, fmt.Sprintf("standard information timestamp at offset %d out of displayable range, clamped", off))
		}
		return ft
	}

	si := StandardInformation{
		CreateTime: readTime(0),
		ModifyTime: readTime(8),
		MFTChgTime: readTime(16),
		AccessTime: readTime(24),
	}
	return si, notes, nil
}

// usecZero is true iff every one of the four timestamps has an integer
// (whole-second) UnixSeconds value — used to flag timestamp-stomping tools.
func (si StandardInformation) usecZero() bool {
	return si.CreateTime.IsWholeSecond() && si.ModifyTime.IsWholeSecond() &&
		si.MFTChgTime.IsWholeSecond() && si.AccessTime.IsWholeSecond()
}
