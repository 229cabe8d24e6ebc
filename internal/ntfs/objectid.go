package ntfs

import (
	"fmt"
)

// ObjectIDs holds the four GUIDs carried by an $OBJECT_ID (0x40) attribute.
// Any field may be empty when its 16 bytes are all zero.
type ObjectIDs struct {
	ObjectID       string
	BirthVolumeID  string
	BirthObjectID  string
	BirthDomainID  string
}

// decodeObjectID decodes the four 16-byte GUIDs at offsets {0,16,32,48}. It
// requires at least 64 bytes of payload.
func decodeObjectID(payload []byte) (ObjectIDs, error) {
	if len(payload) < 64 {
		return ObjectIDs{}, fmt.Errorf("object id payload too short: %d bytes", len(payload))
	}
	return ObjectIDs{
		ObjectID:      formatGUID(payload[0:16]),
		BirthVolumeID: formatGUID(payload[16:32]),
		BirthObjectID: formatGUID(payload[32:48]),
		BirthDomainID: formatGUID(payload[48:64]),
	}, nil
}

// formatGUID renders a 16-byte Microsoft mixed-endian GUID as the canonical
// xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx string. The first three fields are
// stored little-endian on disk and are byte-reversed before formatting; the
// clock-sequence and node fields are not reversed. An all-zero GUID renders
// as the empty string.
func formatGUID(b []byte) string {
	allZero := true
	for _, v := range b {
		if v != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return ""
	}

	timeLow := reverseBytes(b[0:4])
	timeMid := reverseBytes(b[4:6])
	timeHi := reverseBytes(b[6:8])

	return fmt.Sprintf("%02x%02x%02x%02x-%02x%02x-%02x%02x-%02x%02x-%02x%02x%02x%02x%02x%02x",
		timeLow[0], timeLow[1], timeLow[2], timeLow[3],
		timeMid[0], timeMid[1],
		timeHi[0], timeHi[1],
		b[8], b[9],
		b[10], b[11], b[12], b[13], b[14], b[15],
	)
}

func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}
