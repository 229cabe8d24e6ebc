// Package ntfs decodes individual NTFS $MFT records: the fixed record header,
// the variable-length attribute stream, and the handful of attribute types
// analysts care about (STANDARD_INFORMATION, FILE_NAME, OBJECT_ID).
package ntfs

import (
	"fmt"
	"time"
)

// epochDelta is the number of seconds between the FILETIME epoch
// (1601-01-01 UTC) and the Unix epoch (1970-01-01 UTC).
const epochDelta = 11644473600

// emptyDateString is emitted for a zero FileTime, matching the sentinel the
// source formatter uses for "no timestamp".
const emptyDateString = ""

// FileTime is a decoded Windows FILETIME: a 64-bit count of 100-nanosecond
// intervals since 1601-01-01 UTC, split on disk into two little-endian
// 32-bit halves.
type FileTime struct {
	Ticks       uint64
	UnixSeconds float64
	ISOString   string
}

// FileTimeFromHalves combines the low and high 32-bit halves of an on-disk
// FILETIME into a FileTime. A zero value renders as the empty-date sentinel
// and never produces an error; callers needing to flag clamped/out-of-range
// values should inspect the returned bool, which is false only when the
// ticks value could not be rendered as a real time and was clamped.
func FileTimeFromHalves(low, high uint32) (FileTime, bool) {
	ticks := uint64(high)<<32 | uint64(low)
	if ticks == 0 {
		return FileTime{Ticks: 0, UnixSeconds: 0, ISOString: emptyDateString}, true
	}

	unixSeconds := float64(ticks)/1e7 - epochDelta
	t, ok := clampToTime(unixSeconds)
	return FileTime{
		Ticks:       ticks,
		UnixSeconds: unixSeconds,
		ISOString:   t.UTC().Format("2006-01-02 15:04:05.000000"),
	}, ok
}

// clampToTime converts fractional Unix seconds to a time.Time, clamping to
// Go's representable range instead of overflowing. ok is false when
// clamping occurred, so the caller can attach a diagnostic note.
func clampToTime(unixSeconds float64) (time.Time, bool) {
	const (
		minSeconds = -62135596800 // year 1
		maxSeconds = 253402300799 // year 9999
	)
	if unixSeconds < minSeconds {
		return time.Unix(minSeconds, 0), false
	}
	if unixSeconds > maxSeconds {
		return time.Unix(maxSeconds, 0), false
	}
	sec := int64(unixSeconds)
	nsec := int64((unixSeconds - float64(sec)) * 1e9)
	return time.Unix(sec, nsec), true
}

// ToHalves recovers the low/high 32-bit halves from Ticks, the inverse of
// FileTimeFromHalves for non-sentinel values.
func (ft FileTime) ToHalves() (low, high uint32) {
	return uint32(ft.Ticks & 0xFFFFFFFF), uint32(ft.Ticks >> 32)
}

// IsZero reports whether this is the sentinel empty timestamp.
func (ft FileTime) IsZero() bool {
	return ft.Ticks == 0
}

// IsWholeSecond reports whether UnixSeconds has no fractional part, used to
// derive Record.UsecZero.
func (ft FileTime) IsWholeSecond() bool {
	return ft.UnixSeconds == float64(int64(ft.UnixSeconds))
}

func (ft FileTime) String() string {
	if ft.ISOString == "" {
		return emptyDateString
	}
	return ft.ISOString
}

// GoString supports %#v-style debugging output.
func (ft FileTime) GoString() string {
	return fmt.Sprintf("FileTime{Ticks:%d, ISOString:%q}", ft.Ticks, ft.ISOString)
}
