package report

import (
	"fmt"
	"strings"

	"github.com/shubham/mftcat/internal/ntfs"
)

// L2THeader is log2timeline's fixed CSV header.
var L2THeader = []string{
	"date", "time", "timezone", "MACB", "source", "sourcetype", "type",
	"user", "host", "short", "desc", "version", "filename", "inode",
	"notes", "format", "extra",
}

type l2tSlot struct {
	label string
	macb  string
	time  ntfs.FileTime
}

// L2TRows produces one row per timestamp (atime, mtime, ctime, crtime)
// sourced from the primary FILE_NAME when the record has one, else from
// STANDARD_INFORMATION, else a single degraded placeholder row.
func L2TRows(r *ntfs.Record) []string {
	fn, hasFN := r.PrimaryFileName()

	var slots []l2tSlot
	var source, name string

	switch {
	case hasFN:
		source = "$FN"
		name = fn.Name
		slots = []l2tSlot{
			{"[.A..] time", ".A..", fn.AccessTime},
			{"[M...] time", "M...", fn.ModifyTime},
			{"[..C.] time", "..C.", fn.MFTChgTime},
			{"[...B] time", "...B", fn.CreateTime},
		}
	case r.StandardInfo != nil:
		si := r.StandardInfo
		source = "$SI"
		name = "NoFNRecord"
		slots = []l2tSlot{
			{"[.A..] time", ".A..", si.AccessTime},
			{"[M...] time", "M...", si.ModifyTime},
			{"[..C.] time", "..C.", si.MFTChgTime},
			{"[...B] time", "...B", si.CreateTime},
		}
	default:
		return []string{
			strings.Join([]string{
				"-", "-", "TZ", "unknown time", "FILE", "NTFS $MFT", "unknown time",
				"user", "host", "Corrupt Record", "desc", "version", "NoFNRecord",
				fmt.Sprint(r.Sequence), "-", "format", "extra",
			}, "|"),
		}
	}

	notes := notesColumn(r)
	rows := make([]string, 0, len(slots))
	for _, s := range slots {
		date, timeOfDay := splitISODateTime(s.time.String())
		typeStr := fmt.Sprintf("%s %s", source, s.label)
		rows = append(rows, strings.Join([]string{
			date, timeOfDay, "TZ", s.macb, "FILE", "NTFS $MFT", typeStr,
			"user", "host", name, "desc", "version", name,
			fmt.Sprint(r.Sequence), notes, "format", "extra",
		}, "|"))
	}
	return rows
}

// splitISODateTime splits "YYYY-MM-DD HH:MM:SS.ffffff" into its date and
// time halves; an empty (sentinel) timestamp yields two empty strings.
func splitISODateTime(iso string) (date, timeOfDay string) {
	if iso == "" {
		return "", ""
	}
	parts := strings.SplitN(iso, " ", 2)
	if len(parts) != 2 {
		return iso, ""
	}
	return parts[0], parts[1]
}
