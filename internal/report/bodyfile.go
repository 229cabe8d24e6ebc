package report

import (
	"fmt"

	"github.com/shubham/mftcat/internal/ntfs"
)

// BodyfileRow renders one Sleuth Kit bodyfile line:
// md5|name|inode|mode|uid|gid|size|atime|mtime|ctime|crtime
//
// fullPath selects parsed_path over the short file_names[0] name. stdInfo
// selects STANDARD_INFORMATION timestamps over FILE_NAME ones; under
// stdInfo the bodyfile's fourth (crtime) slot repeats ctime rather than
// carrying a true creation time, matching the Sleuth Kit convention that a
// $SI-sourced row has no separate birth time.
func BodyfileRow(r *ntfs.Record, fullPath, stdInfo bool) string {
	fn, hasFN := r.PrimaryFileName()

	if !hasFN {
		if r.StandardInfo != nil {
			si := r.StandardInfo
			return bodyfileLine("No FN Record", 0,
				si.AccessTime.UnixSeconds, si.ModifyTime.UnixSeconds, si.MFTChgTime.UnixSeconds, si.MFTChgTime.UnixSeconds)
		}
		return bodyfileLine("Corrupt Record", 0, 0, 0, 0, 0)
	}

	name := fn.Name
	if fullPath && r.ParsedPath != "" {
		name = r.ParsedPath
	}

	if stdInfo && r.StandardInfo != nil {
		si := r.StandardInfo
		return bodyfileLine(name, fn.RealSize,
			si.AccessTime.UnixSeconds, si.ModifyTime.UnixSeconds, si.MFTChgTime.UnixSeconds, si.MFTChgTime.UnixSeconds)
	}
	return bodyfileLine(name, fn.RealSize,
		fn.AccessTime.UnixSeconds, fn.ModifyTime.UnixSeconds, fn.MFTChgTime.UnixSeconds, fn.CreateTime.UnixSeconds)
}

func bodyfileLine(name string, size uint64, atime, mtime, ctime, crtime float64) string {
	return fmt.Sprintf("0|%s|0|0|0|0|%d|%d|%d|%d|%d",
		name, size, int64(atime), int64(mtime), int64(ctime), int64(crtime))
}
