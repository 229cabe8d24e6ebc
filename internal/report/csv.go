// Package report projects a decoded $MFT record into the analyst-facing
// output formats: the CSV table, the Sleuth Kit bodyfile, log2timeline's
// L2T-CSV, and JSON lines.
package report

import (
	"strconv"
	"strings"

	"github.com/shubham/mftcat/internal/ntfs"
)

// CSVHeader returns the fixed column header. withHashes adds the four hash
// columns, bringing the count from 54 to 58.
func CSVHeader(withHashes bool) []string {
	h := []string{
		"Record Number", "Good", "Active", "Record type",
		"Sequence Number", "Sequence Number",
		"Parent File Rec. #", "Parent File Rec. Seq. #",
		"Filename #1",
		"Std Info Creation date", "Std Info Modification date", "Std Info Access date", "Std Info Entry date",
		"FN Info Creation date", "FN Info Modification date", "FN Info Access date", "FN Info Entry date",
		"Object ID", "Birth Volume ID", "Birth Object ID", "Birth Domain ID",
	}
	for i := 2; i <= 4; i++ {
		h = append(h,
			"Filename #"+strconv.Itoa(i),
			"FN Info Creation date", "FN Info Modify date", "FN Info Access date", "FN Info Entry date",
		)
	}
	h = append(h,
		"Standard Information", "Attribute List", "Object ID", "Volume Name", "Volume Info",
		"Data", "Index Root", "Index Allocation", "Bitmap", "Reparse Point",
		"EA Information", "EA", "Property Set", "Logged Utility Stream",
		"Filename", "Log/Notes", "STF FN Shift", "uSec Zero",
	)
	if withHashes {
		h = append(h, "MD5", "SHA256", "SHA512", "CRC32")
	}
	return h
}

// CSVRow projects one record into a row matching CSVHeader's column layout.
// Bad and Corrupt records still produce a full-width row: every column past
// the record_num/magic/active/type and two sequence-number columns falls
// back to its empty default, and the 4th column (normally the record type label) carries the
// diagnostic note instead, so a reader scanning column 4 sees "BAAD MFT
// Record" or "Corrupt MFT Record" in place of "File"/"Folder".
func CSVRow(r *ntfs.Record, withHashes bool) []string {
	row := []string{
		strconv.FormatUint(uint64(r.RecordNumber), 10),
		r.Status.String(),
		activeLabel(r),
		typeLabel(r),
		strconv.FormatUint(uint64(r.Sequence), 10),
		strconv.FormatUint(uint64(r.Sequence), 10),
	}

	if r.Status == ntfs.StatusBad || r.Status == ntfs.StatusCorrupt {
		for len(row) < len(CSVHeader(false)) {
			row = append(row, "")
		}
		if withHashes {
			sums := ComputeHashes(r.Raw)
			row = append(row, sums.MD5, sums.SHA256, sums.SHA512, strconv.FormatUint(uint64(sums.CRC32), 10))
		}
		return row
	}

	row = append(row, parentColumns(r)...)
	row = append(row, nameAndTimeColumns(r)...)
	row = append(row, objectIDColumns(r)...)
	row = append(row, additionalNameColumns(r)...)
	row = append(row, presenceColumns(r)...)
	row = append(row, boolLabel(len(r.FileNames) > 0))
	row = append(row, notesColumn(r), "N", boolYN(r.UsecZero))

	if withHashes {
		sums := ComputeHashes(r.Raw)
		row = append(row, sums.MD5, sums.SHA256, sums.SHA512, strconv.FormatUint(uint64(sums.CRC32), 10))
	}
	return row
}

func activeLabel(r *ntfs.Record) string {
	if r.InUse() {
		return "Active"
	}
	return "Inactive"
}

func typeLabel(r *ntfs.Record) string {
	switch r.Status {
	case ntfs.StatusBad:
		return "BAAD MFT Record"
	case ntfs.StatusCorrupt:
		return "Corrupt MFT Record"
	}
	label := "File"
	if r.IsDirectory() {
		label = "Folder"
	}
	if r.Flags&ntfs.FlagUnknown1 != 0 {
		label += " + Unknown1"
	}
	if r.Flags&ntfs.FlagUnknown2 != 0 {
		label += " + Unknown2"
	}
	return label
}

func parentColumns(r *ntfs.Record) []string {
	fn, ok := r.PrimaryFileName()
	if !ok {
		return []string{"NoParent", "NoParent"}
	}
	return []string{
		strconv.FormatUint(fn.ParentRecordNumber(), 10),
		strconv.FormatUint(uint64(fn.ParentSequence()), 10),
	}
}

func nameAndTimeColumns(r *ntfs.Record) []string {
	fn, hasFN := r.PrimaryFileName()
	si := r.StandardInfo

	switch {
	case hasFN && si != nil:
		return []string{
			fn.Name,
			si.CreateTime.String(), si.ModifyTime.String(), si.AccessTime.String(), si.MFTChgTime.String(),
			fn.CreateTime.String(), fn.ModifyTime.String(), fn.AccessTime.String(), fn.MFTChgTime.String(),
		}
	case si != nil:
		return []string{
			"NoFNRecord",
			si.CreateTime.String(), si.ModifyTime.String(), si.AccessTime.String(), si.MFTChgTime.String(),
			"NoFNRecord", "NoFNRecord", "NoFNRecord", "NoFNRecord",
		}
	default:
		return []string{
			"NoFNRecord",
			"NoSIRecord", "NoSIRecord", "NoSIRecord", "NoSIRecord",
			"NoFNRecord", "NoFNRecord", "NoFNRecord", "NoFNRecord",
		}
	}
}

func objectIDColumns(r *ntfs.Record) []string {
	return []string{r.ObjectID, r.BirthVolumeID, r.BirthObjectID, r.BirthDomainID}
}

// additionalNameColumns emits file_names[1:4], five columns each (name plus
// four timestamps), padded with empty strings out to three slots regardless
// of how many extra names the record actually carries.
func additionalNameColumns(r *ntfs.Record) []string {
	var out []string
	for i := 1; i <= 3; i++ {
		if i < len(r.FileNames) {
			fn := r.FileNames[i]
			out = append(out, fn.Name, fn.CreateTime.String(), fn.ModifyTime.String(), fn.AccessTime.String(), fn.MFTChgTime.String())
		} else {
			out = append(out, "", "", "", "", "")
		}
	}
	return out
}

func presenceColumns(r *ntfs.Record) []string {
	out := make([]string, 0, len(ntfs.PresenceColumns))
	for _, t := range ntfs.PresenceColumns {
		out = append(out, boolLabel(r.AttributePresence[t]))
	}
	return out
}

func boolLabel(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func boolYN(b bool) string {
	if b {
		return "Y"
	}
	return "N"
}

func notesColumn(r *ntfs.Record) string {
	if len(r.Notes) == 0 {
		return "None"
	}
	return strings.Join(r.Notes, "; ")
}
