package report

import "github.com/shubham/mftcat/internal/ntfs"

// JSONRow is the one-object-per-line shape emitted by the JSON output mode.
// Field names track the CSV columns but keep natural JSON types instead of
// stringifying everything.
type JSONRow struct {
	RecordNumber  uint32 `json:"record_number"`
	Status        string `json:"status"`
	Active        bool   `json:"active"`
	TypeLabel     string `json:"type_label"`
	Sequence      uint16 `json:"sequence"`
	ParentRef     uint64 `json:"parent_ref,omitempty"`
	ParentSeq     uint16 `json:"parent_seq,omitempty"`
	Filename      string `json:"filename"`
	ParsedPath    string `json:"parsed_path,omitempty"`
	ObjectID      string `json:"object_id,omitempty"`
	BirthVolumeID string `json:"birth_volume_id,omitempty"`
	BirthObjectID string `json:"birth_object_id,omitempty"`
	BirthDomainID string `json:"birth_domain_id,omitempty"`

	StdInfoCreate string `json:"si_crtime,omitempty"`
	StdInfoModify string `json:"si_mtime,omitempty"`
	StdInfoAccess string `json:"si_atime,omitempty"`
	StdInfoChange string `json:"si_ctime,omitempty"`
	FNCreate      string `json:"fn_crtime,omitempty"`
	FNModify      string `json:"fn_mtime,omitempty"`
	FNAccess      string `json:"fn_atime,omitempty"`
	FNChange      string `json:"fn_ctime,omitempty"`

	AttributePresence map[string]bool `json:"attribute_presence"`
	HasFileName       bool            `json:"has_filename"`
	Notes             []string        `json:"notes,omitempty"`
	StfFnShift        string          `json:"stf_fn_shift"`
	UsecZero          bool            `json:"usec_zero"`

	Hashes *Hashes `json:"hashes,omitempty"`
}

// ToJSONRow projects a record into JSONRow. computeHashes controls whether
// the Hashes field is populated.
func ToJSONRow(r *ntfs.Record, computeHashes bool) JSONRow {
	row := JSONRow{
		RecordNumber: r.RecordNumber,
		Status:       r.Status.String(),
		Active:       r.InUse(),
		TypeLabel:    typeLabel(r),
		Sequence:     r.Sequence,
		ParsedPath:   r.ParsedPath,

		ObjectID:      r.ObjectID,
		BirthVolumeID: r.BirthVolumeID,
		BirthObjectID: r.BirthObjectID,
		BirthDomainID: r.BirthDomainID,

		HasFileName: len(r.FileNames) > 0,
		Notes:       r.Notes,
		StfFnShift:  "N",
		UsecZero:    r.UsecZero,
	}

	if fn, ok := r.PrimaryFileName(); ok {
		row.Filename = fn.Name
		row.ParentRef = fn.ParentRecordNumber()
		row.ParentSeq = fn.ParentSequence()
		row.FNCreate = fn.CreateTime.String()
		row.FNModify = fn.ModifyTime.String()
		row.FNAccess = fn.AccessTime.String()
		row.FNChange = fn.MFTChgTime.String()
	}
	if si := r.StandardInfo; si != nil {
		row.StdInfoCreate = si.CreateTime.String()
		row.StdInfoModify = si.ModifyTime.String()
		row.StdInfoAccess = si.AccessTime.String()
		row.StdInfoChange = si.MFTChgTime.String()
	}

	presence := make(map[string]bool, len(ntfs.PresenceColumns))
	for _, t := range ntfs.PresenceColumns {
		presence[ntfs.PresenceColumnName(t)] = r.AttributePresence[t]
	}
	row.AttributePresence = presence

	if computeHashes {
		h := ComputeHashes(r.Raw)
		row.Hashes = &h
	}

	return row
}
