package report

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shubham/mftcat/internal/ntfs"
)

func TestBodyfileRowFNMode(t *testing.T) {
	fn := ntfs.FileNameAttr{
		Name:     "hello.txt",
		RealSize: 1024,
	}
	fn.CreateTime, _ = ntfs.FileTimeFromHalves(0, 0)
	r := &ntfs.Record{FileNames: []ntfs.FileNameAttr{fn}}

	line := BodyfileRow(r, false, false)
	require.Contains(t, line, "0|hello.txt|0|0|0|0|1024|")
}

func TestBodyfileRowNoFileName(t *testing.T) {
	r := &ntfs.Record{}
	line := BodyfileRow(r, false, false)
	require.Equal(t, "0|Corrupt Record|0|0|0|0|0|0|0|0|0", line)
}

func TestBodyfileRowFullPath(t *testing.T) {
	r := &ntfs.Record{
		ParsedPath: "/Windows/System32/drivers.txt",
		FileNames:  []ntfs.FileNameAttr{{Name: "drivers.txt"}},
	}
	line := BodyfileRow(r, true, false)
	require.Contains(t, line, "/Windows/System32/drivers.txt")
}

func TestL2TRowsFourPerRecord(t *testing.T) {
	r := &ntfs.Record{
		Sequence:  3,
		FileNames: []ntfs.FileNameAttr{{Name: "a.txt"}},
	}
	rows := L2TRows(r)
	require.Len(t, rows, 4)
}

func TestL2TRowsDegradedPlaceholder(t *testing.T) {
	r := &ntfs.Record{}
	rows := L2TRows(r)
	require.Len(t, rows, 1)
	require.Contains(t, rows[0], "Corrupt Record")
}

func TestComputeHashesDeterministic(t *testing.T) {
	raw := make([]byte, ntfs.RecordSize)
	a := ComputeHashes(raw)
	b := ComputeHashes(raw)
	require.Equal(t, a, b)
	require.NotEmpty(t, a.MD5)
}
