package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shubham/mftcat/internal/ntfs"
)

func namedRecord(t *testing.T, recordNumber uint32, name string, parentRef uint64) *ntfs.Record {
	t.Helper()
	return &ntfs.Record{
		RecordNumber:      recordNumber,
		AttributePresence: make(map[uint32]bool),
		FileNames: []ntfs.FileNameAttr{
			{ParentRef: parentRef, Name: name},
		},
	}
}

func TestResolveRootChild(t *testing.T) {
	c := New()
	c.Insert(namedRecord(t, RootRecordNumber, ".", RootRecordNumber))
	c.Insert(namedRecord(t, 6, "Windows", RootRecordNumber))

	c.ResolveAllPaths()

	root, ok := c.Get(RootRecordNumber)
	require.True(t, ok)
	require.Equal(t, "/", root.ParsedPath)

	r, ok := c.Get(6)
	require.True(t, ok)
	require.Equal(t, "/Windows", r.ParsedPath)
}

func TestResolveNestedChild(t *testing.T) {
	c := New()
	c.Insert(namedRecord(t, 6, "Windows", RootRecordNumber))
	c.Insert(namedRecord(t, 7, "System32", 6))
	c.Insert(namedRecord(t, 8, "drivers.txt", 7))

	c.ResolveAllPaths()

	r, ok := c.Get(8)
	require.True(t, ok)
	require.Equal(t, "/Windows/System32/drivers.txt", r.ParsedPath)
}

func TestResolveMutualCycle(t *testing.T) {
	c := New()
	c.Insert(namedRecord(t, 100, "A", 101))
	c.Insert(namedRecord(t, 101, "B", 100))

	c.ResolveAllPaths()

	r100, ok := c.Get(100)
	require.True(t, ok)
	r101, ok := c.Get(101)
	require.True(t, ok)

	require.Contains(t, r100.ParsedPath, "Circular_Reference")
	require.Contains(t, r101.ParsedPath, "Circular_Reference")
}

func TestResolveSelfParent(t *testing.T) {
	c := New()
	c.Insert(namedRecord(t, 50, "self.txt", 50))

	c.ResolveAllPaths()

	r, ok := c.Get(50)
	require.True(t, ok)
	require.Equal(t, "ORPHAN/self.txt", r.ParsedPath)
}

func TestResolveMissingParent(t *testing.T) {
	c := New()
	c.Insert(namedRecord(t, 9, "dangling.txt", 9999))

	c.ResolveAllPaths()

	r, ok := c.Get(9)
	require.True(t, ok)
	require.True(t, strings.HasPrefix(r.ParsedPath, pathOrphan))
}

func TestResolveNoFileName(t *testing.T) {
	c := New()
	c.Insert(&ntfs.Record{RecordNumber: 11, AttributePresence: make(map[uint32]bool)})

	c.ResolveAllPaths()

	r, ok := c.Get(11)
	require.True(t, ok)
	require.Equal(t, pathNoFileName, r.ParsedPath)
}

func TestInsertDuplicateRecordNumberAddsNote(t *testing.T) {
	c := New()
	c.Insert(namedRecord(t, 1, "first.txt", RootRecordNumber))
	c.Insert(namedRecord(t, 1, "second.txt", RootRecordNumber))

	r, ok := c.Get(1)
	require.True(t, ok)
	require.Equal(t, "second.txt", r.FileNames[0].Name)
	require.Contains(t, r.Notes, "Duplicate record number, overwritten")
}

func TestRecordsAscendingOrder(t *testing.T) {
	c := New()
	c.Insert(namedRecord(t, 30, "c", RootRecordNumber))
	c.Insert(namedRecord(t, 10, "a", RootRecordNumber))
	c.Insert(namedRecord(t, 20, "b", RootRecordNumber))

	nums := make([]uint32, 0, 3)
	for _, r := range c.Records() {
		nums = append(nums, r.RecordNumber)
	}
	require.Equal(t, []uint32{10, 20, 30}, nums)
}
