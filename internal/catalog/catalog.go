// Package catalog holds the in-memory record table built from a decoded
// $MFT and resolves each record's absolute path by following FILE_NAME
// parent references across the table.
package catalog

import (
	"sort"
	"sync"

	"github.com/shubham/mftcat/internal/ntfs"
)

// RootRecordNumber is the volume root sentinel: a FILE_NAME whose parent
// reference resolves to this record number is a child of "/".
const RootRecordNumber = 5

const (
	pathCircularReference = "Circular_Reference"
	pathOrphan            = "Orphan"
	pathNoFileName        = "NoFNRecord"
)

// Catalog maps record number to decoded record. Insertion order need not
// follow byte offset in the source image (the decode stage may insert from
// several goroutines), and the map itself is unordered, so callers that
// need ascending order use Records().
type Catalog struct {
	mu      sync.Mutex
	records map[uint32]*ntfs.Record
}

// New creates an empty Catalog.
func New() *Catalog {
	return &Catalog{records: make(map[uint32]*ntfs.Record)}
}

// Insert adds or replaces the record keyed by its RecordNumber. Duplicate
// record numbers keep the new record and add a note to it so the
// overwrite is visible in the report. Safe for concurrent use — the
// decode stage may run in parallel across records (they are mutually
// independent until insertion).
func (c *Catalog) Insert(r *ntfs.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.records[r.RecordNumber]; exists {
		r.Notes = append(r.Notes, "Duplicate record number, overwritten")
	}
	c.records[r.RecordNumber] = r
}

// Get returns the record at the given number, if any.
func (c *Catalog) Get(recordNumber uint32) (*ntfs.Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.records[recordNumber]
	return r, ok
}

// Len returns the number of records currently in the catalog.
func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// Records returns every record in ascending record-number order. Output
// formatting always walks this order, regardless of decode or insertion
// order, to satisfy the ascending-record-number output guarantee.
func (c *Catalog) Records() []*ntfs.Record {
	c.mu.Lock()
	defer c.mu.Unlock()

	nums := make([]uint32, 0, len(c.records))
	for n := range c.records {
		nums = append(nums, n)
	}
	sort.Slice(nums, func(i, j int) bool { return nums[i] < nums[j] })

	out := make([]*ntfs.Record, len(nums))
	for i, n := range nums {
		out[i] = c.records[n]
	}
	return out
}

// ResolveAllPaths computes ParsedPath for every record in the catalog.
// Single-threaded by design (spec's concurrency model requires the full
// table before path resolution can run); not safe to call concurrently
// with Insert.
func (c *Catalog) ResolveAllPaths() {
	for _, r := range c.Records() {
		c.resolve(r.RecordNumber)
	}
}

// resolve computes and memoizes ParsedPath for recordNumber, returning it.
// It walks parent references with an explicit chain slice instead of
// recursing, so synthetic trees tens of thousands of records deep cannot
// overflow the call stack, and detects cycles by position within that
// chain: every record on the repeating sub-chain is assigned the
// Circular_Reference sentinel directly, rather than reproducing the
// order-dependent string concatenation of the original recursive
// algorithm (spec invariant 5 only requires the sentinel to appear, not a
// particular concatenation).
//
// RootRecordNumber is special-cased unconditionally: reaching it anywhere
// in the walk terminates the chain at "/", regardless of what FILE_NAME (if
// any) record 5 itself carries. A volume root whose own FILE_NAME happens
// to be "." with parent_ref pointing back at itself must still resolve to
// "/", not "/." — it is the sentinel, not an ordinary child of itself.
func (c *Catalog) resolve(recordNumber uint32) string {
	if r, ok := c.records[recordNumber]; ok && r.ParsedPath != "" {
		return r.ParsedPath
	}

	var chain []*ntfs.Record
	pos := make(map[uint32]int)

	cur := recordNumber
	for {
		if cur == RootRecordNumber {
			if r, ok := c.records[cur]; ok {
				r.ParsedPath = "/"
			}
			finalizeChain(chain, "/")
			break
		}

		r, ok := c.records[cur]
		if !ok {
			finalizeChain(chain, pathOrphan)
			break
		}
		if r.ParsedPath != "" {
			finalizeChain(chain, r.ParsedPath)
			break
		}
		if idx, seen := pos[cur]; seen {
			for _, n := range chain[idx:] {
				n.ParsedPath = pathCircularReference
			}
			finalizeChain(chain[:idx], pathCircularReference)
			break
		}

		fn, hasName := r.PathFileName()
		if !hasName {
			r.ParsedPath = pathNoFileName
			finalizeChain(chain, r.ParsedPath)
			break
		}

		parentNum := uint32(fn.ParentRecordNumber())
		if parentNum == cur {
			r.ParsedPath = "ORPHAN/" + fn.Name
			finalizeChain(chain, r.ParsedPath)
			break
		}

		pos[cur] = len(chain)
		chain = append(chain, r)
		cur = parentNum
	}

	r := c.records[recordNumber]
	if r == nil {
		return pathOrphan
	}
	return r.ParsedPath
}

// finalizeChain assigns ParsedPath to every record in chain (outermost,
// i.e. closest to the already-resolved base, last) by joining onto
// basePath. An empty basePath gives every record in chain the NoFNRecord
// sentinel instead of a joined path.
func finalizeChain(chain []*ntfs.Record, basePath string) {
	parentPath := basePath
	for i := len(chain) - 1; i >= 0; i-- {
		r := chain[i]
		fn, _ := r.PathFileName()
		if parentPath == "" {
			r.ParsedPath = pathNoFileName
		} else {
			r.ParsedPath = joinPath(parentPath, fn.Name)
		}
		parentPath = r.ParsedPath
	}
}

func joinPath(parent, name string) string {
	if parent == "/" {
		return "/" + name
	}
	return parent + "/" + name
}
