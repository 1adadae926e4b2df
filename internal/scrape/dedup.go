package scrape

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"sync"
)

// Deduplicator drops postings already seen in this run, keyed by a hash
// of title, company, and location.
type Deduplicator struct {
	mu        sync.Mutex
	seen      map[string]struct{}
	processed int
}

// DedupStats reports how many postings passed through and how many were
// unique.
type DedupStats struct {
	TotalProcessed int
	UniqueJobs     int
}

func NewDeduplicator() *Deduplicator {
	return &Deduplicator{
		seen: make(map[string]struct{}),
	}
}

// IsDuplicate records the posting and reports whether an equivalent one
// was already seen.
func (d *Deduplicator) IsDuplicate(title, company, location string) bool {
	key := strings.Join([]string{
		strings.ToLower(strings.TrimSpace(title)),
		strings.ToLower(strings.TrimSpace(company)),
		strings.ToLower(strings.TrimSpace(location)),
	}, "|")

	sum := md5.Sum([]byte(key))
	hash := hex.EncodeToString(sum[:])

	d.mu.Lock()
	defer d.mu.Unlock()

	d.processed++
	if _, ok := d.seen[hash]; ok {
		return true
	}
	d.seen[hash] = struct{}{}
	return false
}

func (d *Deduplicator) Stats() DedupStats {
	d.mu.Lock()
	defer d.mu.Unlock()

	return DedupStats{
		TotalProcessed: d.processed,
		UniqueJobs:     len(d.seen),
	}
}
