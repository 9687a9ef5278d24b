package model

// MinModelSize is the byte size a downloaded model must exceed to be
// accepted. Anything at or below it is treated as a truncated or error-page
// download.
const MinModelSize = 100_000

// FetchResult is the outcome of downloading one catalog entry.
type FetchResult struct {
	Entry CatalogEntry
	Path  string // Final destination path
	Size  int64  // Downloaded size in bytes
	Err   error  // Non-nil when the entry failed
}

// OK reports whether the entry was downloaded and accepted.
func (r FetchResult) OK() bool {
	return r.Err == nil
}

// FetchReport summarizes a downloader run.
type FetchReport struct {
	Results []FetchResult
}

// Succeeded returns the number of accepted downloads.
func (r FetchReport) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() {
			n++
		}
	}
	return n
}

// Total returns the number of attempted downloads.
func (r FetchReport) Total() int {
	return len(r.Results)
}
