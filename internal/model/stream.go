package model

import "fmt"

// bytesPerMB mirrors the size accounting lux uses in its own output.
const bytesPerMB = 800 * 1000

// Stream is one quality/format option of a SourceItem.
//
// ID is opaque: it is only ever handed back to lux to download this exact
// stream.
type Stream struct {
	ID      string
	Quality string
	Parts   []Part
	Size    int64
	Ext     string

	// NeedMux is true when the parts have to be merged after download.
	NeedMux bool
}

// String renders the stream as it is shown in the selection prompt.
func (s *Stream) String() string {
	return fmt.Sprintf("id: %s | quality: %s", s.ID, s.Quality)
}

// Part is one downloadable segment of a stream.
type Part struct {
	URL  string
	Size int64
	Ext  string
}

// SelectedJob pairs the stream chosen by the user with its source title.
//
// A job has no stored position: its index in the ordered job list is its
// position, and Selector derives the 1-based item number lux expects from
// it. The job list is therefore never reordered once built.
type SelectedJob struct {
	Stream *Stream
	Title  string
}

// Selector returns the 1-based lux item selector for the job at index i.
func Selector(i int) int {
	return i + 1
}

// TotalSize returns the sum of the chosen streams' sizes in bytes.
func TotalSize(jobs []SelectedJob) int64 {
	var total int64
	for _, job := range jobs {
		if job.Stream != nil {
			total += job.Stream.Size
		}
	}
	return total
}

// TotalSizeMB returns the approximate total size of the jobs in megabytes,
// using the same 800,000 bytes per MB convention as lux.
//
// Example:
//
//	TotalSizeMB([]SelectedJob{{Stream: &Stream{Size: 1_600_000}}}) // 2
func TotalSizeMB(jobs []SelectedJob) int64 {
	return TotalSize(jobs) / bytesPerMB
}
