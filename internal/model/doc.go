// Package model defines the core data structures used throughout
// lux-downloader.
//
// # SourceItem
//
// SourceItem is one item lux resolved from a URL or BV code, with its
// available streams:
//
//	for _, item := range items {
//	    fmt.Println(item.Title, len(item.Streams))
//	}
//
// # Stream
//
// Stream is a single quality/format option. Its String form is the label
// shown when the user picks a stream:
//
//	fmt.Println(stream) // id: 80 | quality: 1080P
//
// # SelectedJob
//
// SelectedJob pairs a chosen stream with its source title. The order of a
// []SelectedJob is the download order and doubles as the lux item
// selector, see Selector.
//
// # Size Accounting
//
// TotalSizeMB follows lux's convention of 800,000 bytes per megabyte so the
// numbers shown before downloading match what lux itself prints.
package model
