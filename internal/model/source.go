package model

import "encoding/json"

// SourceItem is one item resolved from the user's input by the extractor.
//
// A single URL can resolve to several items (a playlist, a multi-part
// upload). Index is the item's position in the extractor output and is
// what the user's choice is later addressed by. SourceItem values are
// built once per run and never modified afterwards.
//
// Example:
//
//	item := &SourceItem{Index: 0, Title: "Video A", Streams: streams}
//	for _, s := range item.Streams {
//	    fmt.Println(s) // id: 80 | quality: 1080P
//	}
type SourceItem struct {
	// Index is the 0-based position of the item in the extractor output.
	Index int

	// Title is the display title of the item.
	Title string

	// URL is the page URL the extractor resolved this item from.
	URL string

	// Site is the human-readable site name reported by the extractor.
	Site string

	// Type is the media type reported by the extractor, e.g. "video".
	Type string

	// Streams holds the available quality/format options, ordered by their
	// key in the extractor output.
	Streams []*Stream

	// Err is the error value the extractor reported for this item, empty if
	// none. Such an item is still listed so positions stay aligned.
	Err string

	// Caption holds danmaku/subtitle information. It is carried along for
	// completeness and not used by the download pipeline.
	Caption Caption
}

// HasStreams returns true if at least one stream can be selected.
func (s *SourceItem) HasStreams() bool {
	return len(s.Streams) > 0
}

// Caption describes the side-channel text tracks of a source item.
type Caption struct {
	Danmaku  Danmaku
	Subtitle json.RawMessage
}

// Danmaku is the location of the bullet-comment track of a source item.
type Danmaku struct {
	URL  string
	Size int64
	Ext  string
}
