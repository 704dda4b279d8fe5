package dto

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/handiism/lux-downloader/internal/model"
)

// JSONInfo represents one element of the array printed by `lux -j`.
type JSONInfo struct {
	URL     string                `json:"url"`
	Site    string                `json:"site"`
	Title   string                `json:"title"`
	Type    string                `json:"type"`
	Streams map[string]JSONStream `json:"streams"`
	Caption JSONCaption           `json:"caption"`
	Err     json.RawMessage       `json:"err"`
}

// JSONCaption represents the caption block of an info element.
type JSONCaption struct {
	Danmaku  *JSONFile       `json:"danmaku"`
	Subtitle json.RawMessage `json:"subtitle"`
}

// JSONFile is the {url, size, ext} triple lux uses for parts and danmaku.
type JSONFile struct {
	URL  string `json:"url"`
	Size int64  `json:"size"`
	Ext  string `json:"ext"`
}

// HasError returns true if lux reported an extraction error for this item.
//
// lux serialises Go error values, which usually come out as "{}", so any
// value other than null or an empty string counts.
func (ji *JSONInfo) HasError() bool {
	raw := bytes.TrimSpace(ji.Err)
	switch string(raw) {
	case "", "null", `""`:
		return false
	}
	return true
}

// ErrorText returns the raw error value, for diagnostics.
func (ji *JSONInfo) ErrorText() string {
	return string(bytes.TrimSpace(ji.Err))
}

// ToSourceItem converts JSONInfo to a model.SourceItem at the given index.
//
// Streams are ordered by their key in the streams object so the selection
// prompt lists them the same way on every run.
func (ji *JSONInfo) ToSourceItem(index int) *model.SourceItem {
	keys := make([]string, 0, len(ji.Streams))
	for key := range ji.Streams {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	streams := make([]*model.Stream, 0, len(keys))
	for _, key := range keys {
		js := ji.Streams[key]
		streams = append(streams, js.ToStream(key))
	}

	item := &model.SourceItem{
		Index:   index,
		Title:   ji.Title,
		URL:     ji.URL,
		Site:    ji.Site,
		Type:    ji.Type,
		Streams: streams,
		Caption: model.Caption{Subtitle: ji.Caption.Subtitle},
	}
	if ji.Caption.Danmaku != nil {
		item.Caption.Danmaku = model.Danmaku(*ji.Caption.Danmaku)
	}
	if ji.HasError() {
		item.Err = ji.ErrorText()
	}

	return item
}
