package dto

import "github.com/handiism/lux-downloader/internal/model"

// JSONStream represents one entry of an info element's streams object.
type JSONStream struct {
	ID      string     `json:"id"`
	Quality string     `json:"quality"`
	Parts   []JSONFile `json:"parts"`
	Size    int64      `json:"size"`
	Ext     string     `json:"ext"`
	NeedMux bool       `json:"NeedMux"`
}

// ToStream converts JSONStream to a model.Stream.
//
// key is the stream's key in the streams object; it is used as the id when
// lux left the id field empty.
func (js *JSONStream) ToStream(key string) *model.Stream {
	id := js.ID
	if id == "" {
		id = key
	}

	parts := make([]model.Part, len(js.Parts))
	for i, p := range js.Parts {
		parts[i] = model.Part(p)
	}

	size := js.Size
	if size < 0 {
		size = 0
	}

	return &model.Stream{
		ID:      id,
		Quality: js.Quality,
		Parts:   parts,
		Size:    size,
		Ext:     js.Ext,
		NeedMux: js.NeedMux,
	}
}
