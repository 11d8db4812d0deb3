package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// LooseDate is a publish date as the API delivers it: sometimes an ISO
// string, sometimes a bare YYYYMMDD string, sometimes a number. The raw
// token is preserved so downstream files carry the value unchanged.
type LooseDate string

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (d *LooseDate) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*d = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*d = LooseDate(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("publish date is neither string nor number: %w", err)
	}
	*d = LooseDate(n.String())
	return nil
}

// MarshalJSON always emits a string so persisted files have one shape.
func (d LooseDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(d))
}

// Sermon is one entry of the remote sermon listing.
type Sermon struct {
	VideoID     string    `json:"video_id"`
	Title       string    `json:"title"`
	PublishDate LooseDate `json:"publish_date"`
	Channel     string    `json:"channel"`
	URL         string    `json:"url"`
}

// Chunk is one transcript segment of a sermon. Chunks are consumed during a
// single processing pass and never persisted standalone.
type Chunk struct {
	VideoID   string  `json:"video_id,omitempty"`
	Text      string  `json:"text"`
	StartTime float64 `json:"start_time"`
}

type sermonListResponse struct {
	Sermons []Sermon `json:"sermons"`
}

type chunksResponse struct {
	Chunks []Chunk `json:"chunks"`
}

// BibleBook is one entry of the book-level reference statistics endpoint.
type BibleBook struct {
	Book  string `json:"book"`
	Count int    `json:"count"`
}

type bibleBooksResponse struct {
	Books []BibleBook `json:"books"`
}
