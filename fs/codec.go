// Package fs provides file-based storage: line-delimited item checkpoints,
// the operator's JSON configuration and the text digest.
package fs

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"

	"github.com/fwojciec/newsrank"
)

// maxLineSize bounds a single encoded item.
const maxLineSize = 4 << 20

// EncodeItems writes items as one JSON object per line. Non-ASCII text and
// HTML characters are written unescaped.
func EncodeItems(w io.Writer, items []*newsrank.NewsItem) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// DecodeItems reads items written by EncodeItems. Blank lines are skipped.
// Returns EINVALID on a malformed line.
func DecodeItems(r io.Reader) ([]*newsrank.NewsItem, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var items []*newsrank.NewsItem
	line := 0
	for sc.Scan() {
		line++
		b := bytes.TrimSpace(sc.Bytes())
		if len(b) == 0 {
			continue
		}
		var item newsrank.NewsItem
		if err := json.Unmarshal(b, &item); err != nil {
			return nil, newsrank.Errorf(newsrank.EINVALID, "line %d: %v", line, err)
		}
		items = append(items, &item)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
