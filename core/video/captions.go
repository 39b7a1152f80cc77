package video

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gaurav-prasanna/recipepipe/core/extract"
)

// ParseCaptions flattens a timed-text document into plain text. Both the
// legacy <transcript><text> format and the <timedtext><body><p> format
// are accepted; caption text is often entity-escaped twice.
func ParseCaptions(doc string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(doc))
	dec.Strict = false
	dec.Entity = xml.HTMLEntity

	var (
		parts []string
		depth int // > 0 while inside a caption element
		cur   strings.Builder
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parsing captions: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "text" || t.Name.Local == "p" {
				depth++
			}
		case xml.EndElement:
			if (t.Name.Local == "text" || t.Name.Local == "p") && depth > 0 {
				depth--
				if depth == 0 {
					parts = append(parts, cur.String())
					cur.Reset()
				}
			}
		case xml.CharData:
			if depth > 0 {
				cur.Write(t)
			}
		}
	}
	return extract.CollapseSpace(extract.DecodeEntities(strings.Join(parts, " "))), nil
}
