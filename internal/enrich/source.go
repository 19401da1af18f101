// Package enrich ingests enriched candidate records and runs them through
// the quality router in bounded-concurrency batches.
package enrich

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"

	"github.com/bomsight/bomsight/internal/model"
)

// CandidateSource supplies enriched candidates for routing. io.EOF marks
// the end of the stream.
type CandidateSource interface {
	Next() (*model.EnrichedCandidate, error)
	Close() error
}

// jsonFileSource reads candidates from a JSON file holding either an array
// of candidates or newline-delimited candidate objects.
type jsonFileSource struct {
	file    *os.File
	dec     *json.Decoder
	inArray bool
}

// OpenJSONFile opens a candidate file. An array file is streamed element
// by element; anything else is treated as concatenated JSON objects.
func OpenJSONFile(path string) (CandidateSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "enrich: open candidate file %s", path)
	}

	dec := json.NewDecoder(f)
	src := &jsonFileSource{file: f, dec: dec}

	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return src, nil
		}
		f.Close()
		return nil, eris.Wrapf(err, "enrich: parse candidate file %s", path)
	}
	if delim, ok := tok.(json.Delim); ok && delim == '[' {
		src.inArray = true
		return src, nil
	}

	// Not an array: reopen and decode whole objects from the start.
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, eris.Wrapf(err, "enrich: rewind candidate file %s", path)
	}
	src.dec = json.NewDecoder(f)
	return src, nil
}

func (s *jsonFileSource) Next() (*model.EnrichedCandidate, error) {
	if s.inArray && !s.dec.More() {
		return nil, io.EOF
	}
	var cand model.EnrichedCandidate
	if err := s.dec.Decode(&cand); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, eris.Wrap(err, "enrich: decode candidate")
	}
	return &cand, nil
}

func (s *jsonFileSource) Close() error {
	return s.file.Close()
}

// sliceSource serves an in-memory batch, mainly for tests and the HTTP
// surface.
type sliceSource struct {
	items []model.EnrichedCandidate
	pos   int
}

// NewSliceSource wraps a slice of candidates as a CandidateSource.
func NewSliceSource(items []model.EnrichedCandidate) CandidateSource {
	return &sliceSource{items: items}
}

func (s *sliceSource) Next() (*model.EnrichedCandidate, error) {
	if s.pos >= len(s.items) {
		return nil, io.EOF
	}
	c := s.items[s.pos]
	s.pos++
	return &c, nil
}

func (s *sliceSource) Close() error { return nil }
