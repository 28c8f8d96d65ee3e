// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus downloads the Reuters-21578 archive on first use and
// streams its documents as a lazy, single-pass sequence.
package corpus

import (
	"context"
	"fmt"
	"io"
	"iter"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pdiddy/corpus-learn/internal/sgml"
	"github.com/pdiddy/corpus-learn/pkg/types"
)

// DefaultEncoding is the text encoding of the corpus files.
const DefaultEncoding = "latin-1"

// Corpus provides streaming access to the unpacked corpus files.
type Corpus struct {
	dataDir  string
	encoding string
}

// Open ensures the corpus exists at cfg.DataDir, downloading and unpacking
// the archive on first use, and returns a handle for streaming documents.
// Fetch and unpack failures surface here, before any document is yielded.
// Progress lines go to w.
func Open(ctx context.Context, client *http.Client, cfg types.CorpusConfig, w io.Writer) (*Corpus, error) {
	if err := ensureData(ctx, client, cfg, w); err != nil {
		return nil, err
	}
	enc := cfg.Encoding
	if enc == "" {
		enc = DefaultEncoding
	}
	return &Corpus{dataDir: cfg.DataDir, encoding: enc}, nil
}

// Documents returns a lazy single-pass sequence of every document whose
// split label equals split, across all corpus files. Files are visited in
// sorted name order so batch contents are reproducible within a run. Each
// file gets a fresh parser, so no parser state crosses file boundaries.
// Documents with other split labels are silently dropped; filtering never
// affects parsing. A file or parse error ends the sequence with that
// error.
func (c *Corpus) Documents(split string) iter.Seq2[types.Document, error] {
	return func(yield func(types.Document, error) bool) {
		// Glob returns sorted names, keeping cross-file order
		// deterministic.
		files, err := filepath.Glob(filepath.Join(c.dataDir, "*.sgm"))
		if err != nil {
			yield(types.Document{}, fmt.Errorf("listing corpus files: %w", err))
			return
		}
		for _, path := range files {
			if !c.streamFile(path, split, yield) {
				return
			}
		}
	}
}

// streamFile parses one corpus file, forwarding matching documents to
// yield. It reports whether iteration should continue with the next file.
// The file handle is released on every exit path, including early
// termination by the consumer.
func (c *Corpus) streamFile(path, split string, yield func(types.Document, error) bool) bool {
	parser, err := sgml.NewParser(c.encoding)
	if err != nil {
		yield(types.Document{}, err)
		return false
	}

	f, err := os.Open(path)
	if err != nil {
		yield(types.Document{}, fmt.Errorf("opening corpus file: %w", err))
		return false
	}
	defer f.Close()

	for doc, err := range parser.Parse(f) {
		if err != nil {
			yield(types.Document{}, fmt.Errorf("%s: %w", filepath.Base(path), err))
			return false
		}
		if doc.Split != split {
			continue
		}
		if !yield(doc, nil) {
			return false
		}
	}
	return true
}
