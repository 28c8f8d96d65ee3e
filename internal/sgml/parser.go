// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sgml extracts newswire documents from Reuters-21578 SGML files.
//
// The parser is incremental: it tokenizes the raw byte stream as it is
// read, routes character data to per-document accumulators, and emits each
// document the moment its closing boundary tag is observed. Nothing is
// buffered beyond the document currently being assembled, so memory stays
// constant regardless of file size or how the input happens to be chunked.
package sgml

import (
	"fmt"
	"io"
	"iter"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/pdiddy/corpus-learn/pkg/types"
)

// Tag vocabulary of the corpus format. The tokenizer lower-cases tag
// names, so these are the forms seen during dispatch.
const (
	tagDocument   = "reuters"
	tagTitle      = "title"
	tagBody       = "body"
	tagTopics     = "topics"
	tagTopicEntry = "d"
)

// splitAttr is the attribute on the document boundary tag carrying the
// train/test partition label.
const splitAttr = "lewissplit"

// region identifies which accumulator, if any, character data is routed
// to. At most one region is active at a time.
type region int

const (
	regionNone region = iota
	regionTitle
	regionBody
	regionTopicEntry
)

// docState accumulates one in-progress document. A fresh zero value
// replaces it after every emitted document, so no field survives across
// document boundaries.
type docState struct {
	active   region
	inTopics bool
	title    strings.Builder
	body     strings.Builder
	entry    strings.Builder
	topics   []string
	split    string
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// document finalizes the accumulated state into an immutable Document.
// Body whitespace runs collapse to single spaces per the corpus format;
// titles are trimmed. The trim also drops the single boundary space a
// bare run-collapse would leave at either end of the body.
func (s *docState) document() types.Document {
	body := whitespaceRun.ReplaceAllString(s.body.String(), " ")
	return types.Document{
		Title:  strings.TrimSpace(s.title.String()),
		Body:   strings.TrimSpace(body),
		Topics: s.topics,
		Split:  s.split,
	}
}

// startTag dispatches a start tag event. Tags outside the vocabulary are
// no-ops. Entering the topic list does not start an accumulator; only a
// topic entry does.
func (s *docState) startTag(name string) {
	switch name {
	case tagDocument:
		// Boundary opens. The split attribute is captured by the caller
		// before dispatch.
	case tagTitle:
		s.active = regionTitle
	case tagBody:
		s.active = regionBody
	case tagTopics:
		s.inTopics = true
	case tagTopicEntry:
		if s.inTopics {
			s.active = regionTopicEntry
		}
	}
}

// endTag dispatches an end tag event and reports whether the document
// boundary closed. Closing a topic entry appends its text to the topics
// list, preserving encounter order and duplicates.
func (s *docState) endTag(name string) bool {
	switch name {
	case tagDocument:
		return true
	case tagTitle:
		if s.active == regionTitle {
			s.active = regionNone
		}
	case tagBody:
		if s.active == regionBody {
			s.active = regionNone
		}
	case tagTopics:
		s.inTopics = false
	case tagTopicEntry:
		if s.active == regionTopicEntry {
			s.topics = append(s.topics, s.entry.String())
			s.entry.Reset()
			s.active = regionNone
		}
	}
	return false
}

// text routes character data to the single active accumulator. Data
// outside any active region is discarded.
func (s *docState) text(data string) {
	switch s.active {
	case regionTitle:
		s.title.WriteString(data)
	case regionBody:
		s.body.WriteString(data)
	case regionTopicEntry:
		s.entry.WriteString(data)
	}
}

// Parser turns a raw SGML byte stream into a lazy sequence of documents.
// One parser handles one input; all per-document state lives inside Parse,
// so nothing leaks between inputs or between documents.
type Parser struct {
	enc encoding.Encoding
}

// NewParser returns a parser that decodes input under the named encoding
// ("latin-1" for this corpus). Unknown encoding names are an error.
func NewParser(name string) (*Parser, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("resolving encoding %q: %w", name, err)
	}
	return &Parser{enc: enc}, nil
}

// Parse returns a single-use lazy sequence of completed documents read
// from r. Chunk and read boundaries in r are irrelevant: the tokenizer
// consumes bytes incrementally and a document is yielded as soon as its
// closing boundary tag arrives. Malformed markup is handled by the
// tokenizer's own recovery; read or decode errors end the sequence with a
// non-nil error.
func (p *Parser) Parse(r io.Reader) iter.Seq2[types.Document, error] {
	return func(yield func(types.Document, error) bool) {
		z := html.NewTokenizer(transform.NewReader(r, p.enc.NewDecoder()))
		state := &docState{}
		for {
			switch z.Next() {
			case html.ErrorToken:
				if err := z.Err(); err != io.EOF {
					yield(types.Document{}, fmt.Errorf("tokenizing: %w", err))
				}
				return
			case html.StartTagToken, html.SelfClosingTagToken:
				tok := z.Token()
				if v, ok := attrValue(tok, splitAttr); ok {
					state.split = v
				}
				state.startTag(tok.Data)
			case html.EndTagToken:
				if state.endTag(z.Token().Data) {
					if !yield(state.document(), nil) {
						return
					}
					state = &docState{}
				}
			case html.TextToken:
				state.text(z.Token().Data)
			}
		}
	}
}

// attrValue returns the value of the named attribute on a tag token.
func attrValue(tok html.Token, name string) (string, bool) {
	for _, a := range tok.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}
