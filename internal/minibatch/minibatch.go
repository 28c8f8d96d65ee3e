// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package minibatch turns a lazy document stream into bounded-size
// training batches. At any instant at most one batch worth of documents is
// resident, so peak memory is proportional to the batch size and
// independent of corpus size.
package minibatch

import (
	"iter"
	"slices"

	"github.com/pdiddy/corpus-learn/pkg/types"
)

// Cursor is a destructive single-pass reader over a document sequence.
// Every pull permanently advances the underlying stream; a partially
// consumed cursor cannot be rewound or re-iterated.
type Cursor struct {
	next func() (types.Document, error, bool)
	stop func()
}

// NewCursor wraps a document sequence for incremental consumption.
// Close must be called once the cursor is no longer needed so the
// underlying stream can release its resources.
func NewCursor(seq iter.Seq2[types.Document, error]) *Cursor {
	next, stop := iter.Pull2(seq)
	return &Cursor{next: next, stop: stop}
}

// Close releases the underlying stream. Safe to call more than once.
func (c *Cursor) Close() {
	c.stop()
}

// Next extracts one minibatch. It pulls at most size documents from the
// cursor, discards those without topics, and labels the rest by whether
// positive appears among their topics, preserving relative order. size
// counts pulled documents before the topic filter, so a returned batch may
// hold fewer than size examples. The empty batch signals exhaustion and is
// only returned when nothing remains after filtering.
func Next(c *Cursor, size int, positive string) (types.Batch, error) {
	var batch types.Batch
	for i := 0; i < size; i++ {
		doc, err, ok := c.next()
		if !ok {
			break
		}
		if err != nil {
			return types.Batch{}, err
		}
		if !doc.HasTopics() {
			continue
		}
		batch.Texts = append(batch.Texts, doc.Title+"\n\n"+doc.Body)
		batch.Labels = append(batch.Labels, label(doc, positive))
	}
	return batch, nil
}

// All yields non-empty minibatches from the cursor until the first empty
// extraction. The empty batch is the sole termination condition, judged
// after the topic filter rather than by the raw pull count.
func All(c *Cursor, size int, positive string) iter.Seq2[types.Batch, error] {
	return func(yield func(types.Batch, error) bool) {
		for {
			batch, err := Next(c, size, positive)
			if err != nil {
				yield(types.Batch{}, err)
				return
			}
			if batch.Empty() {
				return
			}
			if !yield(batch, nil) {
				return
			}
		}
	}
}

// label is 1 when positive appears among the document's topics, else 0.
func label(doc types.Document, positive string) int {
	if slices.Contains(doc.Topics, positive) {
		return 1
	}
	return 0
}
