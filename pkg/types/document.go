// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Document is one newswire story extracted from a corpus file. Documents
// are immutable once emitted by the parser.
type Document struct {
	// Title is the headline text.
	Title string `json:"title" yaml:"title"`

	// Body is the story text, with whitespace runs collapsed to single
	// spaces.
	Body string `json:"body" yaml:"body"`

	// Topics lists the assigned topic categories in encounter order.
	// Duplicates are preserved.
	Topics []string `json:"topics" yaml:"topics"`

	// Split is the train/test partition label carried by the document
	// boundary tag (e.g. "TRAIN", "TEST"). Opaque to this package; callers
	// filter on it.
	Split string `json:"split" yaml:"split"`
}

// HasTopics reports whether the document carries at least one topic.
// Documents without topics are unlabeled and never appear in minibatches.
func (d Document) HasTopics() bool {
	return len(d.Topics) > 0
}

// Batch is one minibatch of training examples: parallel slices of example
// text and binary labels, order-correspondent and of equal length. The
// empty batch is the stream-exhaustion signal, not an error.
type Batch struct {
	Texts  []string
	Labels []int
}

// Len returns the number of examples in the batch.
func (b Batch) Len() int {
	return len(b.Texts)
}

// Empty reports whether the batch holds no examples.
func (b Batch) Empty() bool {
	return len(b.Texts) == 0
}
