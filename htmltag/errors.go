package htmltag

import "errors"

// The build error taxonomy.  All of these surface immediately from Build;
// none are retried, and a builder that failed is abandoned.
var (
	// ErrEmptyResult reports a template that produced no content.
	ErrEmptyResult = errors.New("htmltag: nothing to return")

	// ErrStructure reports malformed document structure: a start/end tag
	// mismatch, an attribute set on a fragment, or an interpolated
	// attribute name.
	ErrStructure = errors.New("htmltag: structure error")

	// ErrType reports a value of the wrong kind: a style attribute or an
	// attribute expansion that is not a mapping, or a tag that is neither
	// a string nor a component.
	ErrType = errors.New("htmltag: type error")

	// ErrInternal reports a descriptor/placeholder mismatch.  It indicates
	// a defect in the placeholder codec or the interleaver, never bad user
	// input, and is not recoverable.
	ErrInternal = errors.New("htmltag: internal consistency error")
)
