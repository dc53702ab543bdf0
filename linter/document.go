package linter

import (
	"github.com/chaifriendly/lint/typeinfo"
)

// DocumentInfo contains a document and its metadata for linting
type DocumentInfo[T any] struct {
	// Document is the parsed document to lint
	Document T

	// Location is the location (file path or "stdin") of the document,
	// copied onto every reported problem
	Location string

	// Types answers type queries about the document. Nil when no type
	// information is available; rules that need it then fail to activate.
	Types typeinfo.Service
}

// NewDocumentInfo creates a new DocumentInfo with the given document and location
func NewDocumentInfo[T any](doc T, location string) *DocumentInfo[T] {
	return &DocumentInfo[T]{
		Document: doc,
		Location: location,
	}
}

// NewDocumentInfoWithTypes creates a new DocumentInfo backed by a type service
func NewDocumentInfoWithTypes[T any](doc T, location string, types typeinfo.Service) *DocumentInfo[T] {
	return &DocumentInfo[T]{
		Document: doc,
		Location: location,
		Types:    types,
	}
}

// LintOptions contains runtime options for linting
type LintOptions struct {
	// Rules restricts the run to these rule IDs when non-empty. Rules must
	// still be enabled by the configuration.
	Rules []string

	// DisabledRules are skipped even when the configuration enables them.
	DisabledRules []string
}
