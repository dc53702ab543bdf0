package jslint

import (
	"io/fs"
	"strings"

	"github.com/chaifriendly/lint/errors"
	"github.com/chaifriendly/lint/system"
	"github.com/chaifriendly/lint/typeinfo"
)

// TypeFactsSuffixes are the sidecar suffixes FindTypeFacts tries, in order.
var TypeFactsSuffixes = []string{".types.yaml", ".types.yml", ".types.json"}

// IsTypeFactsFile reports whether path names a type facts sidecar.
func IsTypeFactsFile(path string) bool {
	for _, suffix := range TypeFactsSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

// FindTypeFacts loads the type facts stored next to source, e.g.
// src/app.ts.types.yaml for src/app.ts. It returns nil without error when no
// sidecar exists.
func FindTypeFacts(fsys system.VirtualFS, source string) (*typeinfo.Facts, error) {
	for _, suffix := range TypeFactsSuffixes {
		facts, err := typeinfo.LoadFactsFile(fsys, source+suffix)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return facts, nil
	}
	return nil, nil
}
