package jsparse

import (
	"encoding/base64"
	"fmt"
	"sort"
	"strings"

	"github.com/go-sourcemap/sourcemap"
)

// inlineSourceMapPrefix is the prefix for inline source maps.
const inlineSourceMapPrefix = "//# sourceMappingURL=data:application/json;base64,"

// ExtractInlineSourceMap extracts and parses an inline source map from JavaScript code.
// It returns nil without error when the code carries no map.
func ExtractInlineSourceMap(code string) (*sourcemap.Consumer, error) {
	idx := strings.LastIndex(code, inlineSourceMapPrefix)
	if idx == -1 {
		return nil, nil
	}

	b64Data := strings.TrimSpace(code[idx+len(inlineSourceMapPrefix):])
	if newlineIdx := strings.IndexAny(b64Data, "\r\n"); newlineIdx != -1 {
		b64Data = b64Data[:newlineIdx]
	}

	jsonData, err := base64.StdEncoding.DecodeString(b64Data)
	if err != nil {
		return nil, fmt.Errorf("decoding source map base64: %w", err)
	}

	consumer, err := sourcemap.Parse("", jsonData)
	if err != nil {
		// an empty file transpiles to a map without mappings
		if strings.Contains(err.Error(), "mappings are empty") {
			return nil, nil
		}
		return nil, fmt.Errorf("parsing source map: %w", err)
	}

	return consumer, nil
}

// lineIndex holds the byte offset at which each line of a text starts.
type lineIndex struct {
	starts []int
	size   int
}

func newLineIndex(text string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{starts: starts, size: len(text)}
}

// position converts a byte offset to a 1-based line and 0-based column.
func (li *lineIndex) position(offset int) (line, column int) {
	offset = li.clamp(offset)
	i := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > offset }) - 1
	return i + 1, offset - li.starts[i]
}

// offset converts a 1-based line and 0-based column to a byte offset.
func (li *lineIndex) offset(line, column int) int {
	if line < 1 {
		return 0
	}
	if line > len(li.starts) {
		return li.size
	}
	return li.clamp(li.starts[line-1] + column)
}

func (li *lineIndex) clamp(offset int) int {
	return max(0, min(offset, li.size))
}
