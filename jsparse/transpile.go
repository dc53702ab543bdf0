package jsparse

import (
	"fmt"
	"strings"

	"github.com/chaifriendly/lint/errors"
	"github.com/evanw/esbuild/pkg/api"
	"github.com/go-sourcemap/sourcemap"
)

// transpile rewrites TypeScript, JSX and ES module sources into a CommonJS
// script goja can parse, with an inline source map back to the input.
// import(x) is lowered to a require call; the converter folds it back.
func (p *Parser) transpile(source, filename string, loader api.Loader) (string, *sourcemap.Consumer, error) {
	result := api.Transform(source, api.TransformOptions{
		Loader:         loader,
		Sourcefile:     filename,
		Target:         api.ESNext,
		Format:         api.FormatCommonJS,
		Sourcemap:      api.SourceMapInline,
		SourcesContent: api.SourcesContentExclude,
		LogLevel:       api.LogLevelSilent,
		Supported:      map[string]bool{"dynamic-import": false},
	})

	if len(result.Errors) > 0 {
		var errMsgs []string
		for _, e := range result.Errors {
			if e.Location != nil {
				errMsgs = append(errMsgs, fmt.Sprintf("%s:%d:%d: %s",
					e.Location.File, e.Location.Line, e.Location.Column+1, e.Text))
			} else {
				errMsgs = append(errMsgs, e.Text)
			}
		}
		return "", nil, errors.ErrParse.Wrapf("esbuild errors:\n%s", strings.Join(errMsgs, "\n"))
	}

	code := string(result.Code)

	sm, err := ExtractInlineSourceMap(code)
	if err != nil {
		// positions fall back to the generated code
		p.config.GetLogger().Warn("failed to extract source map", "file", filename, "error", err)
	}

	return code, sm, nil
}
