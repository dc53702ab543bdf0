// Package jsparse turns JavaScript and TypeScript sources into estree files.
//
// JavaScript is parsed with goja's parser. TypeScript, JSX and ES module
// sources are first transpiled to CommonJS with esbuild; node positions are
// mapped back to the original text through esbuild's source map, and
// top-level statements esbuild generated (helpers, the "use strict" prologue)
// are dropped. ESTree JSON documents (.json) are decoded as is.
package jsparse

import (
	"bytes"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/chaifriendly/lint/errors"
	"github.com/chaifriendly/lint/estree"
	"github.com/chaifriendly/lint/system"
	"github.com/dop251/goja/parser"
	"github.com/evanw/esbuild/pkg/api"
)

// Logger receives diagnostics about the front end itself.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

// Config configures a Parser.
type Config struct {
	// Logger defaults to slog.Default().
	Logger Logger
}

// GetLogger returns the configured logger or the default.
func (c *Config) GetLogger() Logger {
	if c == nil || c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// Parser parses source files into estree files. It is safe for concurrent use.
type Parser struct {
	config *Config
}

// New creates a Parser. A nil config uses the defaults.
func New(config *Config) *Parser {
	if config == nil {
		config = &Config{}
	}
	return &Parser{config: config}
}

// importCall finds import(...) calls, which goja's grammar lacks.
var importCall = regexp.MustCompile(`\bimport\s*\(`)

// SupportedExtensions lists the file extensions Parse understands.
var SupportedExtensions = []string{".js", ".cjs", ".mjs", ".jsx", ".ts", ".cts", ".mts", ".tsx", ".json"}

// IsSupported reports whether path has an extension Parse understands.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// ParseFile reads and parses path from fsys.
func (p *Parser) ParseFile(fsys system.VirtualFS, path string) (*estree.File, error) {
	data, err := system.ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}
	return p.Parse(path, data)
}

// Parse parses src, choosing the front end by the extension of path.
func (p *Parser) Parse(path string, src []byte) (*estree.File, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return estree.Decode(bytes.NewReader(src), path)
	case ".js", ".cjs":
		if importCall.Match(src) {
			return p.parseTranspiled(path, string(src), api.LoaderJS)
		}
		file, err := p.parseScript(path, string(src))
		if err == nil {
			return file, nil
		}
		// goja has no module grammar; retry through esbuild before giving up.
		p.config.GetLogger().Debug("retrying as module", "file", path, "error", err)
		if file, retryErr := p.parseTranspiled(path, string(src), api.LoaderJS); retryErr == nil {
			return file, nil
		}
		return nil, err
	case ".mjs":
		return p.parseTranspiled(path, string(src), api.LoaderJS)
	case ".jsx":
		return p.parseTranspiled(path, string(src), api.LoaderJSX)
	case ".ts", ".cts", ".mts":
		return p.parseTranspiled(path, string(src), api.LoaderTS)
	case ".tsx":
		return p.parseTranspiled(path, string(src), api.LoaderTSX)
	}
	return nil, errors.ErrUnsupportedSource.Wrapf("%s: unknown extension %q", path, ext)
}

func (p *Parser) parseScript(path, source string) (*estree.File, error) {
	program, err := parser.ParseFile(nil, path, source, 0, parser.WithDisableSourceMaps)
	if err != nil {
		return nil, errors.ErrParse.Wrap(err)
	}

	c := newConverter(source, nil, "")
	root := c.program(program)
	estree.Link(root)
	return &estree.File{Root: root, Path: path, Source: source}, nil
}

func (p *Parser) parseTranspiled(path, source string, loader api.Loader) (*estree.File, error) {
	code, sm, err := p.transpile(source, path, loader)
	if err != nil {
		return nil, err
	}

	program, err := parser.ParseFile(nil, path, code, 0, parser.WithDisableSourceMaps)
	if err != nil {
		return nil, errors.ErrParse.Wrap(fmt.Errorf("transpiled output: %w", err))
	}

	c := newConverter(code, sm, source)
	root := c.program(program)
	estree.Link(root)
	return &estree.File{Root: root, Path: path, Source: source}, nil
}

// Parse parses src with a default Parser.
func Parse(path string, src []byte) (*estree.File, error) {
	return New(nil).Parse(path, src)
}
