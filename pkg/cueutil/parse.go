// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

type (
	// Schema is CUE source plus the definition a document must satisfy,
	// e.g. the embedded plugin.cue schema and "#Manifest".
	Schema struct {
		Source     []byte
		Definition string
	}

	// Result is a decoded document. Unified keeps the CUE value for fields
	// the Go type does not carry.
	Result[T any] struct {
		Value   *T
		Unified cue.Value
	}
)

// Decode checks data against s and decodes it into T. Every call builds its
// own cue.Context, so concurrent plugin loads do not share CUE state.
// Problems in data are returned as a *FileError.
func Decode[T any](s Schema, data []byte, opts ...Option) (*Result[T], error) {
	o := newSettings(opts)
	if err := CheckFileSize(data, o.maxFileSize, o.filename); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()
	def, err := s.lookup(ctx)
	if err != nil {
		return nil, err
	}

	doc := ctx.CompileBytes(data, cue.Filename(o.filename))
	if doc.Err() != nil {
		return nil, FormatError(doc.Err(), o.filename)
	}

	v := def.Unify(doc)
	if err := v.Validate(cue.Concrete(!o.partial)); err != nil {
		return nil, FormatError(err, o.filename)
	}

	out := new(T)
	if err := v.Decode(out); err != nil {
		return nil, FormatError(err, o.filename)
	}
	return &Result[T]{Value: out, Unified: v}, nil
}

// DecodeFile reads path and passes it to Decode. Errors are reported
// against path unless WithFilename says otherwise.
func DecodeFile[T any](s Schema, path string, opts ...Option) (*Result[T], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Decode[T](s, data, append([]Option{WithFilename(path)}, opts...)...)
}

// A broken embedded schema is a programming error, not a user one.
func (s Schema) lookup(ctx *cue.Context) (cue.Value, error) {
	src := ctx.CompileBytes(s.Source)
	if src.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: schema does not compile: %w", src.Err())
	}
	def := src.LookupPath(cue.ParsePath(s.Definition))
	if !def.Exists() || def.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: schema has no %s definition", s.Definition)
	}
	return def, nil
}
