// Copyright 2025 Andamio Labs
//
// Dotted-path resolution for field-source expressions.

package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// segment is one compiled step of a dotted path: a map-key lookup, optionally
// followed by an array index.
type segment struct {
	key      string
	hasIndex bool
	index    int
}

// Path is a compiled dotted-path expression, e.g. "arr[0].field". Compiling
// once per definition load avoids re-parsing the string on every evaluation.
type Path struct {
	raw      string
	segments []segment
}

// CompilePath parses a dotted-path expression. Segments are separated by
// ".". Each segment is an identifier, optionally followed by "[i]" selecting
// an array index.
func CompilePath(expr string) (Path, error) {
	if expr == "" {
		return Path{}, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	parts := strings.Split(expr, ".")
	segments := make([]segment, 0, len(parts))

	for _, part := range parts {
		seg, err := parseSegment(part)
		if err != nil {
			return Path{}, fmt.Errorf("%w: %q: %v", ErrInvalidPath, expr, err)
		}
		segments = append(segments, seg)
	}

	return Path{raw: expr, segments: segments}, nil
}

// MustCompilePath is CompilePath but panics on error. Intended for
// definition literals where the path is a compile-time constant.
func MustCompilePath(expr string) Path {
	p, err := CompilePath(expr)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Path) String() string { return p.raw }

// IsZero reports whether the path was never compiled (zero value).
func (p Path) IsZero() bool { return p.raw == "" && p.segments == nil }

func parseSegment(part string) (segment, error) {
	open := strings.IndexByte(part, '[')
	if open < 0 {
		if part == "" {
			return segment{}, fmt.Errorf("empty segment")
		}
		return segment{key: part}, nil
	}

	if !strings.HasSuffix(part, "]") {
		return segment{}, fmt.Errorf("unterminated index in %q", part)
	}

	key := part[:open]
	if key == "" {
		return segment{}, fmt.Errorf("missing key before index in %q", part)
	}

	idxStr := part[open+1 : len(part)-1]
	idx, err := strconv.Atoi(idxStr)
	if err != nil {
		return segment{}, fmt.Errorf("bad index %q: %w", idxStr, err)
	}

	return segment{key: key, hasIndex: true, index: idx}, nil
}

// Resolve walks the compiled path against root. A missing intermediate
// segment (absent map key, nil value) yields (nil, false) — "omit this
// field" — and is not an error. Applying an index to a non-array, or a key
// access to a non-object, returns an error: this is a type mismatch, not a
// simple absence, and the enclosing side effect must fail.
func (p Path) Resolve(root any) (any, bool, error) {
	cur := root

	for _, seg := range p.segments {
		if cur == nil {
			return nil, false, nil
		}

		m, ok := asMap(cur)
		if !ok {
			return nil, false, fmt.Errorf("%w: %q: expected object at %q, got %T", ErrTypeMismatch, p.raw, seg.key, cur)
		}

		v, present := m[seg.key]
		if !present {
			return nil, false, nil
		}
		cur = v

		if seg.hasIndex {
			if cur == nil {
				return nil, false, nil
			}
			arr, ok := asSlice(cur)
			if !ok {
				return nil, false, fmt.Errorf("%w: %q: expected array at %q, got %T", ErrTypeMismatch, p.raw, seg.key, cur)
			}
			if seg.index < 0 || seg.index >= len(arr) {
				return nil, false, nil
			}
			cur = arr[seg.index]
		}
	}

	if cur == nil {
		return nil, false, nil
	}
	return cur, true, nil
}

// GetValueFromPath resolves an uncompiled dotted-path string against obj.
// It is the shared primitive behind both FieldSource evaluation and the
// testing harness's getValueFromPath.
func GetValueFromPath(obj any, path string) (any, bool, error) {
	p, err := CompilePath(path)
	if err != nil {
		return nil, false, err
	}
	return p.Resolve(obj)
}

func asMap(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	default:
		return nil, false
	}
}

func asSlice(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	default:
		return nil, false
	}
}
