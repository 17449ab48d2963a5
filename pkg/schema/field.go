// Copyright 2025 Andamio Labs
//
// A small combinator library over sum types: Schema[T] is conceptually a
// parser `value -> Result<T, IssueList>`. Go's lack of a
// type-parameterized JSON decode-from-map primitive means Schema here
// validates shape (map[string]any -> error), not decode-to-struct; callers
// that want a typed result decode buildInputs into their own struct after
// validation succeeds.

package schema

import "fmt"

// Kind enumerates the primitive JSON-ish value kinds a Field can declare.
type Kind int

const (
	KindAny Kind = iota
	KindString
	KindNumber
	KindBool
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "any"
	}
}

// Field describes one key's validation rule within an Object schema.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	OneOf    []any         // when non-empty, value must equal one of these
	Validate func(any) error // optional extra check, run after Kind/OneOf pass
}

// Issue is one validation failure, named after the field it concerns.
type Issue struct {
	Field string
	Err   error
}

func (i Issue) Error() string { return fmt.Sprintf("%s: %v", i.Field, i.Err) }

// IssueList collects every Issue found during a single Validate call. A
// successful validation returns a nil IssueList, never an empty non-nil one.
type IssueList []Issue

func (l IssueList) Error() string {
	if len(l) == 0 {
		return "no issues"
	}
	s := l[0].Error()
	for _, extra := range l[1:] {
		s += "; " + extra.Error()
	}
	return s
}

// Object is a schema over map[string]any: a named set of Fields plus a
// strictness flag for unknown top-level keys.
type Object struct {
	Fields []Field
	// Strict, when true, rejects keys not named by Fields. The default
	// (false) preserves unknown keys so they flow into buildInputs.
	Strict bool
}

// Validate checks value (expected to be a map[string]any decoded from
// request JSON) against the schema. It returns every Issue found, not just
// the first, so callers can surface a complete error report.
func (o Object) Validate(value any) IssueList {
	m, ok := value.(map[string]any)
	if !ok {
		return IssueList{{Field: "", Err: fmt.Errorf("%w: expected object, got %T", ErrWrongKind, value)}}
	}

	var issues IssueList
	declared := make(map[string]struct{}, len(o.Fields))

	for _, f := range o.Fields {
		declared[f.Name] = struct{}{}
		v, present := m[f.Name]
		if !present {
			if f.Required {
				issues = append(issues, Issue{Field: f.Name, Err: ErrMissingField})
			}
			continue
		}
		if err := checkKind(f.Kind, v); err != nil {
			issues = append(issues, Issue{Field: f.Name, Err: err})
			continue
		}
		if len(f.OneOf) > 0 && !oneOfContains(f.OneOf, v) {
			issues = append(issues, Issue{Field: f.Name, Err: ErrNotOneOf})
			continue
		}
		if f.Validate != nil {
			if err := f.Validate(v); err != nil {
				issues = append(issues, Issue{Field: f.Name, Err: err})
			}
		}
	}

	if o.Strict {
		for k := range m {
			if _, ok := declared[k]; !ok {
				issues = append(issues, Issue{Field: k, Err: ErrUnknownKey})
			}
		}
	}

	return issues
}

func checkKind(k Kind, v any) error {
	if k == KindAny || v == nil {
		return nil
	}
	switch k {
	case KindString:
		if _, ok := v.(string); !ok {
			return fmt.Errorf("%w: want %s, got %T", ErrWrongKind, k, v)
		}
	case KindNumber:
		switch v.(type) {
		case float64, float32, int, int32, int64, uint, uint32, uint64:
		default:
			return fmt.Errorf("%w: want %s, got %T", ErrWrongKind, k, v)
		}
	case KindBool:
		if _, ok := v.(bool); !ok {
			return fmt.Errorf("%w: want %s, got %T", ErrWrongKind, k, v)
		}
	case KindObject:
		if _, ok := v.(map[string]any); !ok {
			return fmt.Errorf("%w: want %s, got %T", ErrWrongKind, k, v)
		}
	case KindArray:
		if _, ok := v.([]any); !ok {
			return fmt.Errorf("%w: want %s, got %T", ErrWrongKind, k, v)
		}
	}
	return nil
}

func oneOfContains(allowed []any, v any) bool {
	for _, a := range allowed {
		if a == v {
			return true
		}
	}
	return false
}

// project restricts value (a map[string]any) to the given keys, used by
// createSchemas to split a merged input between txApiSchema and
// sideEffectSchema.
func project(value map[string]any, keys map[string]struct{}) map[string]any {
	out := make(map[string]any, len(keys))
	for k := range keys {
		if v, ok := value[k]; ok {
			out[k] = v
		}
	}
	return out
}

func fieldKeySet(fields []Field) map[string]struct{} {
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f.Name] = struct{}{}
	}
	return set
}
