package consul

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/consul-client/internal/constants"
)

// RequestBuilder accumulates the optional parts of a call and produces a
// Descriptor. A builder may be reused: every Build copies its state, so
// later mutations never leak into descriptors already built.
//
//	desc, err := consul.NewRequest[[]consul.KVPair](consul.MethodGet, "kv/{key}").
//		Require("Key", key).
//		PathKey("key", key).
//		QueryFlag("recurse", true).
//		Build()
type RequestBuilder[T any] struct {
	method       Method
	pathTemplate string
	pathParams   map[string]string
	pathErrs     map[string]error
	query        url.Values
	required     []requiredField
	errs         []error
	body         any
	rawBody      []byte
	hasRawBody   bool
	contentType  string
	options      QueryOptions
	decode       DecodeFunc[T]
}

type requiredField struct {
	name    string
	present bool
}

// NewRequest starts a builder for method and a path template relative to
// /v1/. Placeholders are written as {name} and resolved with PathParam.
func NewRequest[T any](method Method, pathTemplate string) *RequestBuilder[T] {
	return &RequestBuilder[T]{
		method:       method,
		pathTemplate: strings.TrimPrefix(pathTemplate, "/"),
		pathParams:   make(map[string]string),
		pathErrs:     make(map[string]error),
		query:        url.Values{},
	}
}

// PathParam sets the value substituted for {name}. The whole value is one
// path segment: slashes are escaped, and "." or ".." is rejected.
func (b *RequestBuilder[T]) PathParam(name, value string) *RequestBuilder[T] {
	b.pathParams[name] = url.PathEscape(value)
	b.pathErrs[name] = checkSegment(name, value)

	return b
}

// PathKey sets a hierarchical value for {name}, such as a KV key. Each
// slash-separated segment is escaped on its own; "." and ".." segments are
// rejected.
func (b *RequestBuilder[T]) PathKey(name, value string) *RequestBuilder[T] {
	segments := strings.Split(value, "/")

	var segErr error

	for i, segment := range segments {
		if segErr == nil {
			segErr = checkSegment(name, segment)
		}

		segments[i] = url.PathEscape(segment)
	}

	b.pathParams[name] = strings.Join(segments, "/")
	b.pathErrs[name] = segErr

	return b
}

func checkSegment(name, segment string) error {
	if segment == "." || segment == ".." {
		return &ValidationError{Field: name, Reason: segment, Err: ErrInvalidPathSegment}
	}

	return nil
}

// Require marks field as required; Build fails when value is empty.
func (b *RequestBuilder[T]) Require(field, value string) *RequestBuilder[T] {
	b.required = append(b.required, requiredField{name: field, present: value != ""})

	return b
}

// RequireBytes marks field as required; Build fails when value is empty.
func (b *RequestBuilder[T]) RequireBytes(field string, value []byte) *RequestBuilder[T] {
	b.required = append(b.required, requiredField{name: field, present: len(value) > 0})

	return b
}

// Check records a validation error raised by the caller. Build returns the
// first one recorded.
func (b *RequestBuilder[T]) Check(err error) *RequestBuilder[T] {
	if err != nil {
		b.errs = append(b.errs, err)
	}

	return b
}

// Query sets key=value. Empty values are skipped.
func (b *RequestBuilder[T]) Query(key, value string) *RequestBuilder[T] {
	if value != "" {
		b.query.Set(key, value)
	}

	return b
}

// QueryValues adds key once per non-empty value.
func (b *RequestBuilder[T]) QueryValues(key string, values []string) *RequestBuilder[T] {
	for _, v := range values {
		if v != "" {
			b.query.Add(key, v)
		}
	}

	return b
}

// QueryFlag sets key=true when enabled and leaves it absent otherwise.
// Consul treats several parameters (recurse, raw, keys, passing) as set by
// presence alone, so false must never be sent.
func (b *RequestBuilder[T]) QueryFlag(key string, enabled bool) *RequestBuilder[T] {
	if enabled {
		b.query.Set(key, constants.BooleanTrue)
	}

	return b
}

// QueryBool sets an explicit boolean when value is non-nil.
func (b *RequestBuilder[T]) QueryBool(key string, value *bool) *RequestBuilder[T] {
	if value != nil {
		b.query.Set(key, strconv.FormatBool(*value))
	}

	return b
}

// QueryUint sets an unsigned integer when value is non-nil.
func (b *RequestBuilder[T]) QueryUint(key string, value *uint64) *RequestBuilder[T] {
	if value != nil {
		b.query.Set(key, strconv.FormatUint(*value, 10))
	}

	return b
}

// JSONBody sets a body that the client encodes as JSON.
func (b *RequestBuilder[T]) JSONBody(body any) *RequestBuilder[T] {
	b.body = body
	b.rawBody = nil
	b.hasRawBody = false
	b.contentType = constants.ContentTypeJSON

	return b
}

// RawBody sets a body sent as-is with the given content type.
func (b *RequestBuilder[T]) RawBody(body []byte, contentType string) *RequestBuilder[T] {
	b.body = nil
	b.rawBody = append([]byte(nil), body...)
	b.hasRawBody = true
	b.contentType = contentType

	return b
}

// Options attaches query options.
func (b *RequestBuilder[T]) Options(opts QueryOptions) *RequestBuilder[T] {
	b.options = opts.clone()

	return b
}

// Decoder overrides the default JSON decoder.
func (b *RequestBuilder[T]) Decoder(decode DecodeFunc[T]) *RequestBuilder[T] {
	b.decode = decode

	return b
}

// Build validates the accumulated state and returns an independent
// descriptor. It fails with *ValidationError.
func (b *RequestBuilder[T]) Build() (*Descriptor[T], error) {
	if !b.method.valid() {
		return nil, invalidMethod(b.method)
	}

	if len(b.errs) > 0 {
		return nil, asValidationError(b.errs[0])
	}

	for _, field := range b.required {
		if !field.present {
			return nil, &ValidationError{Field: field.name, Err: ErrRequiredField}
		}
	}

	err := b.options.validate()
	if err != nil {
		return nil, err
	}

	for _, name := range sortedNames(b.pathErrs) {
		if b.pathErrs[name] != nil {
			return nil, b.pathErrs[name]
		}
	}

	path, err := resolvePath(b.pathTemplate, b.pathParams)
	if err != nil {
		return nil, err
	}

	decode := b.decode
	if decode == nil {
		decode = JSONDecoder[T]()
	}

	return &Descriptor[T]{
		method:       b.method,
		pathTemplate: b.pathTemplate,
		path:         path,
		query:        cloneValues(b.query),
		body:         b.body,
		rawBody:      append([]byte(nil), b.rawBody...),
		hasRawBody:   b.hasRawBody,
		contentType:  b.contentType,
		options:      b.options.clone(),
		decode:       decode,
		built:        true,
	}, nil
}

func invalidMethod(method Method) error {
	return &ValidationError{Field: "Method", Err: fmt.Errorf("%w: %q", ErrUnsupportedMethod, string(method))}
}

// resolvePath substitutes every {name} placeholder in template.
func resolvePath(template string, params map[string]string) (string, error) {
	var out strings.Builder

	rest := template
	for {
		start := strings.IndexByte(rest, '{')
		if start < 0 {
			if strings.IndexByte(rest, '}') >= 0 {
				return "", &ValidationError{Field: "path", Reason: template, Err: ErrUnresolvedPlaceholder}
			}

			out.WriteString(rest)

			break
		}

		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			return "", &ValidationError{Field: "path", Reason: template, Err: ErrUnresolvedPlaceholder}
		}

		name := rest[start+1 : start+end]

		value, ok := params[name]
		if !ok || name == "" {
			return "", &ValidationError{Field: name, Reason: template, Err: ErrUnresolvedPlaceholder}
		}

		out.WriteString(rest[:start])
		out.WriteString(value)
		rest = rest[start+end+1:]
	}

	return out.String(), nil
}

func sortedNames(m map[string]error) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func asValidationError(err error) error {
	valErr := &ValidationError{}
	if errors.As(err, &valErr) {
		return valErr
	}

	return &ValidationError{Err: err}
}
