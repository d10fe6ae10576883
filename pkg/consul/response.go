package consul

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fivetwenty-io/consul-client/internal/constants"
)

// Response is the envelope returned by every call: the decoded payload plus
// the protocol metadata Consul sends with it. Metadata fields are nil when
// the header was absent.
type Response[T any] struct {
	Payload     T
	Index       *uint64
	LastContact *time.Duration
	KnownLeader *bool
	StatusCode  int
	Header      http.Header
}

// Meta holds the protocol metadata of a response.
type Meta struct {
	Index       *uint64
	LastContact *time.Duration
	KnownLeader *bool
}

// ParseMeta reads X-Consul-Index, X-Consul-LastContact and
// X-Consul-KnownLeader. Header names are matched case-insensitively. A
// header that is present but malformed yields an error wrapping
// ErrInvalidHeader.
func ParseMeta(header http.Header) (Meta, error) {
	var meta Meta

	if value, ok := lookupHeader(header, constants.HeaderIndex); ok {
		index, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return Meta{}, fmt.Errorf("%w: %s=%q", ErrInvalidHeader, constants.HeaderIndex, value)
		}

		meta.Index = &index
	}

	if value, ok := lookupHeader(header, constants.HeaderLastContact); ok {
		ms, err := strconv.ParseUint(value, 10, 63)
		if err != nil {
			return Meta{}, fmt.Errorf("%w: %s=%q", ErrInvalidHeader, constants.HeaderLastContact, value)
		}

		lastContact := time.Duration(ms) * time.Millisecond
		meta.LastContact = &lastContact
	}

	if value, ok := lookupHeader(header, constants.HeaderKnownLeader); ok {
		known, err := strconv.ParseBool(value)
		if err != nil {
			return Meta{}, fmt.Errorf("%w: %s=%q", ErrInvalidHeader, constants.HeaderKnownLeader, value)
		}

		meta.KnownLeader = &known
	}

	return meta, nil
}

// NewResponse assembles a response envelope.
func NewResponse[T any](payload T, statusCode int, header http.Header, meta Meta) *Response[T] {
	return &Response[T]{
		Payload:     payload,
		Index:       meta.Index,
		LastContact: meta.LastContact,
		KnownLeader: meta.KnownLeader,
		StatusCode:  statusCode,
		Header:      header,
	}
}

// IndexOr returns the index or fallback when the header was absent.
func (r *Response[T]) IndexOr(fallback uint64) uint64 {
	if r == nil || r.Index == nil {
		return fallback
	}

	return *r.Index
}

func lookupHeader(header http.Header, name string) (string, bool) {
	if values, ok := header[http.CanonicalHeaderKey(name)]; ok && len(values) > 0 {
		return strings.TrimSpace(values[0]), true
	}

	for key, values := range header {
		if strings.EqualFold(key, name) && len(values) > 0 {
			return strings.TrimSpace(values[0]), true
		}
	}

	return "", false
}
