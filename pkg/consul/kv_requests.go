package consul

import (
	"strings"

	"github.com/fivetwenty-io/consul-client/internal/constants"
)

const kvPath = "kv/{key}"

// KVReadRequest reads one key, or every key under a prefix when Recurse is
// set.
//
// GET kv/{key}
type KVReadRequest struct {
	QueryOptions

	// Key is required unless Recurse is set. A leading slash is ignored.
	Key string
	// Recurse returns every key with Key as prefix.
	Recurse bool
	// Separator limits a recursive read to keys up to the separator.
	Separator string
}

// Build implements Endpoint.
func (r *KVReadRequest) Build() (*Descriptor[[]KVPair], error) {
	req := deref(r)

	return kvReadBuilder[[]KVPair](req).Build()
}

// BuildRaw returns the descriptor of a ?raw read, whose payload is the
// stored value itself.
func (r *KVReadRequest) BuildRaw() (*Descriptor[[]byte], error) {
	req := deref(r)

	return kvReadBuilder[[]byte](req).
		QueryFlag("raw", true).
		Decoder(RawDecoder()).
		Build()
}

func kvReadBuilder[T any](req KVReadRequest) *RequestBuilder[T] {
	key := normalizeKey(req.Key)

	b := NewRequest[T](MethodGet, kvPath).
		PathKey("key", key).
		QueryFlag("recurse", req.Recurse).
		Query("separator", req.Separator).
		Options(req.QueryOptions)
	if !req.Recurse {
		b.Require("Key", key)
	}

	return b
}

// KVKeysRequest lists keys under Prefix without their values. An empty
// prefix lists the whole store.
//
// GET kv/{key}?keys
type KVKeysRequest struct {
	QueryOptions

	Prefix    string
	Separator string
}

// Build implements Endpoint.
func (r *KVKeysRequest) Build() (*Descriptor[[]string], error) {
	req := deref(r)

	return NewRequest[[]string](MethodGet, kvPath).
		PathKey("key", normalizeKey(req.Prefix)).
		QueryFlag("keys", true).
		Query("separator", req.Separator).
		Options(req.QueryOptions).
		Build()
}

// KVSetRequest writes Value at Key. The payload reports whether the write
// was applied, which is false when a CAS or lock condition did not hold.
//
// PUT kv/{key}
type KVSetRequest struct {
	QueryOptions

	Key   string
	Value []byte
	// Flags is an opaque value stored with the key.
	Flags *uint64
	// CAS turns the write into a check-and-set against this ModifyIndex.
	// Zero only writes when the key does not exist.
	CAS *uint64
	// Acquire takes the lock for the session with this ID.
	Acquire string
	// Release releases the lock held by the session with this ID.
	Release string
}

// Build implements Endpoint.
func (r *KVSetRequest) Build() (*Descriptor[bool], error) {
	req := deref(r)
	key := normalizeKey(req.Key)

	return NewRequest[bool](MethodPut, kvPath).
		Require("Key", key).
		PathKey("key", key).
		QueryUint("flags", req.Flags).
		QueryUint("cas", req.CAS).
		Query("acquire", req.Acquire).
		Query("release", req.Release).
		RawBody(req.Value, constants.ContentTypeBinary).
		Options(req.QueryOptions).
		Build()
}

// KVDeleteRequest deletes Key, or every key under it when Recurse is set.
//
// DELETE kv/{key}
type KVDeleteRequest struct {
	QueryOptions

	// Key is required unless Recurse is set.
	Key     string
	Recurse bool
	CAS     *uint64
}

// Build implements Endpoint.
func (r *KVDeleteRequest) Build() (*Descriptor[bool], error) {
	req := deref(r)
	key := normalizeKey(req.Key)

	b := NewRequest[bool](MethodDelete, kvPath).
		PathKey("key", key).
		QueryFlag("recurse", req.Recurse).
		QueryUint("cas", req.CAS).
		Options(req.QueryOptions)
	if !req.Recurse {
		b.Require("Key", key)
	}

	return b.Build()
}

func normalizeKey(key string) string {
	return strings.TrimLeft(key, "/")
}
