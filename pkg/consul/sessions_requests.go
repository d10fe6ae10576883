package consul

import (
	"fmt"

	"github.com/google/uuid"
)

// SessionCreateRequest creates a session.
//
// PUT session/create
type SessionCreateRequest struct {
	QueryOptions

	Session SessionEntry
}

// Build implements Endpoint.
func (r *SessionCreateRequest) Build() (*Descriptor[SessionID], error) {
	req := deref(r)

	b := NewRequest[SessionID](MethodPut, "session/create")

	switch req.Session.Behavior {
	case "", SessionBehaviorRelease, SessionBehaviorDelete:
	default:
		b.Check(&ValidationError{Field: "Behavior", Reason: "must be release or delete"})
	}

	return b.
		JSONBody(req.Session).
		Options(req.QueryOptions).
		Build()
}

// SessionDestroyRequest destroys a session.
//
// PUT session/destroy/{uuid}
type SessionDestroyRequest struct {
	QueryOptions

	ID string
}

// Build implements Endpoint.
func (r *SessionDestroyRequest) Build() (*Descriptor[bool], error) {
	req := deref(r)

	return sessionBuilder[bool](MethodPut, "session/destroy/{uuid}", req.ID).
		Options(req.QueryOptions).
		Build()
}

// SessionInfoRequest reads a session.
//
// GET session/info/{uuid}
type SessionInfoRequest struct {
	QueryOptions

	ID string
}

// Build implements Endpoint.
func (r *SessionInfoRequest) Build() (*Descriptor[[]Session], error) {
	req := deref(r)

	return sessionBuilder[[]Session](MethodGet, "session/info/{uuid}", req.ID).
		Options(req.QueryOptions).
		Build()
}

// SessionRenewRequest renews the TTL of a session.
//
// PUT session/renew/{uuid}
type SessionRenewRequest struct {
	QueryOptions

	ID string
}

// Build implements Endpoint.
func (r *SessionRenewRequest) Build() (*Descriptor[[]Session], error) {
	req := deref(r)

	return sessionBuilder[[]Session](MethodPut, "session/renew/{uuid}", req.ID).
		Options(req.QueryOptions).
		Build()
}

// SessionNodeRequest lists the sessions of a node.
//
// GET session/node/{node}
type SessionNodeRequest struct {
	QueryOptions

	Node string
}

// Build implements Endpoint.
func (r *SessionNodeRequest) Build() (*Descriptor[[]Session], error) {
	req := deref(r)

	return NewRequest[[]Session](MethodGet, "session/node/{node}").
		Require("Node", req.Node).
		PathParam("node", req.Node).
		Options(req.QueryOptions).
		Build()
}

// SessionListRequest lists every session.
//
// GET session/list
type SessionListRequest struct {
	QueryOptions
}

// Build implements Endpoint.
func (r *SessionListRequest) Build() (*Descriptor[[]Session], error) {
	req := deref(r)

	return NewRequest[[]Session](MethodGet, "session/list").
		Options(req.QueryOptions).
		Build()
}

func sessionBuilder[T any](method Method, path, id string) *RequestBuilder[T] {
	b := NewRequest[T](method, path).
		Require("ID", id).
		PathParam("uuid", id)

	if id != "" {
		if _, err := uuid.Parse(id); err != nil {
			b.Check(&ValidationError{Field: "ID", Err: fmt.Errorf("%w: %q", ErrInvalidSessionID, id)})
		}
	}

	return b
}
