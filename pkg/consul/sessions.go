package consul

import "time"

// Session behaviors applied when a session is invalidated.
const (
	SessionBehaviorRelease = "release"
	SessionBehaviorDelete  = "delete"
)

// ServiceCheck references a service check a session depends on.
type ServiceCheck struct {
	ID        string `json:"ID"`
	Namespace string `json:"Namespace,omitempty"`
}

// SessionEntry is the body of session/create.
type SessionEntry struct {
	Name          string         `json:"Name,omitempty"`
	Node          string         `json:"Node,omitempty"`
	LockDelay     string         `json:"LockDelay,omitempty"`
	Behavior      string         `json:"Behavior,omitempty"`
	TTL           string         `json:"TTL,omitempty"`
	NodeChecks    []string       `json:"NodeChecks,omitempty"`
	ServiceChecks []ServiceCheck `json:"ServiceChecks,omitempty"`
	Namespace     string         `json:"Namespace,omitempty"`
}

// Session is a session as returned by the session endpoints. LockDelay is
// reported in nanoseconds.
type Session struct {
	ID            string         `json:"ID"`
	Name          string         `json:"Name,omitempty"`
	Node          string         `json:"Node,omitempty"`
	LockDelay     time.Duration  `json:"LockDelay,omitempty"`
	Behavior      string         `json:"Behavior,omitempty"`
	TTL           string         `json:"TTL,omitempty"`
	NodeChecks    []string       `json:"NodeChecks,omitempty"`
	ServiceChecks []ServiceCheck `json:"ServiceChecks,omitempty"`
	Namespace     string         `json:"Namespace,omitempty"`
	CreateIndex   uint64         `json:"CreateIndex,omitempty"`
	ModifyIndex   uint64         `json:"ModifyIndex,omitempty"`
}

// SessionID is the payload of session/create.
type SessionID struct {
	ID string `json:"ID"`
}
