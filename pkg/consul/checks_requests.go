package consul

import "fmt"

// TTLStatus is the outcome reported for a TTL check.
type TTLStatus string

// TTL check outcomes.
const (
	TTLPass TTLStatus = "pass"
	TTLWarn TTLStatus = "warn"
	TTLFail TTLStatus = "fail"
)

// CheckListRequest lists the checks of the local agent.
//
// GET agent/checks
type CheckListRequest struct {
	QueryOptions
}

// Build implements Endpoint.
func (r *CheckListRequest) Build() (*Descriptor[map[string]AgentCheck], error) {
	req := deref(r)

	return NewRequest[map[string]AgentCheck](MethodGet, "agent/checks").
		Options(req.QueryOptions).
		Build()
}

// CheckRegisterRequest adds a check to the local agent.
//
// PUT agent/check/register
type CheckRegisterRequest struct {
	QueryOptions

	Check AgentCheckRegistration
}

// Build implements Endpoint.
func (r *CheckRegisterRequest) Build() (*Descriptor[Empty], error) {
	req := deref(r)

	return NewRequest[Empty](MethodPut, "agent/check/register").
		Require("Name", req.Check.Name).
		JSONBody(req.Check).
		Decoder(EmptyDecoder()).
		Options(req.QueryOptions).
		Build()
}

// CheckDeregisterRequest removes a check from the local agent.
//
// PUT agent/check/deregister/{check_id}
type CheckDeregisterRequest struct {
	QueryOptions

	CheckID string
}

// Build implements Endpoint.
func (r *CheckDeregisterRequest) Build() (*Descriptor[Empty], error) {
	req := deref(r)

	return NewRequest[Empty](MethodPut, "agent/check/deregister/{check_id}").
		Require("CheckID", req.CheckID).
		PathParam("check_id", req.CheckID).
		Decoder(EmptyDecoder()).
		Options(req.QueryOptions).
		Build()
}

// CheckTTLRequest reports the state of a TTL check. Status selects pass,
// warn or fail; the client's Pass, Warn and Fail methods set it.
//
// PUT agent/check/{pass|warn|fail}/{check_id}
type CheckTTLRequest struct {
	QueryOptions

	CheckID string
	Status  TTLStatus
	// Note is a human readable message stored as the check output.
	Note string
}

// Build implements Endpoint.
func (r *CheckTTLRequest) Build() (*Descriptor[Empty], error) {
	req := deref(r)

	b := NewRequest[Empty](MethodPut, "agent/check/"+string(req.Status)+"/{check_id}")

	switch req.Status {
	case TTLPass, TTLWarn, TTLFail:
	default:
		b.Check(&ValidationError{Field: "Status", Err: fmt.Errorf("%w: %q", ErrInvalidCheckStatus, string(req.Status))})
	}

	return b.
		Require("CheckID", req.CheckID).
		PathParam("check_id", req.CheckID).
		Query("note", req.Note).
		Decoder(EmptyDecoder()).
		Options(req.QueryOptions).
		Build()
}

// CheckUpdateRequest sets the status and output of a TTL check.
//
// PUT agent/check/update/{check_id}
type CheckUpdateRequest struct {
	QueryOptions

	CheckID string
	// Status is one of passing, warning or critical.
	Status string
	Output string
}

// Build implements Endpoint.
func (r *CheckUpdateRequest) Build() (*Descriptor[Empty], error) {
	req := deref(r)

	b := NewRequest[Empty](MethodPut, "agent/check/update/{check_id}").
		Require("CheckID", req.CheckID).
		Require("Status", req.Status)

	if req.Status != "" && !validCheckStatus(req.Status) {
		b.Check(&ValidationError{Field: "Status", Err: fmt.Errorf("%w: %q", ErrInvalidCheckStatus, req.Status)})
	}

	return b.
		PathParam("check_id", req.CheckID).
		JSONBody(CheckUpdate{Status: req.Status, Output: req.Output}).
		Decoder(EmptyDecoder()).
		Options(req.QueryOptions).
		Build()
}
