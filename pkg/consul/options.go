package consul

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/fivetwenty-io/consul-client/internal/constants"
)

// ConsistencyMode selects the read semantics of a query.
type ConsistencyMode int

const (
	// ConsistencyDefault lets the server pick (strongly consistent in most cases).
	ConsistencyDefault ConsistencyMode = iota
	// ConsistencyStale allows any server to answer, possibly with stale data.
	ConsistencyStale
	// ConsistencyLeader forces the leader to verify leadership before answering.
	ConsistencyLeader
)

// String implements fmt.Stringer.
func (m ConsistencyMode) String() string {
	switch m {
	case ConsistencyDefault:
		return "default"
	case ConsistencyStale:
		return "stale"
	case ConsistencyLeader:
		return "leader"
	default:
		return fmt.Sprintf("ConsistencyMode(%d)", int(m))
	}
}

// ParseConsistencyMode parses "default", "stale" or "leader". The empty
// string is the default mode.
func ParseConsistencyMode(value string) (ConsistencyMode, error) {
	switch value {
	case "", "default":
		return ConsistencyDefault, nil
	case "stale":
		return ConsistencyStale, nil
	case "leader", "consistent":
		return ConsistencyLeader, nil
	default:
		return ConsistencyDefault, fmt.Errorf("%w: %q", ErrInvalidConsistency, value)
	}
}

// QueryOptions are the cross-cutting options accepted by most endpoints.
// Empty values are absent and never serialised.
//
// Wait only applies to blocking queries: it is dropped when Index is nil.
type QueryOptions struct {
	// Datacenter overrides the client's default datacenter.
	Datacenter string
	// Namespace overrides the client's default namespace (Enterprise).
	Namespace string
	// Consistency selects default, stale or leader reads.
	Consistency ConsistencyMode
	// Index turns the read into a blocking query that returns once the
	// data changes past this index or Wait elapses.
	Index *uint64
	// Wait bounds a blocking query. Consul caps it at 10 minutes.
	Wait time.Duration
	// Token overrides the client's ACL token for this request.
	Token string
	// Filter is a filter expression applied server-side.
	Filter string
	// Near sorts results by round trip time from the named node ("_agent"
	// for the local agent).
	Near string
	// NodeMeta filters by node metadata.
	NodeMeta map[string]string
	// Cached allows the agent to answer from its cache.
	Cached bool
}

// WithIndex returns a copy of the options blocking on index for at most wait.
func (o QueryOptions) WithIndex(index uint64, wait time.Duration) QueryOptions {
	clone := o.clone()
	clone.Index = &index
	clone.Wait = wait

	return clone
}

func (o QueryOptions) clone() QueryOptions {
	clone := o

	if o.Index != nil {
		index := *o.Index
		clone.Index = &index
	}

	if o.NodeMeta != nil {
		clone.NodeMeta = make(map[string]string, len(o.NodeMeta))
		for k, v := range o.NodeMeta {
			clone.NodeMeta[k] = v
		}
	}

	return clone
}

func (o QueryOptions) validate() error {
	switch o.Consistency {
	case ConsistencyDefault, ConsistencyStale, ConsistencyLeader:
	default:
		return &ValidationError{Field: "Consistency", Err: fmt.Errorf("%w: %d", ErrInvalidConsistency, int(o.Consistency))}
	}

	if o.Wait < 0 {
		return &ValidationError{Field: "Wait", Err: ErrNegativeWait}
	}

	return nil
}

// Values encodes the options as query parameters. The token is not part of
// the query; it travels in the X-Consul-Token header.
func (o QueryOptions) Values() url.Values {
	values := url.Values{}

	setIfPresent(values, constants.QueryDatacenter, o.Datacenter)
	setIfPresent(values, constants.QueryNamespace, o.Namespace)
	setIfPresent(values, constants.QueryFilter, o.Filter)
	setIfPresent(values, constants.QueryNear, o.Near)

	switch o.Consistency {
	case ConsistencyStale:
		values.Set(constants.QueryStale, constants.BooleanTrue)
	case ConsistencyLeader:
		values.Set(constants.QueryConsistent, constants.BooleanTrue)
	case ConsistencyDefault:
	}

	if o.Index != nil {
		values.Set(constants.QueryIndex, strconv.FormatUint(*o.Index, 10))

		if o.Wait > 0 {
			values.Set(constants.QueryWait, formatWait(o.Wait))
		}
	}

	if len(o.NodeMeta) > 0 {
		keys := make([]string, 0, len(o.NodeMeta))
		for k := range o.NodeMeta {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		for _, k := range keys {
			values.Add(constants.QueryNodeMeta, k+":"+o.NodeMeta[k])
		}
	}

	if o.Cached {
		values.Set(constants.QueryCached, constants.BooleanTrue)
	}

	return values
}

// formatWait renders whole seconds as "10s" and anything finer in
// milliseconds, both of which Consul accepts.
func formatWait(d time.Duration) string {
	if d%time.Second == 0 {
		return strconv.FormatInt(int64(d/time.Second), 10) + "s"
	}

	ms := d.Milliseconds()
	if ms == 0 {
		ms = 1
	}

	return strconv.FormatInt(ms, 10) + "ms"
}

func setIfPresent(values url.Values, key, value string) {
	if value != "" {
		values.Set(key, value)
	}
}

// Ptr returns a pointer to v. It is handy for optional request fields.
func Ptr[T any](v T) *T {
	return &v
}
