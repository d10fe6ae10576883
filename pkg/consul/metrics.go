package consul

import "time"

// Metrics records per-call measurements. Endpoint is the unresolved path
// template (for example "kv/{key}") so label cardinality stays bounded.
type Metrics interface {
	ObserveRequest(method, endpoint string, statusCode int, duration time.Duration)
	IncError(method, endpoint, kind string)
}

// NopMetrics records nothing. It is the default when Config.Metrics is nil.
type NopMetrics struct{}

// ObserveRequest implements Metrics.
func (NopMetrics) ObserveRequest(string, string, int, time.Duration) {}

// IncError implements Metrics.
func (NopMetrics) IncError(string, string, string) {}
