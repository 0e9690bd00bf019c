package provider

import "context"

// HealthStatus is the outcome of probing a text generation backend.
type HealthStatus struct {
	Service string
	Healthy bool
	// Models lists the models the backend reports as installed, when it
	// exposes such a listing.
	Models []string
	Err    string
}

// StaticChecker reports a fixed healthy status for hosted backends that
// expose no cheap liveness probe.
type StaticChecker struct {
	Service string
	Models  []string
}

// Check returns a healthy status carrying the configured service and models.
func (c StaticChecker) Check(context.Context) HealthStatus {
	return HealthStatus{Service: c.Service, Healthy: true, Models: c.Models}
}
