package discovery

// DiscoveryError is the only error kind surfaced by the engine. It is
// reserved for structurally invalid input checked before any processing;
// generation and interpretation failures are absorbed internally by falling
// back to statistical discovery and never reach the caller.
type DiscoveryError struct {
	Message string
	Cause   error
}

func (e *DiscoveryError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *DiscoveryError) Unwrap() error { return e.Cause }
