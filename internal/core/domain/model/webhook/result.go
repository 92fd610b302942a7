package webhook

// DeliveryResult is the outcome of one delivery attempt, returned to callers
// that trigger a dispatch inline.
type DeliveryResult struct {
	Success    bool
	StatusCode *int
	Response   string
	Error      string
}
