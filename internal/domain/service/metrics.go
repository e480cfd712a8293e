package service

// Authentication outcomes recorded by AccountMetrics.
const (
	AuthOutcomeSuccess            = "success"
	AuthOutcomeInvalidCredentials = "invalid_credentials"
	AuthOutcomeInactive           = "inactive"
	AuthOutcomeThrottled          = "throttled"
)

// AccountMetrics records account-level business counters.
type AccountMetrics interface {
	ObserveRegistration(outcome string)
	ObserveAuthentication(outcome string)
	ObserveSlugCollision()
}

// NoopMetrics discards every observation.
type NoopMetrics struct{}

func (NoopMetrics) ObserveRegistration(string)   {}
func (NoopMetrics) ObserveAuthentication(string) {}
func (NoopMetrics) ObserveSlugCollision()        {}
