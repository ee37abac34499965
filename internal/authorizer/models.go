package authorizer

// HeaderOriginVerify carries the shared secret injected by the CDN in front
// of the API.
const HeaderOriginVerify = "x-origin-verify"

const (
	PrincipalAuthenticated   = "authenticated"
	PrincipalUnauthenticated = "unauthenticated"
)

// Request is the inbound authorization request for one invocation.
type Request struct {
	// Headers as supplied by the gateway; keys are matched exactly.
	// A nil map means the event carried no headers object at all.
	Headers map[string]string
	// Resource is echoed into the policy statement and never validated.
	Resource string
	// Method is informational only.
	Method string
}

// Outcome labels a decision for logs and metrics.
type Outcome string

const (
	OutcomeAllow Outcome = "allow"
	OutcomeDeny  Outcome = "deny"
	OutcomeError Outcome = "error"
)

// ErrorReason explains why a decision could not be evaluated.
type ErrorReason string

const (
	ReasonSecretUnavailable ErrorReason = "secret_unavailable"
	ReasonMissingHeaders    ErrorReason = "missing_headers"
)

// Decision is one of ErrorResult, AllowDecision or DenyDecision.
// The set is closed; switch on the concrete type.
type Decision interface {
	Outcome() Outcome
	isDecision()
}

// ErrorResult means authorization could not be evaluated. It is distinct from
// an explicit deny and is never turned into an allow.
type ErrorResult struct {
	Reason ErrorReason
}

// AllowDecision grants access to Resource.
type AllowDecision struct {
	Principal string
	Resource  string
}

// DenyDecision refuses access to Resource.
type DenyDecision struct {
	Principal string
	Resource  string
}

func (ErrorResult) Outcome() Outcome   { return OutcomeError }
func (AllowDecision) Outcome() Outcome { return OutcomeAllow }
func (DenyDecision) Outcome() Outcome  { return OutcomeDeny }

func (ErrorResult) isDecision()   {}
func (AllowDecision) isDecision() {}
func (DenyDecision) isDecision()  {}
