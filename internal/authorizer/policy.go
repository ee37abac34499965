package authorizer

import "errors"

const (
	PolicyVersion = "2012-10-17"
	ActionInvoke  = "execute-api:Invoke"
)

// Effect is the policy statement effect.
type Effect string

const (
	EffectAllow Effect = "Allow"
	EffectDeny  Effect = "Deny"
)

// ErrInvalidToken is what the gateway receives when a decision could not be
// evaluated.
var ErrInvalidToken = errors.New("Invalid token") //nolint:staticcheck // gateway-facing text

// Statement is a single IAM policy statement.
type Statement struct {
	Action   string `json:"Action"`
	Effect   Effect `json:"Effect"`
	Resource string `json:"Resource"`
}

// PolicyDocument always holds exactly one statement.
type PolicyDocument struct {
	Version   string      `json:"Version"`
	Statement []Statement `json:"Statement"`
}

// Response is the authorizer output understood by API Gateway.
type Response struct {
	PrincipalID    string          `json:"principalId"`
	PolicyDocument *PolicyDocument `json:"policyDocument,omitempty"`
}

// BuildResponse turns a decision into the gateway response. ErrorResult (and
// any unknown decision) yields ErrInvalidToken.
func BuildResponse(d Decision) (*Response, error) {
	switch v := d.(type) {
	case AllowDecision:
		return generatePolicy(v.Principal, EffectAllow, v.Resource), nil
	case DenyDecision:
		return generatePolicy(v.Principal, EffectDeny, v.Resource), nil
	default:
		return nil, ErrInvalidToken
	}
}

// generatePolicy omits the document unless both effect and resource are set.
func generatePolicy(principal string, effect Effect, resource string) *Response {
	resp := &Response{PrincipalID: principal}
	if effect == "" || resource == "" {
		return resp
	}
	resp.PolicyDocument = &PolicyDocument{
		Version: PolicyVersion,
		Statement: []Statement{{
			Action:   ActionInvoke,
			Effect:   effect,
			Resource: resource,
		}},
	}
	return resp
}
