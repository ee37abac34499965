package contact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"

	dErrors "github.com/aws-samples/aws-contactus-serverless-website/pkg/domain-errors"
)

type fieldRule struct {
	name    string
	pattern *regexp.Regexp
}

// Checked in this order; the first failure wins.
var fieldRules = []fieldRule{
	{name: "name", pattern: regexp.MustCompile(`^[A-Za-z ]{1,32}$`)},
	{name: "phone", pattern: regexp.MustCompile(`^[0-9]{10}$`)},
	{name: "email", pattern: regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)},
	{name: "description", pattern: regexp.MustCompile(`^[A-Za-z0-9 ]{5,255}$`)},
}

// ParseSubmission decodes and validates a JSON body. method only feeds the
// bad-request message.
//
// A field counts as present when its key exists with a non-null value.
// Non-string values are checked (and reported) as their literal JSON text.
func ParseSubmission(method string, body []byte) (Submission, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return Submission{}, dErrors.Wrap(err, dErrors.CodeValidation, badRequestMessage(method))
	}

	values := make(map[string]string, len(fieldRules))
	for _, rule := range fieldRules {
		raw, ok := payload[rule.name]
		if !ok || isNull(raw) {
			return Submission{}, dErrors.New(dErrors.CodeValidation, badRequestMessage(method))
		}
		values[rule.name] = rawText(raw)
	}

	for _, rule := range fieldRules {
		if v := values[rule.name]; !rule.pattern.MatchString(v) {
			return Submission{}, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("invalid %s: %s", rule.name, v))
		}
	}

	return Submission{
		Name:        values["name"],
		Phone:       values["phone"],
		Email:       values["email"],
		Description: values["description"],
	}, nil
}

func badRequestMessage(method string) string {
	return fmt.Sprintf("Bad request. Please check the request data for: %s method.", method)
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func rawText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}
