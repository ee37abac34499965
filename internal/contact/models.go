package contact

// Submission is a validated contact form.
type Submission struct {
	Name        string
	Phone       string
	Email       string
	Description string
}

// Outcome is the caller-visible result of a valid submission.
type Outcome string

const (
	OutcomeSuccess Outcome = "Success"
	OutcomeFailure Outcome = "Failure"
)

// MethodPost is the only accepted method.
const MethodPost = "POST"
