package core

// Result is the envelope returned by every dispatch branch.
type Result struct {
	Success           bool   `json:"success"`
	Message           string `json:"message,omitempty"`
	Error             string `json:"error,omitempty"`
	FormattedResponse string `json:"formatted_response,omitempty"`
	// Clarification is set when the conversation should pause for user input.
	Clarification bool `json:"clarification,omitempty"`
	Data          any  `json:"data,omitempty"`
}

func Failure(msg string) Result {
	return Result{Error: msg}
}

type Outcome string

const (
	OutcomeNoMatch   Outcome = "no_match"
	OutcomeDeleted   Outcome = "deleted"
	OutcomeAmbiguous Outcome = "ambiguous"
)

// Resolution is the data payload of a find-and-delete result.
type Resolution struct {
	Outcome    Outcome     `json:"outcome"`
	Candidates []Candidate `json:"candidates,omitempty"`
	Deleted    *Candidate  `json:"deleted,omitempty"`
}

type Listing struct {
	Items []Candidate `json:"items"`
	Count int         `json:"count"`
}

type ClarificationRequest struct {
	MissingFields []string `json:"missing_fields"`
}

type ItemRef struct {
	ID string `json:"id"`
}
