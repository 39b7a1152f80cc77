package core

import "encoding/json"

// ErrorKind classifies a failed import so callers can pick a status code
// and tests can tell failures apart. It is never serialized.
type ErrorKind string

const (
	KindNone         ErrorKind = ""
	KindInvalidInput ErrorKind = "invalid_input"
	KindTimeout      ErrorKind = "timeout"
	KindHTTPStatus   ErrorKind = "http_status"
	KindUnreachable  ErrorKind = "unreachable"
	KindExtraction   ErrorKind = "extraction"
	KindAICredential ErrorKind = "ai_credential"
	KindAIAuth       ErrorKind = "ai_auth"
	KindAIRateLimit  ErrorKind = "ai_rate_limit"
	KindAITimeout    ErrorKind = "ai_timeout"
	KindAIFailure    ErrorKind = "ai_failure"
	KindAIUnreadable ErrorKind = "ai_unreadable"
)

// IsAI reports whether the kind originates from the AI service.
func (k ErrorKind) IsAI() bool {
	switch k {
	case KindAICredential, KindAIAuth, KindAIRateLimit, KindAITimeout, KindAIFailure, KindAIUnreadable:
		return true
	}
	return false
}

// Result is either a usable recipe or a message meant for direct display.
// There is no partial-success state.
type Result struct {
	Success bool
	Recipe  *ParsedRecipe
	Error   string
	Kind    ErrorKind
}

// Success wraps a parsed recipe.
func Success(r ParsedRecipe) Result {
	return Result{Success: true, Recipe: &r}
}

// Failure builds a failed result with a user-facing message.
func Failure(kind ErrorKind, msg string) Result {
	return Result{Success: false, Error: msg, Kind: kind}
}

// HasIngredients reports whether the result succeeded with ingredient text.
func (r Result) HasIngredients() bool {
	return r.Success && r.Recipe != nil && r.Recipe.HasIngredients()
}

// Complete reports whether the result succeeded with ingredients and steps.
func (r Result) Complete() bool {
	return r.Success && r.Recipe != nil && r.Recipe.Complete()
}

type resultJSON struct {
	Success bool          `json:"success"`
	Recipe  *ParsedRecipe `json:"recipe,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// MarshalJSON emits {"success":true,"recipe":{...}} or {"success":false,"error":"..."}.
func (r Result) MarshalJSON() ([]byte, error) {
	out := resultJSON{Success: r.Success}
	if r.Success {
		out.Recipe = r.Recipe
	} else {
		out.Error = r.Error
	}
	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON. Kind is not restored.
func (r *Result) UnmarshalJSON(b []byte) error {
	var in resultJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*r = Result{Success: in.Success, Recipe: in.Recipe, Error: in.Error}
	return nil
}
