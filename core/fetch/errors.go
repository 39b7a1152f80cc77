package fetch

import (
	"errors"

	"github.com/gaurav-prasanna/recipepipe/core"
)

// Failure maps a Fetch error to a user-facing result. Timeouts, non-2xx
// responses and unreachable hosts each get their own message.
func Failure(err error) core.Result {
	var te *TimeoutError
	if errors.As(err, &te) {
		return core.Failure(core.KindTimeout, core.MsgFetchTimeout)
	}
	var se *StatusError
	if errors.As(err, &se) {
		return core.Failure(core.KindHTTPStatus, core.MsgFetchStatus(se.StatusCode))
	}
	return core.Failure(core.KindUnreachable, core.MsgUnreachable)
}
