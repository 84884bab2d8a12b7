package moderation

// Kind classifies a workflow failure and decides how it is reported back to
// the acting user.
type Kind int

const (
	// KindUnconfigured means a required guild setting is missing; the
	// message tells an administrator which command fixes it.
	KindUnconfigured Kind = iota
	// KindForbidden means the actor lacks the configured moderator role.
	KindForbidden
	// KindInvalidTarget means the command target is unusable, e.g. the
	// cases channel is not a text channel or there is no guild context.
	KindInvalidTarget
	// KindRelayFailure means the webhook relay sub-step failed; the rest
	// of the case thread stands.
	KindRelayFailure
	// KindPlatformTransient covers any other remote-call failure.
	KindPlatformTransient
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func unconfigured(message string) *Error {
	return &Error{Kind: KindUnconfigured, Message: message}
}

func forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func invalidTarget(message string) *Error {
	return &Error{Kind: KindInvalidTarget, Message: message}
}

func relayFailure(err error) *Error {
	return &Error{Kind: KindRelayFailure, Message: "Failed to relay the original message", Err: err}
}

func transient(message string, err error) *Error {
	return &Error{Kind: KindPlatformTransient, Message: message, Err: err}
}

// UserMessage converts any workflow error into the text shown to the actor.
// Terminal kinds are reported verbatim; transient failures get a generic
// message since the underlying error is only useful in logs.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if werr, ok := err.(*Error); ok {
		switch werr.Kind {
		case KindPlatformTransient:
			return "Something went wrong. Please try again"
		default:
			return werr.Message
		}
	}
	return "Something went wrong. Please try again"
}

// ErrKind reports the Kind of err, or KindPlatformTransient for errors that
// did not originate in this package.
func ErrKind(err error) Kind {
	if werr, ok := err.(*Error); ok {
		return werr.Kind
	}
	return KindPlatformTransient
}
