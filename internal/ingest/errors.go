package ingest

// DecodeError means no canonical record could be produced from the request
// body. It short-circuits before authentication and any store mutation.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

// AuthError means the submission's team code was missing or not on the
// allow-list. It short-circuits before any store mutation.
type AuthError struct {
	Code string
}

func (e *AuthError) Error() string { return "Invalid team code" }
