package domain

// ValidationError reports invalid caller input. Operations reject input
// before attempting any write, so a ValidationError implies no state change.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func Invalid(msg string) error {
	return &ValidationError{Msg: msg}
}
