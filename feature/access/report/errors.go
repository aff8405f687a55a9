package report

// EmptySelectionError indicates a filtered export was requested without any
// accesses selected. It marks missing input rather than broken data, so
// callers should treat it as a prompt for the user, not a failure.
type EmptySelectionError struct{}

func (e *EmptySelectionError) Error() string {
	return "select at least one access to filter"
}
