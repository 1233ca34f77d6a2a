package loxerrors

// local interfaces to be used with errors.Unwrap() and errors.Join() trees.
// errors package does not define separate interfaces, relies on reflection instead.
type unwrapInterface interface {
	Unwrap() error
}

type unwrapJoinInterface interface {
	Unwrap() []error
}
