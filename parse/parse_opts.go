package parse

type parseOpts struct {
	comments bool
}

type ParseOption func(*parseOpts)

// ParseComments keeps comments and empty lines in the resulting document.
func ParseComments(v bool) ParseOption {
	return func(o *parseOpts) { o.comments = v }
}
