package goMockAuth

// CallOption adjusts a single Login or Logout call.
type CallOption func(*callOptions)

type callOptions struct {
	debug bool
}

// WithDebug turns diagnostic output for one call on or off, overriding
// Config.Debug.Enabled.
func WithDebug(enabled bool) CallOption {
	return func(o *callOptions) {
		o.debug = enabled
	}
}

// Quiet is shorthand for WithDebug(false).
func Quiet() CallOption {
	return WithDebug(false)
}

func (e *Engine) resolveCallOptions(opts []CallOption) callOptions {
	out := callOptions{debug: e.config.Debug.Enabled}
	for _, opt := range opts {
		if opt != nil {
			opt(&out)
		}
	}
	return out
}
