package ust

var defaultVersion = []string{"UST Version1.2", "Charset=UTF-8"}

type options struct {
	validate bool
	version  []string
	settings *Settings
}

type Option func(*options)

// WithoutValidation skips attribute type checks. Use it for notes that come
// from a trusted source.
func WithoutValidation() Option {
	return func(o *options) {
		o.validate = false
	}
}

func WithVersion(lines ...string) Option {
	return func(o *options) {
		o.version = append([]string{}, lines...)
	}
}

func WithSettings(s *Settings) Option {
	return func(o *options) {
		o.settings = s
	}
}

func buildOptions(opts []Option) options {
	o := options{validate: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
