// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize caps plugin.cue and config.cue at 1 MiB.
const DefaultMaxFileSize int64 = 1 << 20

type (
	// Option adjusts a single Decode call.
	Option func(*settings)

	settings struct {
		filename    string
		maxFileSize int64
		partial     bool
	}
)

func newSettings(opts []Option) settings {
	s := settings{filename: "<input>", maxFileSize: DefaultMaxFileSize}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithFilename names the document in errors.
func WithFilename(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.filename = name
		}
	}
}

// WithMaxFileSize overrides DefaultMaxFileSize.
func WithMaxFileSize(n int64) Option {
	return func(s *settings) { s.maxFileSize = n }
}

// Partial accepts documents that leave schema fields unset. The host
// config uses it: every key there is optional and defaults come from viper.
func Partial() Option {
	return func(s *settings) { s.partial = true }
}
