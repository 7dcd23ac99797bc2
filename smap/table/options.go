package table

import (
	"github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog"
)

// Option configures Build.
type Option func(*settings)

type settings struct {
	orientation Orientation
	policy      DuplicatePolicy
	logger      zerolog.Logger
	verify      bool
	asserter    *assert.AssertHandler
}

func defaultSettings() settings {
	return settings{
		orientation: AOuter,
		policy:      RejectDuplicates,
		logger:      zerolog.Nop(),
	}
}

// WithOrientation sets the layout produced by Build. Default AOuter.
func WithOrientation(o Orientation) Option {
	return func(s *settings) {
		s.orientation = o
	}
}

// WithDuplicatePolicy sets how Build treats repeated composite keys.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(s *settings) {
		s.policy = p
	}
}

// WithLogger attaches a logger for build and flip events.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithLayoutVerification runs Validate after every rebuild.
func WithLayoutVerification(enabled bool) Option {
	return func(s *settings) {
		s.verify = enabled
	}
}

// WithAsserter reports verification failures to an assert handler.
// It implies WithLayoutVerification(true).
func WithAsserter(handler *assert.AssertHandler) Option {
	return func(s *settings) {
		s.asserter = handler
		if handler != nil {
			s.verify = true
		}
	}
}
