package batch

import "time"

// Options configures how a command applies its changes.
type Options struct {
	dryRun bool
	now    func() time.Time
}

// Option is a function that configures Options.
type Option func(*Options)

// Defaults returns the default options.
func Defaults() *Options {
	return &Options{now: time.Now}
}

// Apply applies opts over the defaults.
func Apply(opts ...Option) *Options {
	o := Defaults()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// DryRun reports whether writes must be skipped.
func (o *Options) DryRun() bool {
	return o.dryRun
}

// Now returns the current time from the configured clock.
func (o *Options) Now() time.Time {
	return o.now()
}

// WithDryRun computes outcomes without writing any file.
func WithDryRun(dryRun bool) Option {
	return func(o *Options) {
		o.dryRun = dryRun
	}
}

// WithClock replaces the clock used for backup names and timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		if now != nil {
			o.now = now
		}
	}
}
