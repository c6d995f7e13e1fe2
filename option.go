// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hyper

import (
	"log/slog"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// CookiePolicy selects how recorded cookie actions are interpreted.
type CookiePolicy uint8

const (
	// CookieWarn logs a warning and leaves the response untouched.
	CookieWarn CookiePolicy = iota
	// CookieApply writes Set-Cookie headers through net/http.
	CookieApply
)

func (p CookiePolicy) String() string {
	switch p {
	case CookieWarn:
		return "warn"
	case CookieApply:
		return "apply"
	default:
		return "CookiePolicy(" + strconv.Itoa(int(p)) + ")"
	}
}

type options struct {
	logger        *slog.Logger
	cookies       CookiePolicy
	meterProvider metric.MeterProvider
}

// Option configures an Interpreter and the handlers built on it.
type Option func(*options)

// WithLogger sets the logger for diagnostics. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithCookiePolicy sets the cookie policy. Default: CookieWarn.
func WithCookiePolicy(p CookiePolicy) Option {
	return func(o *options) {
		o.cookies = p
	}
}

// WithMeterProvider sets the OpenTelemetry meter provider.
// Default: the global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		o.meterProvider = mp
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.meterProvider == nil {
		o.meterProvider = otel.GetMeterProvider()
	}
	return o
}
