// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hyper

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "code.hybscloud.com/hyper"

// Request outcomes reported by the hyper.requests counter.
const (
	outcomeFailed = "failed" // computation failed, next(err)
	outcomeEnded  = "ended"  // log terminated the response
	outcomeNext   = "next"   // log did not terminate, next()
)

type metrics struct {
	requests metric.Int64Counter
	actions  metric.Int64Counter
}

func newMetrics(mp metric.MeterProvider, logger *slog.Logger) metrics {
	meter := mp.Meter(instrumentationName)
	requests, err := meter.Int64Counter("hyper.requests",
		metric.WithDescription("Requests executed by the adapter, by outcome"),
		metric.WithUnit("{request}"))
	if err != nil {
		logger.Warn("hyper: create requests counter", "err", err)
		requests = noop.Int64Counter{}
	}
	actions, err := meter.Int64Counter("hyper.actions",
		metric.WithDescription("Response actions replayed, by action"),
		metric.WithUnit("{action}"))
	if err != nil {
		logger.Warn("hyper: create actions counter", "err", err)
		actions = noop.Int64Counter{}
	}
	return metrics{requests: requests, actions: actions}
}

func (m metrics) request(ctx context.Context, outcome string) {
	m.requests.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (m metrics) action(ctx context.Context, a Action) {
	m.actions.Add(ctx, 1, metric.WithAttributes(attribute.String("action", a.String())))
}
