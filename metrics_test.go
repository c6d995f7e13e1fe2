// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hyper_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"code.hybscloud.com/hyper"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// counter returns the value of the sum named name at attribute key=value.
func counter(t *testing.T, reader *sdkmetric.ManualReader, name, key, value string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("%s: data got %T", name, m.Data)
			}
			for _, dp := range sum.DataPoints {
				if v, ok := dp.Attributes.Value(attribute.Key(key)); ok && v.AsString() == value {
					return dp.Value
				}
			}
		}
	}
	return 0
}

func TestMetricsOutcomes(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())
	opts := []hyper.Option{hyper.WithLogger(quiet), hyper.WithMeterProvider(mp)}

	ended := hyper.ToRequestHandler(sendOK[string](), opts...)
	pending := hyper.ToRequestHandler(hyper.Status[string](http.StatusOK), opts...)
	failed := hyper.ToRequestHandler(hyper.Left[hyper.StatusOpen, string, struct{}]("no"), opts...)

	for range 2 {
		direct(ended, httptest.NewRequest(http.MethodGet, "/", nil))
	}
	direct(pending, httptest.NewRequest(http.MethodGet, "/", nil))
	direct(failed, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := counter(t, reader, "hyper.requests", "outcome", "ended"); got != 2 {
		t.Fatalf("ended got %d, want 2", got)
	}
	if got := counter(t, reader, "hyper.requests", "outcome", "next"); got != 1 {
		t.Fatalf("next got %d, want 1", got)
	}
	if got := counter(t, reader, "hyper.requests", "outcome", "failed"); got != 1 {
		t.Fatalf("failed got %d, want 1", got)
	}
	// Two ended requests and one pending one each set the status.
	if got := counter(t, reader, "hyper.actions", "action", "setStatus"); got != 3 {
		t.Fatalf("setStatus got %d, want 3", got)
	}
	if got := counter(t, reader, "hyper.actions", "action", "endResponse"); got != 2 {
		t.Fatalf("endResponse got %d, want 2", got)
	}
}
