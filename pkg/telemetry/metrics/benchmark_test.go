package metrics

import (
	"testing"

	"mercator-hq/stencil/pkg/tmpl/parser"

	"github.com/prometheus/client_golang/prometheus"
)

// Benchmark_ParseWithMetrics measures a parse feeding the metrics sink.
func Benchmark_ParseWithMetrics(b *testing.B) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	p := parser.NewParser().WithSink(collector.Sink())

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = p.Parse("Config: {{service.{{env}}.port}}")
	}
}

// Benchmark_ParseWithMetrics_Parallel measures the shared sink under contention.
func Benchmark_ParseWithMetrics_Parallel(b *testing.B) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	p := parser.NewParser().WithSink(collector.Sink())

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = p.Parse("Config: {{service.{{env}}.port}}")
		}
	})
}
