package telemetry

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"go.opentelemetry.io/otel"
)

const perfStatsInterval = time.Second * 30

// InstrumentPerfStats samples process health into otel gauges until the
// context is cancelled.
func InstrumentPerfStats(ctx context.Context) {
	meter := otel.Meter("go.perf_stats")
	cpuUsage, _ := meter.Float64Gauge("cpu_usage")
	allocatedMb, _ := meter.Int64Gauge("allocated_mb")
	liveObjects, _ := meter.Int64Gauge("live_objects")
	goroutines, _ := meter.Int64Gauge("goroutine_count")

	go func() {
		ticker := time.NewTicker(perfStatsInterval)
		defer ticker.Stop()

		var memStats runtime.MemStats
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			percent, err := cpu.Percent(time.Minute, false)
			if err != nil {
				slog.Warn("failed to read cpu usage", "err", err)
			} else {
				cpuUsage.Record(ctx, percent[0])
			}

			runtime.ReadMemStats(&memStats)
			allocatedMb.Record(ctx, int64(memStats.Alloc/1_000_000))
			liveObjects.Record(ctx, int64(memStats.Mallocs)-int64(memStats.Frees))
			goroutines.Record(ctx, int64(runtime.NumGoroutine()))
		}
	}()
}
