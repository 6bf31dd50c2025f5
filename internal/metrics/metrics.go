// Package metrics records Wake-on-LAN run statistics in Prometheus format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the counters for a single wol run on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	PacketsSent prometheus.Counter
	SendErrors  prometheus.Counter
	ParseErrors prometheus.Counter
	LastRun     prometheus.Gauge
}

// New creates a Recorder with all metrics registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		PacketsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wol_packets_sent_total",
			Help: "Number of magic packets sent",
		}),
		SendErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wol_send_errors_total",
			Help: "Number of targets that could not be resolved or sent to",
		}),
		ParseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wol_parse_errors_total",
			Help: "Number of wakeup lines that could not be read or parsed",
		}),
		LastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "wol_last_run_timestamp_seconds",
			Help: "Unix time the last wol run finished",
		}),
	}

	r.registry.MustRegister(r.PacketsSent, r.SendErrors, r.ParseErrors, r.LastRun)
	return r
}

// Gatherer exposes the underlying registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile stamps the run time and writes all metrics to path in the
// node-exporter textfile format. The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string, finished time.Time) error {
	r.LastRun.Set(float64(finished.Unix()))
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
