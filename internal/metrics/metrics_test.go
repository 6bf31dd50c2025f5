package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counters(t *testing.T) {
	r := New()
	r.PacketsSent.Inc()
	r.PacketsSent.Inc()
	r.ParseErrors.Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(r.PacketsSent))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.SendErrors))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.ParseErrors))

	count, err := testutil.GatherAndCount(r.Gatherer())
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := New()
	r.PacketsSent.Add(3)
	r.SendErrors.Inc()

	path := filepath.Join(t.TempDir(), "wol.prom")
	finished := time.Unix(1700000000, 0)
	require.NoError(t, r.WriteTextfile(path, finished))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "wol_packets_sent_total 3")
	assert.Contains(t, string(content), "wol_send_errors_total 1")
	assert.Contains(t, string(content), "wol_parse_errors_total 0")
	assert.Contains(t, string(content), "wol_last_run_timestamp_seconds 1.7e+09")
}

func TestRecorder_WriteTextfile_BadPath(t *testing.T) {
	r := New()
	err := r.WriteTextfile(filepath.Join(t.TempDir(), "missing", "wol.prom"), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing metrics to")
}
