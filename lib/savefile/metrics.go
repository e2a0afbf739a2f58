package savefile

import (
	"io"

	"github.com/VictoriaMetrics/metrics"
)

// --------------------------------------------------------------------------
// Codec metrics
// --------------------------------------------------------------------------

var (
	metricSet = metrics.NewSet()

	parseTotal         = metricSet.NewCounter("dsav_savefile_parse_total")
	parseErrors        = metricSet.NewCounter("dsav_savefile_parse_errors_total")
	parseCompressed    = metricSet.NewCounter("dsav_savefile_parse_compressed_total")
	parseDuration      = metricSet.NewHistogram("dsav_savefile_parse_duration_seconds")
	parseBytes         = metricSet.NewHistogram("dsav_savefile_parse_bytes")
	propertiesRead     = metricSet.NewCounter("dsav_savefile_properties_total")
	opaqueProperties   = metricSet.NewCounter("dsav_savefile_opaque_properties_total")
	serializeTotal     = metricSet.NewCounter("dsav_savefile_serialize_total")
	serializeErrors    = metricSet.NewCounter("dsav_savefile_serialize_errors_total")
	serializeFallbacks = metricSet.NewCounter("dsav_savefile_serialize_fallbacks_total")
	serializeDuration  = metricSet.NewHistogram("dsav_savefile_serialize_duration_seconds")
)

// WriteMetrics writes the codec metrics in Prometheus text format.
func WriteMetrics(w io.Writer) {
	metricSet.WritePrometheus(w)
}
