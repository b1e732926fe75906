package metrics

import (
	"fmt"
	"io"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"
)

// Bucket is one cumulative histogram bucket
type Bucket struct {
	UpperBound      float64
	CumulativeCount uint64
}

// Sample is the state of a single instrument at snapshot time. Value is set
// for gauges and counters; Count, Sum and Buckets for histograms.
type Sample struct {
	Name    string
	Help    string
	Kind    Kind
	Value   float64
	Count   uint64
	Sum     float64
	Buckets []Bucket
}

// Snapshot is a point-in-time copy of every instrument, ordered by name then kind
type Snapshot []Sample

// Find returns the sample for the given kind and name
func (s Snapshot) Find(kind Kind, name string) (Sample, bool) {
	for _, sample := range s {
		if sample.Kind == kind && sample.Name == name {
			return sample, true
		}
	}
	return Sample{}, false
}

// Snapshot reads every instrument in every store. It is never cached.
func (r *Registry) Snapshot() Snapshot {
	var snap Snapshot

	r.gauges.each(func(name string, g prometheus.Gauge) {
		m := readMetric(g)
		snap = append(snap, Sample{Name: name, Help: r.describedHelp(name), Kind: KindGauge, Value: m.GetGauge().GetValue()})
	})
	r.intGauges.each(func(name string, g *IntGauge) {
		snap = append(snap, Sample{Name: name, Help: r.describedHelp(name), Kind: KindIntGauge, Value: float64(g.Value())})
	})
	r.counters.each(func(name string, c prometheus.Counter) {
		m := readMetric(c)
		snap = append(snap, Sample{Name: name, Help: r.describedHelp(name), Kind: KindCounter, Value: m.GetCounter().GetValue()})
	})
	r.histograms.each(func(name string, h prometheus.Histogram) {
		hist := readMetric(h).GetHistogram()
		sample := Sample{
			Name:  name,
			Help:  r.describedHelp(name),
			Kind:  KindHistogram,
			Count: hist.GetSampleCount(),
			Sum:   hist.GetSampleSum(),
		}
		for _, b := range hist.GetBucket() {
			sample.Buckets = append(sample.Buckets, Bucket{
				UpperBound:      b.GetUpperBound(),
				CumulativeCount: b.GetCumulativeCount(),
			})
		}
		snap = append(snap, sample)
	})

	sort.Slice(snap, func(i, j int) bool {
		if snap[i].Name != snap[j].Name {
			return snap[i].Name < snap[j].Name
		}
		return snap[i].Kind < snap[j].Kind
	})
	return snap
}

func readMetric(m prometheus.Metric) *dto.Metric {
	out := &dto.Metric{}
	if err := m.Write(out); err != nil {
		return &dto.Metric{}
	}
	return out
}

// WriteText renders the snapshot in the prometheus text exposition format
func (s Snapshot) WriteText(w io.Writer) error {
	for _, sample := range s {
		if _, err := expfmt.MetricFamilyToText(w, sample.family()); err != nil {
			return fmt.Errorf("failed to encode metric %s: %w", sample.Name, err)
		}
	}
	return nil
}

func (s Sample) family() *dto.MetricFamily {
	mf := &dto.MetricFamily{
		Name: proto.String(s.Name),
		Help: proto.String(s.Help),
	}

	switch s.Kind {
	case KindCounter:
		mf.Type = dto.MetricType_COUNTER.Enum()
		mf.Metric = []*dto.Metric{{Counter: &dto.Counter{Value: proto.Float64(s.Value)}}}
	case KindHistogram:
		hist := &dto.Histogram{
			SampleCount: proto.Uint64(s.Count),
			SampleSum:   proto.Float64(s.Sum),
		}
		for _, b := range s.Buckets {
			hist.Bucket = append(hist.Bucket, &dto.Bucket{
				UpperBound:      proto.Float64(b.UpperBound),
				CumulativeCount: proto.Uint64(b.CumulativeCount),
			})
		}
		mf.Type = dto.MetricType_HISTOGRAM.Enum()
		mf.Metric = []*dto.Metric{{Histogram: hist}}
	default:
		mf.Type = dto.MetricType_GAUGE.Enum()
		mf.Metric = []*dto.Metric{{Gauge: &dto.Gauge{Value: proto.Float64(s.Value)}}}
	}

	return mf
}
