package metrics

// Kind identifies which family of instrument a metric name belongs to.
// Each kind has its own store, so the same name may be requested as two
// kinds; the prometheus registry rejects the second one.
type Kind int

const (
	KindGauge Kind = iota
	KindIntGauge
	KindCounter
	KindHistogram
)

func (k Kind) String() string {
	switch k {
	case KindGauge:
		return "gauge"
	case KindIntGauge:
		return "int_gauge"
	case KindCounter:
		return "counter"
	case KindHistogram:
		return "histogram"
	default:
		return "unknown"
	}
}
