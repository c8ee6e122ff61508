package arena

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

type collector struct {
	pool *Pool

	inUse    *prometheus.Desc
	capacity *prometheus.Desc
	peak     *prometheus.Desc
	borrows  *prometheus.Desc
	failures *prometheus.Desc
}

// NewCollector exports the arenas of p as Prometheus metrics, labelled by
// arena id. The pool is read on every scrape and is not goroutine-safe, so
// scrapes must be serialised with the pool's owner.
func NewCollector(p *Pool, namespace string) prometheus.Collector {
	labels := []string{"arena"}
	return &collector{
		pool: p,
		inUse: prometheus.NewDesc(prometheus.BuildFQName(namespace, "arena", "bytes_in_use"),
			"Bytes below the arena watermark.", labels, nil),
		capacity: prometheus.NewDesc(prometheus.BuildFQName(namespace, "arena", "capacity_bytes"),
			"Arena capacity in bytes.", labels, nil),
		peak: prometheus.NewDesc(prometheus.BuildFQName(namespace, "arena", "peak_bytes"),
			"Highest watermark the arena reached.", labels, nil),
		borrows: prometheus.NewDesc(prometheus.BuildFQName(namespace, "arena", "borrow_depth"),
			"Live scratch borrows of the arena.", labels, nil),
		failures: prometheus.NewDesc(prometheus.BuildFQName(namespace, "arena", "alloc_failures_total"),
			"Allocations rejected for lack of space.", labels, nil),
	}
}

func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.inUse
	ch <- c.capacity
	ch <- c.peak
	ch <- c.borrows
	ch <- c.failures
}

func (c *collector) Collect(ch chan<- prometheus.Metric) {
	for _, s := range c.pool.Stats() {
		id := strconv.Itoa(int(s.ID))
		ch <- prometheus.MustNewConstMetric(c.inUse, prometheus.GaugeValue, float64(s.SizeInUse), id)
		ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(s.Capacity), id)
		ch <- prometheus.MustNewConstMetric(c.peak, prometheus.GaugeValue, float64(s.Peak), id)
		ch <- prometheus.MustNewConstMetric(c.borrows, prometheus.GaugeValue, float64(s.Borrows), id)
		ch <- prometheus.MustNewConstMetric(c.failures, prometheus.CounterValue, float64(s.Failures), id)
	}
}
