package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "clinic"

// HTTPMetrics exposes request counters/latency per route.
type HTTPMetrics struct {
	requestsTotal  *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of HTTP request handling",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.requestLatency)
	return m
}

func (m *HTTPMetrics) ObserveRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, route, status).Inc()
	m.requestLatency.WithLabelValues(method, route).Observe(seconds)
}

// StoreMetrics counts week generation and bookings in the appointment store.
type StoreMetrics struct {
	weeksGenerated        prometheus.Counter
	appointmentsGenerated prometheus.Counter
	appointmentsCreated   *prometheus.CounterVec
}

func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	m := &StoreMetrics{
		weeksGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "weeks_generated_total",
			Help:      "Week buckets generated on first access",
		}),
		appointmentsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "appointments_generated_total",
			Help:      "Mock appointments produced by week generation",
		}),
		appointmentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "appointments_created_total",
			Help:      "Client bookings by result",
		}, []string{"result"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.weeksGenerated, m.appointmentsGenerated, m.appointmentsCreated)
	return m
}

func (m *StoreMetrics) ObserveWeekGenerated(appointments int) {
	if m == nil {
		return
	}
	m.weeksGenerated.Inc()
	m.appointmentsGenerated.Add(float64(appointments))
}

func (m *StoreMetrics) ObserveCreate(result string) {
	if m == nil {
		return
	}
	m.appointmentsCreated.WithLabelValues(result).Inc()
}
