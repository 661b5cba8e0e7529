// Package observability provides Prometheus metrics for the application.
package observability

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yatube_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// PostsCreated counts posts created through the web surface.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "yatube_posts_created_total",
		Help: "Total number of posts created",
	})

	// PostsEdited counts successful post edits.
	PostsEdited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "yatube_posts_edited_total",
		Help: "Total number of posts edited",
	})
)

var (
	httpMetricsOnce sync.Once
	httpMetrics     *fiberprometheus.FiberPrometheus
)

// InitHTTPMetrics creates the fiberprometheus middleware serving request
// metrics for the given service name. The middleware registers collectors in
// the default registry, so repeated calls return the same instance.
func InitHTTPMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	httpMetricsOnce.Do(func() {
		httpMetrics = fiberprometheus.New(serviceName)
	})
	return httpMetrics
}
