package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests"},
		[]string{"route", "method", "status"},
	)
	ReqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request duration seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	InFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "http_in_flight_requests", Help: "In-flight HTTP requests"},
	)

	// Domain counters, incremented on successful mutations.
	PostsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "posts_created_total", Help: "Posts created"},
	)
	PostsDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "posts_deleted_total", Help: "Posts deleted"},
	)
	CommentsAdded = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "post_comments_total", Help: "Comments appended to posts"},
	)
	LikesAdded = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "post_likes_total", Help: "Likes appended to posts"},
	)
)

func MustRegister() {
	prometheus.MustRegister(
		RequestsTotal, ReqDuration, InFlight,
		PostsCreated, PostsDeleted, CommentsAdded, LikesAdded,
	)
}
