package helpers

import (
	"github.com/Gravitalia/forum/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	translationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forum_translations_total",
		Help: "Tracks translation attempts by provider and outcome.",
	}, []string{"service", "outcome"})

	translationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "forum_translation_duration_seconds",
		Help:    "Tracks the latencies of translation providers.",
		Buckets: prometheus.DefBuckets,
	}, []string{"service"})

	forumGauges = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "forum_items",
		Help: "Number of posts, replies, likes and languages in the forum.",
	}, []string{"type"})
)

// ObserveTranslation records one provider attempt
func ObserveTranslation(service string, ok bool, seconds float64) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}

	translationsTotal.WithLabelValues(service, outcome).Inc()
	translationDuration.WithLabelValues(service).Observe(seconds)
}

// SetForumGauges refreshes the forum gauges from a stats summary
func SetForumGauges(stats model.Stats) {
	forumGauges.WithLabelValues("posts").Set(float64(stats.TotalPosts))
	forumGauges.WithLabelValues("replies").Set(float64(stats.TotalReplies))
	forumGauges.WithLabelValues("likes").Set(float64(stats.TotalLikes))
	forumGauges.WithLabelValues("languages").Set(float64(stats.LanguagesUsed))
}
