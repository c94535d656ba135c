// Package metrics defines and registers all custom Prometheus metrics for the
// CMS API. It is the single source of truth for metric names, labels, and help
// strings. Registration happens at import time via promauto against the
// default registry, which the /metrics endpoint serves.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cms"

// ArticlesCreatedTotal counts newly created articles.
// Label:
//   - status: the persisted status after gating ("draft" or "published")
var ArticlesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "articles_created_total",
		Help:      "Total number of articles created, by persisted status.",
	},
	[]string{"status"},
)

// StatusChangesTotal counts transitions applied through the dedicated
// publish/unpublish action.
// Label:
//   - status: the new status ("draft" or "published")
var StatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "article_status_changes_total",
		Help:      "Total number of publish/unpublish transitions, by new status.",
	},
	[]string{"status"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// CacheLookupsTotal counts article-by-slug cache decisions.
// Label:
//   - result: "hit" or "miss"
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "article_cache_lookups_total",
		Help:      "Total number of slug cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)

// UploadsTotal counts stored image uploads.
var UploadsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of image files written to the upload store.",
	},
)
