package snapshots

import (
	"sorting-analytics/internal/shared/metrics"
)

var (
	metricArtifactPublishedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSnapshot,
			Name:      "artifact_published_total",
		},
		[]string{metrics.FieldArtifact, metrics.FieldErrorCode},
	)
)
