package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// CatalogMetrics holds the business counters of the orientation service.
type CatalogMetrics struct {
	signups           metric.Int64Counter
	logins            metric.Int64Counter
	eligibilityChecks metric.Int64Counter
	linksCreated      metric.Int64Counter
}

func NewCatalogMetrics(meter metric.Meter) (*CatalogMetrics, error) {
	cm := &CatalogMetrics{}

	var err error

	cm.signups, err = meter.Int64Counter(
		"orientation.users.signups",
		metric.WithDescription("Total number of user signups"),
		metric.WithUnit("{user}"),
	)
	if err != nil {
		return nil, err
	}

	cm.logins, err = meter.Int64Counter(
		"orientation.users.logins",
		metric.WithDescription("Total number of login attempts by outcome"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, err
	}

	cm.eligibilityChecks, err = meter.Int64Counter(
		"orientation.eligibility.checks",
		metric.WithDescription("Total number of eligibility checks by outcome"),
		metric.WithUnit("{check}"),
	)
	if err != nil {
		return nil, err
	}

	cm.linksCreated, err = meter.Int64Counter(
		"orientation.university_programs.created",
		metric.WithDescription("Total number of university program links created"),
		metric.WithUnit("{link}"),
	)
	if err != nil {
		return nil, err
	}

	return cm, nil
}

func (cm *CatalogMetrics) RecordSignup(ctx context.Context) {
	if cm != nil && cm.signups != nil {
		cm.signups.Add(ctx, 1)
	}
}

func (cm *CatalogMetrics) RecordLogin(ctx context.Context, success bool) {
	if cm != nil && cm.logins != nil {
		cm.logins.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", success)))
	}
}

func (cm *CatalogMetrics) RecordEligibilityCheck(ctx context.Context, section string, eligible bool) {
	if cm != nil && cm.eligibilityChecks != nil {
		cm.eligibilityChecks.Add(ctx, 1, metric.WithAttributes(
			attribute.String("section", section),
			attribute.Bool("eligible", eligible),
		))
	}
}

func (cm *CatalogMetrics) RecordLinkCreated(ctx context.Context) {
	if cm != nil && cm.linksCreated != nil {
		cm.linksCreated.Add(ctx, 1)
	}
}
