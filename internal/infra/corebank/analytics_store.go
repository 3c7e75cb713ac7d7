package corebank

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/freshpex/ffb-dashboard-bfa-go/internal/domain"

	"go.opentelemetry.io/otel/attribute"
)

// visitorRow maps one visitor analytics bucket.
type visitorRow struct {
	Date     string `json:"date"`
	Page     string `json:"page"`
	Visits   int    `json:"visits"`
	Uniques  int    `json:"uniques"`
	Referrer string `json:"referrer"`
}

// ListVisitorStats fetches visitor analytics collected by the core bank.
// rangeKey is today/week/month/all.
func (c *Client) ListVisitorStats(ctx context.Context, rangeKey string) ([]domain.VisitorStat, error) {
	ctx, span := tracer.Start(ctx, "CoreBank.ListVisitorStats")
	defer span.End()
	span.SetAttributes(attribute.String("range", rangeKey))

	var stats []domain.VisitorStat
	err := c.call(ctx, "corebank/analytics", func() error {
		path := fmt.Sprintf("/admin/analytics/visitors?range=%s", url.QueryEscape(rangeKey))
		body, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
		if err != nil {
			return err
		}
		if body == nil {
			stats = []domain.VisitorStat{}
			return nil
		}
		var env struct {
			Data []visitorRow `json:"data"`
		}
		if err := unmarshal(body, &env); err != nil {
			return fmt.Errorf("failed to decode visitor stats: %w", err)
		}
		stats = make([]domain.VisitorStat, 0, len(env.Data))
		for _, r := range env.Data {
			stats = append(stats, domain.VisitorStat{
				Date:     r.Date,
				Page:     r.Page,
				Visits:   r.Visits,
				Uniques:  r.Uniques,
				Referrer: r.Referrer,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}
