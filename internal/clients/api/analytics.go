package api

import (
	"context"
	"net/http"

	"github.com/maxaizer/career-dashboard/internal/domain/models"
)

func (c *Client) Dashboard(ctx context.Context) (models.DashboardSummary, error) {
	var summary models.DashboardSummary
	err := c.send(ctx, call{name: "dashboard", method: http.MethodGet, path: "/analytics/dashboard/"}, &summary)
	return summary, err
}
