package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/maxaizer/career-dashboard/internal/domain/models"
)

const MaxJobsPerPage = 50

type JobsQuery struct {
	Page    int
	PerPage int
}

func (q JobsQuery) values() url.Values {
	values := url.Values{}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		values.Set("per_page", strconv.Itoa(min(q.PerPage, MaxJobsPerPage)))
	}
	return values
}

type jobsResponse struct {
	Results []models.Job `json:"results"`
}

func (c *Client) Jobs(ctx context.Context, query JobsQuery) ([]models.Job, error) {
	var response jobsResponse
	err := c.send(ctx, call{name: "jobs", method: http.MethodGet, path: "/jobs/", query: query.values()}, &response)
	return response.Results, err
}

func (c *Client) MatchedJobs(ctx context.Context) ([]models.Job, error) {
	var response jobsResponse
	err := c.send(ctx, call{name: "matched_jobs", method: http.MethodGet, path: "/jobs/matched/"}, &response)
	return response.Results, err
}
