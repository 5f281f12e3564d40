package pages

import (
	"context"
	"sync"

	"github.com/maxaizer/career-dashboard/internal/clients/api"
	"github.com/maxaizer/career-dashboard/internal/domain/models"
	"golang.org/x/sync/errgroup"
)

const jobsPageSize = 20

type JobsView struct {
	Matched []models.Job
	All     []models.Job
}

// JobsPage reads matched and all jobs in parallel. If either read fails both
// lists stay empty.
type JobsPage struct {
	jobs  jobsAPI
	mu    sync.RWMutex
	view  JobsView
	state LoadState
}

func NewJobsPage(jobs jobsAPI) *JobsPage {
	return &JobsPage{jobs: jobs, view: emptyJobsView(), state: StateLoading}
}

func emptyJobsView() JobsView {
	return JobsView{Matched: []models.Job{}, All: []models.Job{}}
}

func (p *JobsPage) Load(ctx context.Context) Result[JobsView] {
	p.mu.Lock()
	p.state = StateLoading
	p.mu.Unlock()

	result := Fetch(ctx, "jobs", p.readBoth)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.view = result.OrDefault(emptyJobsView())
	if result.IsOk() {
		p.state = StateReady
	} else {
		p.state = StateFailed
	}
	return result
}

func (p *JobsPage) readBoth(ctx context.Context) (JobsView, error) {
	view := emptyJobsView()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		matched, err := p.jobs.MatchedJobs(gctx)
		if matched != nil {
			view.Matched = matched
		}
		return err
	})
	g.Go(func() error {
		all, err := p.jobs.Jobs(gctx, api.JobsQuery{Page: 1, PerPage: jobsPageSize})
		if all != nil {
			view.All = all
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return emptyJobsView(), err
	}
	return view, nil
}

func (p *JobsPage) View() JobsView {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return JobsView{
		Matched: append([]models.Job{}, p.view.Matched...),
		All:     append([]models.Job{}, p.view.All...),
	}
}

func (p *JobsPage) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state == StateLoading
}
