package cmd

import (
	"errors"
	"fmt"
	"time"

	"git-global/internal/config"
	"git-global/internal/repo"
)

var errNoCachedRepos = errors.New(`no repositories cached; run "git-global scan" first`)

// RunContext holds the common initialization result for commands.
type RunContext struct {
	Config config.Config
	Repos  []repo.Repository
}

// AggregateOptions 由配置派生出聚合器的并发与超时参数。
func (c *RunContext) AggregateOptions() repo.AggregateOptions {
	return repo.AggregateOptions{
		Workers: c.Config.Workers,
		Timeout: time.Duration(c.Config.Timeout) * time.Second,
	}
}

// prepareRun performs common command initialization:
// load config, load the cached repo paths, wrap them into handles.
func prepareRun() (*RunContext, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	paths, err := repo.LoadRepos()
	if err != nil {
		if errors.Is(err, repo.ErrNoCache) {
			return nil, errNoCachedRepos
		}
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf(`no repositories in cache; run "git-global scan"`)
	}

	repos := make([]repo.Repository, 0, len(paths))
	for _, path := range paths {
		repos = append(repos, repo.NewRepository(path))
	}

	return &RunContext{
		Config: cfg,
		Repos:  repos,
	}, nil
}
