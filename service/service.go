package service

import (
	"time"

	"github.com/jvillodre/librarium/config"
	"github.com/jvillodre/librarium/internal/jsonlog"
	"github.com/jvillodre/librarium/repository"
)

type Service interface {
	books
	editorials
}

// service defines the use-case layer.
type service struct {
	config config.Config
	logger *jsonlog.Logger
	repo   repository.Repository
	now    func() time.Time
}

// New creates a new instance of Service. Timestamps are stamped at second
// precision in UTC; tests swap the clock out.
func New(cfg config.Config, logger *jsonlog.Logger, repo repository.Repository) *service {
	return &service{
		config: cfg,
		logger: logger,
		repo:   repo,
		now: func() time.Time {
			return time.Now().UTC().Truncate(time.Second)
		},
	}
}
