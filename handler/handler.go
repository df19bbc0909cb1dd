package handler

import (
	"html/template"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/time/rate"

	"github.com/jvillodre/librarium/config"
	"github.com/jvillodre/librarium/internal/jsonlog"
	"github.com/jvillodre/librarium/service"
)

// Handler defines the delivery layer: the JSON API and the HTML UI, both
// adapters over the same Service contract.
type Handler struct {
	config    config.Config
	logger    *jsonlog.Logger
	limiters  *ttlcache.Cache[string, *rate.Limiter]
	service   service.Service
	templates *template.Template
}

// New creates a new instance of Handler. The limiter cache holds one token
// bucket per client IP and evicts idle entries by TTL.
func New(cfg config.Config, logger *jsonlog.Logger, limiters *ttlcache.Cache[string, *rate.Limiter], service service.Service) *Handler {
	return &Handler{
		config:    cfg,
		logger:    logger,
		limiters:  limiters,
		service:   service,
		templates: newTemplates(),
	}
}
