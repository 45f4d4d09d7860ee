package http

import (
	"paysession/internal/infrastructure/config"
	"paysession/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	*Container
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(cfg *config.Config, log logger.Interface) (*Router, error) {
	c, err := NewContainer(cfg, log)
	if err != nil {
		return nil, err
	}
	return &Router{Container: c}, nil
}
