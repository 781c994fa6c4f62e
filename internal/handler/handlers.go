package handler

import (
	"github.com/greenplus/greenplus/internal/config"
	"github.com/greenplus/greenplus/internal/handler/http"
	"github.com/greenplus/greenplus/internal/logger"
	"github.com/greenplus/greenplus/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, logger),
	}, nil
}
