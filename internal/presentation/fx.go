package presentation

import (
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/presentation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("presentation.service",
	fx.Provide(service.NewService),
)
