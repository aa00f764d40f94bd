package publication

import (
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/publication/repository"
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/publication/service"
	"go.uber.org/fx"
)

var Module = fx.Module("publication",
	fx.Provide(repository.New),
	fx.Provide(service.NewSynchronizer),
	fx.Provide(service.NewCoordinator),
)
