package quote

import (
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/quote/compiler"
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/quote/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("quote",
	fx.Provide(compiler.New),
	fx.Provide(repository.New),
)
