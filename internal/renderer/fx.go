package renderer

import "go.uber.org/fx"

var Module = fx.Module("renderer",
	fx.Provide(NewBackend),
	fx.Provide(func(b *Backend) Renderer { return b }),
)
