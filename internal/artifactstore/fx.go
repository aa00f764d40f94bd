package artifactstore

import "go.uber.org/fx"

var Module = fx.Module("artifactstore",
	fx.Provide(NewMinioStore),
	fx.Provide(func(s *MinioStore) Store { return s }),
)
