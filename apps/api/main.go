package main

import (
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/artifactstore"
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/clock"
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/config"
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/events"
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/migration"
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/observability"
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/presentation"
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/publication"
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/quote"
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/renderer"
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/scheduler"
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/seed"
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/server"
	"github.com/Iterio-app/Iterio-Platform-sub000/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		fx.Invoke(func(conn *gorm.DB) error {
			return seed.EnsureDefaultTemplate(conn)
		}),
		clock.Module,

		// Quote document pipeline.
		quote.Module,
		renderer.Module,
		artifactstore.Module,
		events.Module,
		publication.Module,
		presentation.Module,
		scheduler.Module,

		fx.Provide(server.NewEngine),
		fx.Provide(server.NewServer),
		fx.Invoke(func(s *server.Server) {
			s.RegisterAPIRoutes()
		}),
		fx.Invoke(server.RunHTTP),
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
