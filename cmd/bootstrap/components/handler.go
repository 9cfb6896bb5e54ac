package components

import (
	"ekicare/internal/handler"
	"ekicare/internal/handler/api"
	"ekicare/internal/handler/middleware"
	"ekicare/internal/usecase/queries"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		queries.NewDistanceQueries,
		api.NewAppointmentHandler,
		api.NewAvailabilityHandler,
		api.NewRelationshipHandler,
		api.NewDistanceHandler,
		api.NewMaintenanceHandler,
		middleware.NewAuthMiddleware,
		func(
			appointments *api.AppointmentHandler,
			availability *api.AvailabilityHandler,
			relationships *api.RelationshipHandler,
			distance *api.DistanceHandler,
			maintenance *api.MaintenanceHandler,
		) handler.Handlers {
			return handler.Handlers{
				Appointments:  appointments,
				Availability:  availability,
				Relationships: relationships,
				Distance:      distance,
				Maintenance:   maintenance,
			}
		},
	),
	fx.Invoke(handler.NewRouter),
)
