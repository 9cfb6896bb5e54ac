package components

import (
	"ekicare/internal/domain/appointment"
	"ekicare/internal/pkg/clock"
	"ekicare/internal/pkg/config"
	"ekicare/internal/usecase"
	"ekicare/internal/usecase/commands"
	"ekicare/internal/usecase/queries"
	"ekicare/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) appointment.VerificationPolicy {
		return appointment.VerificationPolicy{
			RequireSubscriptionActive: cfg.Policy.RequireSubscriptionActive,
		}
	},
	func(cfg config.Config) commands.SweepPolicy {
		return commands.SweepPolicy{
			IncludePending: cfg.Sweep.IncludePending,
			MaxRetries:     cfg.Sweep.MaxRetries,
		}
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAppointmentUseCase,
		commands.NewSweepUseCase,
		func(uow shared.UnitOfWork, clk clock.Clock, cfg config.Config) commands.RelationshipCommands {
			return commands.NewRelationshipUseCase(uow, clk, cfg.Sweep.MaxRetries)
		},
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAppointmentQueries,
		queries.NewAvailabilityQueries,
		queries.NewRelationshipQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
