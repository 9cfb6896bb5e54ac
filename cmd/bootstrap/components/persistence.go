package components

import (
	"ekicare/internal/infra/pgq"
	"ekicare/internal/infra/readstore"
	"ekicare/internal/infra/uow"
	"ekicare/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
)

// Write-side repositories are built per transaction inside the unit of work.
var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Appointment
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.AppointmentViewQueries)),
		),
		fx.Annotate(
			readstore.NewAppointmentReadStore,
			fx.As(new(queries.AppointmentReadStore)),
			fx.As(new(queries.SlotReadStore)),
		),
		// Directory
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.DirectoryReadQueries)),
		),
		fx.Annotate(
			readstore.NewDirectoryReadStore,
			fx.As(new(queries.ProfessionalLookup)),
		),
		// Relationship
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.RelationshipReadQueries)),
		),
		fx.Annotate(
			readstore.NewRelationshipReadStore,
			fx.As(new(queries.RelationshipReadStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		uow.NewPostgresUoW,
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *pgq.Queries {
	return pgq.New()
}

func NewDBTX(pool *pgxpool.Pool) pgq.DBTX {
	return pool
}
