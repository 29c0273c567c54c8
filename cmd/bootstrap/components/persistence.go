package components

import (
	"slotbook/internal/infra/db"
	"slotbook/internal/infra/readstore"
	"slotbook/internal/infra/repository"
	"slotbook/internal/infra/uow"
	"slotbook/internal/usecase/queries"
	"slotbook/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Host
		fx.Annotate(
			readstore.NewHostReadStore,
			fx.As(new(queries.HostReadStore)),
		),
		// Booking
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		// UnitOfWork
		uow.NewPostgresUoW,
		NewRepositories,
		// Token markers (Postgres backend)
		repository.NewTokenMarkerRepository,
		// Calendar credentials
		repository.NewCalendarCredentialRepository,
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

// NewRepositories exposes the pool-bound repositories of the unit of work.
func NewRepositories(u shared.UnitOfWork) shared.Repositories {
	return u
}
