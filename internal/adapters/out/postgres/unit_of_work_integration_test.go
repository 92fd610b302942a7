package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	postgres_adapter "github.com/mschaaf17/ShippityApp/internal/adapters/out/postgres"
	"github.com/mschaaf17/ShippityApp/internal/adapters/out/postgres/customerrepo"
	"github.com/mschaaf17/ShippityApp/internal/adapters/out/postgres/loadrepo"
	"github.com/mschaaf17/ShippityApp/internal/adapters/out/postgres/webhookrepo"
	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/customer"
	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/kernel"
	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/load"
	"github.com/mschaaf17/ShippityApp/internal/core/ports"
	"github.com/mschaaf17/ShippityApp/internal/pkg/errs"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&loadrepo.LoadDTO{},
		&customerrepo.CustomerDTO{},
		&webhookrepo.ConfigDTO{},
		&webhookrepo.DeliveryLogDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE loads, customers, webhook_delivery_logs, webhook_configs").Error,
	)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestLoad(orderID string) *load.Load {
	l, err := load.NewLoad(kernel.NewUUID(), load.Snapshot{
		OrderID:     orderID,
		ReferenceID: "KB-001",
		Vehicle:     load.Vehicle{VIN: "VIN-" + orderID},
	}, nil, time.Now().UTC())
	suite.Require().NoError(err)
	return l
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAcrossRepositories() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))

	c, err := customer.NewCustomer(kernel.NewUUID(), "Jordan Miles", "jordan@example.com", "")
	suite.Require().NoError(err)
	suite.Require().NoError(uow.CustomerRepository().Add(ctx, c))

	suite.Require().NoError(uow.LoadRepository().Add(ctx, suite.createTestLoad("K111925FL1")))
	suite.Require().NoError(uow.Commit(ctx))

	verify := suite.factory.Create()
	stored, err := verify.LoadRepository().FindByOrderID(ctx, "K111925FL1")
	suite.Require().NoError(err)
	suite.Equal("K111925FL1", stored.OrderID())

	_, err = verify.CustomerRepository().FindByContact(ctx, "jordan@example.com", "")
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsAllChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.LoadRepository().Add(ctx, suite.createTestLoad("K111925FL1")))
	suite.Require().NoError(uow.Rollback(ctx))

	verify := suite.factory.Create()
	_, err := verify.LoadRepository().FindByOrderID(ctx, "K111925FL1")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestNoTransaction_WritesImmediately() {
	ctx := context.Background()
	uow := suite.factory.Create()

	// Without Begin, repositories run against the base connection. This is
	// the mode webhook dispatch uses around its HTTP call.
	suite.Require().NoError(uow.LoadRepository().Add(ctx, suite.createTestLoad("K111925FL1")))

	verify := suite.factory.Create()
	_, err := verify.LoadRepository().FindByOrderID(ctx, "K111925FL1")
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitWithoutBegin_Fails() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestIsolation_SeparateUnitsOfWork() {
	ctx := context.Background()

	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	suite.Require().NoError(first.LoadRepository().Add(ctx, suite.createTestLoad("K111925FL1")))

	// A second unit of work must not see the uncommitted row.
	second := suite.factory.Create()
	_, err := second.LoadRepository().FindByOrderID(ctx, "K111925FL1")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	suite.Require().NoError(first.Commit(ctx))

	_, err = second.LoadRepository().FindByOrderID(ctx, "K111925FL1")
	suite.Require().NoError(err)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
