package productrepo_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/productrepo"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// ProductRepositoryIntegrationTestSuite provides integration tests for
// ProductRepository using PostgreSQL containers.
type ProductRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *productrepo.GormProductRepository
	tracker    *MockAggregateTracker
}

func (suite *ProductRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&productrepo.ProductDTO{}))
}

func (suite *ProductRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE products").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = productrepo.NewGormProductRepository(suite.db, suite.tracker)
}

func (suite *ProductRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ProductRepositoryIntegrationTestSuite) createTestProduct(name string) *product.Product {
	location, err := kernel.NewGeoPoint(48.137, 11.575)
	suite.Require().NoError(err)

	testProduct, err := product.NewProduct(
		kernel.NewUUID(), kernel.NewUUID(), name, "groceries", 4.50,
		location, "Marienplatz 8", 7.5)
	suite.Require().NoError(err)
	return testProduct
}

func (suite *ProductRepositoryIntegrationTestSuite) addProduct(name string) *product.Product {
	testProduct := suite.createTestProduct(name)
	suite.tracker.On("TrackAggregate", testProduct.ID(), testProduct).Once()
	suite.Require().NoError(suite.repository.Add(context.Background(), testProduct))
	return testProduct
}

func (suite *ProductRepositoryIntegrationTestSuite) TestAdd_Get_RoundTrip() {
	ctx := context.Background()
	testProduct := suite.addProduct("oat milk")

	loaded, err := suite.repository.Get(ctx, testProduct.ID())
	suite.Require().NoError(err)

	suite.True(loaded.ID().IsEqual(testProduct.ID()))
	suite.True(loaded.VendorID().IsEqual(testProduct.VendorID()))
	suite.Equal("oat milk", loaded.Name())
	suite.Equal("groceries", loaded.Category())
	suite.InDelta(4.50, loaded.Price(), 1e-9)
	suite.Equal("Marienplatz 8", loaded.AddressLine())
	suite.InDelta(7.5, loaded.DeliveryRadiusKm(), 1e-9)
	suite.True(loaded.IsActive())

	equal, err := loaded.Location().IsEqual(testProduct.Location())
	suite.Require().NoError(err)
	suite.True(equal)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ProductRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ProductRepositoryIntegrationTestSuite) TestUpdate_PersistsDeactivation() {
	ctx := context.Background()
	testProduct := suite.addProduct("rye bread")

	testProduct.Deactivate()
	suite.tracker.On("TrackAggregate", testProduct.ID(), testProduct).Once()
	suite.Require().NoError(suite.repository.Update(ctx, testProduct))

	loaded, err := suite.repository.Get(ctx, testProduct.ID())
	suite.Require().NoError(err)
	suite.False(loaded.IsActive())
}

func (suite *ProductRepositoryIntegrationTestSuite) TestGetByIDs_AllFound() {
	ctx := context.Background()
	first := suite.addProduct("apples")
	second := suite.addProduct("pears")

	products, err := suite.repository.GetByIDs(ctx, []kernel.UUID{first.ID(), second.ID()})
	suite.Require().NoError(err)
	suite.Len(products, 2)
}

func (suite *ProductRepositoryIntegrationTestSuite) TestGetByIDs_MissingProduct() {
	ctx := context.Background()
	existing := suite.addProduct("apples")

	_, err := suite.repository.GetByIDs(ctx, []kernel.UUID{existing.ID(), kernel.NewUUID()})
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ProductRepositoryIntegrationTestSuite) TestGetByIDs_ExcludesInactive() {
	ctx := context.Background()
	inactive := suite.addProduct("stale stock")

	inactive.Deactivate()
	suite.tracker.On("TrackAggregate", inactive.ID(), inactive).Once()
	suite.Require().NoError(suite.repository.Update(ctx, inactive))

	_, err := suite.repository.GetByIDs(ctx, []kernel.UUID{inactive.ID()})
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestProductRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ProductRepositoryIntegrationTestSuite))
}
