package db

import (
	"context"
	"testing"

	"github.com/RoyceAzure/lab/ordercenter/internal/domain/model"
	"github.com/RoyceAzure/lab/ordercenter/internal/infra/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ProductRepoTestSuite struct {
	suite.Suite
	repo *ProductDBRepo
}

func (suite *ProductRepoTestSuite) SetupTest() {
	suite.repo = NewProductDBRepo(newTestDao(suite.T()))
}

func (suite *ProductRepoTestSuite) createProduct(name string, price string) *model.Product {
	product := &model.Product{Name: name, Price: decimal.RequireFromString(price)}
	require.NoError(suite.T(), suite.repo.CreateProduct(context.Background(), product))
	return product
}

func (suite *ProductRepoTestSuite) TestCreateProduct_AssignsID() {
	first := suite.createProduct("Widget", "10.00")
	second := suite.createProduct("Gadget", "5.50")

	require.NotZero(suite.T(), first.ProductID)
	require.NotEqual(suite.T(), first.ProductID, second.ProductID)
	require.False(suite.T(), first.CreatedAt.IsZero())
}

func (suite *ProductRepoTestSuite) TestGetProductByID() {
	created := suite.createProduct("Widget", "99.99")

	found, err := suite.repo.GetProductByID(context.Background(), created.ProductID)

	require.NoError(suite.T(), err)
	require.Equal(suite.T(), "Widget", found.Name)
	require.True(suite.T(), decimal.RequireFromString("99.99").Equal(found.Price))
}

func (suite *ProductRepoTestSuite) TestGetProductByID_NotFound() {
	found, err := suite.repo.GetProductByID(context.Background(), 999)

	require.ErrorIs(suite.T(), err, repository.ErrProductNotFound)
	require.Nil(suite.T(), found)
}

func (suite *ProductRepoTestSuite) TestExistsProduct() {
	created := suite.createProduct("Widget", "1")

	exists, err := suite.repo.ExistsProduct(context.Background(), created.ProductID)
	require.NoError(suite.T(), err)
	require.True(suite.T(), exists)

	exists, err = suite.repo.ExistsProduct(context.Background(), 999)
	require.NoError(suite.T(), err)
	require.False(suite.T(), exists)
}

func (suite *ProductRepoTestSuite) TestGetAllProducts() {
	suite.createProduct("A", "1")
	suite.createProduct("B", "2")

	products, err := suite.repo.GetAllProducts(context.Background())

	require.NoError(suite.T(), err)
	require.Len(suite.T(), products, 2)
	require.Equal(suite.T(), "A", products[0].Name)
	require.Equal(suite.T(), "B", products[1].Name)
}

func (suite *ProductRepoTestSuite) TestUpdateProduct() {
	created := suite.createProduct("Widget", "10")
	created.Name = "Widget v2"
	created.Price = decimal.RequireFromString("12.50")

	require.NoError(suite.T(), suite.repo.UpdateProduct(context.Background(), created))

	found, err := suite.repo.GetProductByID(context.Background(), created.ProductID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), "Widget v2", found.Name)
	require.True(suite.T(), decimal.RequireFromString("12.50").Equal(found.Price))
}

func (suite *ProductRepoTestSuite) TestUpdateProduct_NotFound() {
	err := suite.repo.UpdateProduct(context.Background(), &model.Product{ProductID: 999, Name: "x", Price: decimal.NewFromInt(1)})
	require.ErrorIs(suite.T(), err, repository.ErrProductNotFound)
}

func (suite *ProductRepoTestSuite) TestDeleteProduct() {
	created := suite.createProduct("Widget", "10")

	require.NoError(suite.T(), suite.repo.DeleteProduct(context.Background(), created.ProductID))

	_, err := suite.repo.GetProductByID(context.Background(), created.ProductID)
	require.ErrorIs(suite.T(), err, repository.ErrProductNotFound)

	err = suite.repo.DeleteProduct(context.Background(), created.ProductID)
	require.ErrorIs(suite.T(), err, repository.ErrProductNotFound)
}

func TestProductRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ProductRepoTestSuite))
}
