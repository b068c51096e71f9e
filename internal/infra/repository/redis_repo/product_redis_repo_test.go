package redis_repo

import (
	"context"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/ordercenter/internal/domain/model"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ProductRedisRepoTestSuite struct {
	suite.Suite
	mr   *miniredis.Miniredis
	repo *ProductRedisRepo
}

func (suite *ProductRedisRepoTestSuite) SetupTest() {
	suite.mr = miniredis.RunT(suite.T())
	client := redis.NewClient(&redis.Options{Addr: suite.mr.Addr()})
	suite.T().Cleanup(func() { client.Close() })
	suite.repo = NewProductRedisRepo(client, time.Minute)
}

func (suite *ProductRedisRepoTestSuite) TestSetAndGetProduct() {
	ctx := context.Background()
	product := &model.Product{ProductID: 1, Name: "Widget", Price: decimal.RequireFromString("10.25")}

	require.NoError(suite.T(), suite.repo.SetProduct(ctx, product))

	cached, err := suite.repo.GetProduct(ctx, 1)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), "Widget", cached.Name)
	require.True(suite.T(), product.Price.Equal(cached.Price))
	require.Equal(suite.T(), time.Minute, suite.mr.TTL("product:1"))
}

func (suite *ProductRedisRepoTestSuite) TestGetProduct_Miss() {
	_, err := suite.repo.GetProduct(context.Background(), 404)
	require.ErrorIs(suite.T(), err, ErrCacheMiss)
}

func (suite *ProductRedisRepoTestSuite) TestGetProduct_Expired() {
	ctx := context.Background()
	require.NoError(suite.T(), suite.repo.SetProduct(ctx, &model.Product{ProductID: 2, Name: "A", Price: decimal.NewFromInt(1)}))

	suite.mr.FastForward(2 * time.Minute)

	_, err := suite.repo.GetProduct(ctx, 2)
	require.ErrorIs(suite.T(), err, ErrCacheMiss)
}

func (suite *ProductRedisRepoTestSuite) TestDeleteProduct() {
	ctx := context.Background()
	require.NoError(suite.T(), suite.repo.SetProduct(ctx, &model.Product{ProductID: 3, Name: "A", Price: decimal.NewFromInt(1)}))

	require.NoError(suite.T(), suite.repo.DeleteProduct(ctx, 3))

	require.False(suite.T(), suite.mr.Exists("product:3"))
}

func (suite *ProductRedisRepoTestSuite) TestGetProduct_CorruptPrice() {
	suite.mr.HSet("product:4", "name", "A", "price", "not-a-number")

	_, err := suite.repo.GetProduct(context.Background(), 4)
	require.Error(suite.T(), err)
	require.NotErrorIs(suite.T(), err, ErrCacheMiss)
}

func TestProductRedisRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ProductRedisRepoTestSuite))
}
