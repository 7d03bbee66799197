package impl

import (
	"context"
	"testing"

	"market/internal/domain/entity"
	"market/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_GetDashboard(t *testing.T) {
	repos := newTestRepos()
	service := NewDashboardService(DashboardServiceParams{
		UserRepo:  repos.userRepo,
		OrderRepo: repos.orderRepo,
		Logger:    newDiscardLogger(),
	})

	ctx := context.Background()
	recent := []*entity.Order{{ID: uuid.New(), OrderNumber: "ORD-1"}}
	sales := []*repository.ProductSales{
		{
			ProductID:     uuid.New(),
			TotalQuantity: 12,
			Product:       &entity.Product{Name: "widget", Images: []string{"primary.png", "alt.png"}},
		},
		{
			ProductID:     uuid.New(),
			TotalQuantity: 7,
		},
	}

	repos.userRepo.On("CountByRole", ctx, entity.RoleUser).Return(int64(42), nil)
	repos.orderRepo.On("Count", ctx).Return(int64(10), nil)
	repos.orderRepo.On("SumCompletedTotals", ctx).Return(12345.678, nil)
	repos.orderRepo.On("ListRecent", ctx, 5).Return(recent, nil)
	repos.orderRepo.On("TopProducts", ctx, 5).Return(sales, nil)

	out, err := service.GetDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(42), out.TotalUsers)
	assert.Equal(t, int64(10), out.TotalOrders)
	assert.Equal(t, 12345.68, out.TotalRevenue)
	assert.Len(t, out.RecentOrders, 1)
	require.Len(t, out.TopProducts, 2)
	assert.Equal(t, "widget", out.TopProducts[0].Name)
	assert.Equal(t, "primary.png", out.TopProducts[0].Image)
	assert.Equal(t, int64(12), out.TopProducts[0].TotalQuantity)
	assert.Empty(t, out.TopProducts[1].Name)
}
