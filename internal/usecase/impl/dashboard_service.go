package impl

import (
	"context"
	"log/slog"

	deliverycontext "market/internal/delivery/context"
	"market/internal/domain/entity"
	"market/internal/domain/repository"
	"market/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	recentOrdersLimit = 5
	topProductsLimit  = 5
)

// dashboardService implements the DashboardUsecase interface.
type dashboardService struct {
	userRepo  repository.UserRepository
	orderRepo repository.OrderRepository
	logger    *slog.Logger
}

// DashboardServiceParams holds dependencies for dashboardService, injected by Fx.
type DashboardServiceParams struct {
	fx.In

	UserRepo  repository.UserRepository
	OrderRepo repository.OrderRepository
	Logger    *slog.Logger
}

// NewDashboardService is the constructor for dashboardService.
func NewDashboardService(params DashboardServiceParams) usecase.DashboardUsecase {
	return &dashboardService{
		userRepo:  params.UserRepo,
		orderRepo: params.OrderRepo,
		logger:    params.Logger,
	}
}

func (srv *dashboardService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetDashboard aggregates the admin landing-page numbers from live data.
func (srv *dashboardService) GetDashboard(ctx context.Context) (*usecase.DashboardOutput, error) {
	srv.log(ctx).Debug("Computing dashboard aggregates")

	totalUsers, err := srv.userRepo.CountByRole(ctx, entity.RoleUser)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count users")
	}

	totalOrders, err := srv.orderRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count orders")
	}

	revenue, err := srv.orderRepo.SumCompletedTotals(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sum completed order totals")
	}

	recentOrders, err := srv.orderRepo.ListRecent(ctx, recentOrdersLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recent orders")
	}

	sales, err := srv.orderRepo.TopProducts(ctx, topProductsLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate top products")
	}

	topProducts := make([]usecase.TopProduct, 0, len(sales))
	for _, sale := range sales {
		top := usecase.TopProduct{
			ProductID:     sale.ProductID,
			TotalQuantity: sale.TotalQuantity,
		}
		if sale.Product != nil {
			top.Name = sale.Product.Name
			if len(sale.Product.Images) > 0 {
				top.Image = sale.Product.Images[0]
			}
		}
		topProducts = append(topProducts, top)
	}

	return &usecase.DashboardOutput{
		TotalUsers:   totalUsers,
		TotalOrders:  totalOrders,
		TotalRevenue: entity.RoundMoney(revenue),
		RecentOrders: recentOrders,
		TopProducts:  topProducts,
	}, nil
}
