package usecase

import (
	"context"

	"market/internal/domain/entity"

	"github.com/google/uuid"
)

// TopProduct is one entry of the best-sellers aggregation.
type TopProduct struct {
	ProductID     uuid.UUID `json:"productId"`
	Name          string    `json:"name"`
	Image         string    `json:"image,omitempty"`
	TotalQuantity int64     `json:"totalQuantity"`
}

// DashboardOutput aggregates the admin landing-page numbers.
// Recomputed on every request, no caching.
type DashboardOutput struct {
	TotalUsers   int64           `json:"totalUsers"`
	TotalOrders  int64           `json:"totalOrders"`
	TotalRevenue float64         `json:"totalRevenue"`
	RecentOrders []*entity.Order `json:"recentOrders"`
	TopProducts  []TopProduct    `json:"topProducts"`
}

// DashboardUsecase defines the admin analytics read model.
type DashboardUsecase interface {
	GetDashboard(ctx context.Context) (*DashboardOutput, error)
}
