package postgres

import (
	"context"

	"market/internal/domain/entity"
	domainerrors "market/internal/domain/errors"
	"market/internal/domain/repository"
	"market/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the repository.OrderRepository interface using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// Create persists a new order with its items. GORM inserts the order and its
// items together through the association.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("order number already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrProductUnavailable.WrapMessage("invalid product or user reference")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid order item quantity")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt
	for i, itemM := range orderM.Items {
		order.Items[i].ID = itemM.ID
	}

	return nil
}

// FindByID retrieves an order with items and product details populated.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return repo.findOne(repo.db.WithContext(ctx).Where("id = ?", id))
}

// FindByIDForUser retrieves an order only when owned by userID. A foreign
// order is reported as not found.
func (repo *orderRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entity.Order, error) {
	return repo.findOne(repo.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID))
}

// FindByIDForDelivery retrieves an order only when assigned to deliveryPersonID.
func (repo *orderRepository) FindByIDForDelivery(ctx context.Context, id, deliveryPersonID uuid.UUID) (*entity.Order, error) {
	return repo.findOne(repo.db.WithContext(ctx).Where("id = ? AND delivery_person_id = ?", id, deliveryPersonID))
}

func (repo *orderRepository) findOne(query *gorm.DB) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := query.
		Preload("Items.Product").
		Preload("User").
		Preload("DeliveryPerson").
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return toOrderDomain(&orderM), nil
}

// Update persists status, payment and assignment mutations. Items are
// immutable after creation and deliberately excluded from the update.
func (repo *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	updates := map[string]any{
		"status":             string(order.Status),
		"payment_status":     string(order.PaymentStatus),
		"transaction_id":     order.TransactionID,
		"delivery_person_id": order.DeliveryPersonID,
	}

	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", order.ID).
		Updates(updates)

	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrNotDeliveryPerson.WrapMessage("invalid delivery person reference")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order")
	}

	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// ListByUser returns a user's orders, newest first.
func (repo *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	return repo.findMany(repo.db.WithContext(ctx).Where("user_id = ?", userID), "failed to list orders by user")
}

// ListAll returns every order with owner and delivery person populated, newest first.
func (repo *orderRepository) ListAll(ctx context.Context) ([]*entity.Order, error) {
	return repo.findMany(repo.db.WithContext(ctx), "failed to list orders")
}

// ListByDeliveryPerson returns orders assigned to a delivery user, newest first.
func (repo *orderRepository) ListByDeliveryPerson(ctx context.Context, deliveryPersonID uuid.UUID) ([]*entity.Order, error) {
	return repo.findMany(repo.db.WithContext(ctx).Where("delivery_person_id = ?", deliveryPersonID), "failed to list orders by delivery person")
}

// ListRecent returns the most recent orders with owners populated.
func (repo *orderRepository) ListRecent(ctx context.Context, limit int) ([]*entity.Order, error) {
	return repo.findMany(repo.db.WithContext(ctx).Limit(limit), "failed to list recent orders")
}

func (repo *orderRepository) findMany(query *gorm.DB, failMsg string) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := query.
		Preload("Items.Product").
		Preload("User").
		Preload("DeliveryPerson").
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, failMsg)
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

// Count returns the total number of orders.
func (repo *orderRepository) Count(ctx context.Context) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count orders")
	}

	return count, nil
}

// CountByUser returns the number of orders placed by a user.
func (repo *orderRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count orders by user")
	}

	return count, nil
}

// SumCompletedTotals sums Order.Total over orders with completed payment.
func (repo *orderRepository) SumCompletedTotals(ctx context.Context) (float64, error) {
	var sum float64

	if err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("payment_status = ?", string(entity.PaymentCompleted)).
		Select("COALESCE(SUM(total), 0)").
		Scan(&sum).Error; err != nil {
		return 0, errors.Wrap(err, "failed to sum completed order totals")
	}

	return sum, nil
}

// TopProducts returns the products with the highest summed ordered quantity
// across all orders.
func (repo *orderRepository) TopProducts(ctx context.Context, limit int) ([]*repository.ProductSales, error) {
	type productSalesRow struct {
		ProductID     uuid.UUID
		TotalQuantity int64
	}

	var rows []productSalesRow
	if err := repo.db.WithContext(ctx).
		Model(&model.OrderItemModel{}).
		Select("product_id, SUM(quantity) AS total_quantity").
		Group("product_id").
		Order("total_quantity DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to aggregate top products")
	}

	sales := make([]*repository.ProductSales, 0, len(rows))
	for _, row := range rows {
		entry := &repository.ProductSales{
			ProductID:     row.ProductID,
			TotalQuantity: row.TotalQuantity,
		}

		var productM model.ProductModel
		err := repo.db.WithContext(ctx).
			Where("id = ?", row.ProductID).
			First(&productM).Error
		switch {
		case err == nil:
			entry.Product = toProductDomain(&productM)
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Product rows are never hard-deleted, but tolerate a gap
			// rather than failing the whole dashboard.
		default:
			return nil, errors.Wrap(err, "failed to load top product")
		}

		sales = append(sales, entry)
	}

	return sales, nil
}

// --- Mapper Functions ---

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	items := make([]*entity.OrderItem, 0, len(data.Items))
	for _, itemM := range data.Items {
		items = append(items, &entity.OrderItem{
			ID:        itemM.ID,
			ProductID: itemM.ProductID,
			Quantity:  itemM.Quantity,
			Price:     itemM.Price,
			Product:   toProductDomain(itemM.Product),
		})
	}

	order := &entity.Order{
		ID:               data.ID,
		OrderNumber:      data.OrderNumber,
		UserID:           data.UserID,
		Items:            items,
		Subtotal:         data.Subtotal,
		Tax:              data.Tax,
		Shipping:         data.Shipping,
		Total:            data.Total,
		Status:           entity.OrderStatus(data.Status),
		PaymentMethod:    entity.PaymentMethod(data.PaymentMethod),
		PaymentStatus:    entity.PaymentStatus(data.PaymentStatus),
		TransactionID:    data.TransactionID,
		ShippingAddress:  data.ShippingAddress,
		BillingAddress:   data.BillingAddress,
		Notes:            data.Notes,
		DeliveryPersonID: data.DeliveryPersonID,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}

	if data.User != nil {
		order.User = toUserDomain(data.User).Public()
	}
	if data.DeliveryPerson != nil {
		order.DeliveryPerson = toUserDomain(data.DeliveryPerson).Public()
	}

	return order
}

// fromOrderDomain converts a domain Order entity to a GORM OrderModel.
func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	items := make([]model.OrderItemModel, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, model.OrderItemModel{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	return &model.OrderModel{
		ID:               data.ID,
		OrderNumber:      data.OrderNumber,
		UserID:           data.UserID,
		Subtotal:         data.Subtotal,
		Tax:              data.Tax,
		Shipping:         data.Shipping,
		Total:            data.Total,
		Status:           string(data.Status),
		PaymentMethod:    string(data.PaymentMethod),
		PaymentStatus:    string(data.PaymentStatus),
		TransactionID:    data.TransactionID,
		ShippingAddress:  data.ShippingAddress,
		BillingAddress:   data.BillingAddress,
		Notes:            data.Notes,
		DeliveryPersonID: data.DeliveryPersonID,
		Items:            items,
	}
}
