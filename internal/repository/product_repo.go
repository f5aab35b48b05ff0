package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ibrahimafzalmalik/pos-system-nhs/internal/apierror"
	"github.com/ibrahimafzalmalik/pos-system-nhs/internal/dto"
	"github.com/ibrahimafzalmalik/pos-system-nhs/internal/model"

	"gorm.io/gorm"
)

// ProductRepository defines the data access contract for the catalog.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
//
// Every write runs inside a single transaction; under the one-writer
// connection discipline (see infra.NewDatabase) check-then-write sequences
// are observed atomically by all callers.
type ProductRepository interface {
	List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, error)
	// FindByID returns (nil, nil) when the product does not exist; absence
	// is not an error at this layer.
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	Create(ctx context.Context, req dto.CreateProductRequest) (*model.Product, error)
	Update(ctx context.Context, id int64, req dto.UpdateProductRequest) (*model.Product, error)
	SetStatus(ctx context.Context, id int64, status model.Status) (*model.Product, error)
	Delete(ctx context.Context, id int64) error
	AdjustQuantity(ctx context.Context, id int64, delta int) (*model.Product, error)
	LowStock(ctx context.Context) ([]model.Product, error)
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, error) {
	q := r.db.WithContext(ctx).Model(&model.Product{})

	if filter.Status != "ALL" {
		q = q.Where("status = ?", filter.Status)
	}
	if term := strings.TrimSpace(filter.Q); term != "" {
		pattern := "%" + escapeLike(term) + "%"
		q = q.Where("(name LIKE ? ESCAPE '\\' OR sku LIKE ? ESCAPE '\\' OR barcode LIKE ? ESCAPE '\\')",
			pattern, pattern, pattern)
	}

	var products []model.Product
	err := q.Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new product with quantity forced to 0 and returns the
// persisted row. The SKU uniqueness check and the insert share one
// transaction, so no concurrent create can slip between them.
func (r *productRepo) Create(ctx context.Context, req dto.CreateProductRequest) (*model.Product, error) {
	now := time.Now().UTC()
	p := model.Product{
		Name:      req.Name,
		SKU:       req.SKU,
		Barcode:   req.Barcode,
		Unit:      model.Unit(req.Unit),
		CostPrice: req.CostPrice,
		SalePrice: req.SalePrice,
		Quantity:  0,
		MinStock:  req.MinStock,
		Status:    model.Status(req.Status),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.SKU != nil {
			var count int64
			if err := tx.Model(&model.Product{}).Where("sku = ?", *req.SKU).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return apierror.DuplicateKey("sku %q already exists", *req.SKU)
			}
		}
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		// Re-read to capture column defaults alongside the assigned id.
		if err := tx.First(&p, p.ID).Error; err != nil {
			return fmt.Errorf("reread created product %d: %w", p.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update applies only the fields present in req. With zero present fields it
// returns the stored row without issuing a write, leaving updated_at alone.
func (r *productRepo) Update(ctx context.Context, id int64, req dto.UpdateProductRequest) (*model.Product, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apierror.NotFound("product %d not found", id)
	}
	if req.Empty() {
		return existing, nil
	}

	changes := map[string]interface{}{}
	if req.Name.Set {
		changes["name"] = strings.TrimSpace(req.Name.Value)
	}
	if req.SKU.Set {
		changes["sku"] = clearable(req.SKU)
	}
	if req.Barcode.Set {
		changes["barcode"] = clearable(req.Barcode)
	}
	if req.Unit.Set {
		changes["unit"] = req.Unit.Value
	}
	if req.CostPrice.Set {
		changes["cost_price"] = req.CostPrice.Value
	}
	if req.SalePrice.Set {
		changes["sale_price"] = req.SalePrice.Value
	}
	if req.MinStock.Set {
		changes["min_stock"] = req.MinStock.Value
	}
	if req.Status.Set {
		changes["status"] = req.Status.Value
	}
	changes["updated_at"] = time.Now().UTC()

	var updated model.Product
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Product{}).Where("id = ?", id).Updates(changes).Error; err != nil {
			return err
		}
		return tx.First(&updated, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *productRepo) SetStatus(ctx context.Context, id int64, status model.Status) (*model.Product, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apierror.NotFound("product %d not found", id)
	}

	var updated model.Product
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Product{}).Where("id = ?", id).Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now().UTC(),
		}).Error
		if err != nil {
			return err
		}
		return tx.First(&updated, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete physically removes the row. Products still holding stock cannot be
// deleted — zero the quantity or deactivate instead. The guard reads the
// quantity inside the delete transaction: a concurrent stock receipt cannot
// slip between the check and the DELETE.
func (r *productRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.Product
		err := tx.First(&p, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("product %d not found", id)
		}
		if err != nil {
			return err
		}
		if p.Quantity != 0 {
			return apierror.BusinessRule("product %d has quantity %d and cannot be deleted", id, p.Quantity)
		}
		return tx.Delete(&model.Product{}, id).Error
	})
}

// AdjustQuantity applies a relative stock change. The inventory screens are
// the only writers of quantity; create/update never touch it. Guard and
// update share one transaction so two concurrent decrements cannot both pass
// the non-negative check.
func (r *productRepo) AdjustQuantity(ctx context.Context, id int64, delta int) (*model.Product, error) {
	var updated model.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.Product
		err := tx.First(&p, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("product %d not found", id)
		}
		if err != nil {
			return err
		}
		if p.Quantity+delta < 0 {
			return apierror.BusinessRule("adjustment %d would make quantity of product %d negative", delta, id)
		}
		err = tx.Model(&model.Product{}).Where("id = ?", id).Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_at": time.Now().UTC(),
		}).Error
		if err != nil {
			return err
		}
		return tx.First(&updated, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// LowStock lists active products at or below their reorder threshold.
func (r *productRepo) LowStock(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("status = ?", model.StatusActive).
		Where("quantity <= min_stock").
		Order("name ASC").
		Find(&products).Error
	return products, err
}

// escapeLike makes a search term match literally under LIKE ... ESCAPE '\'.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func clearable(o dto.Optional[string]) *string {
	if o.Null {
		return nil
	}
	t := strings.TrimSpace(o.Value)
	if t == "" {
		return nil
	}
	return &t
}
