package dto

import (
	"strings"
	"time"

	"github.com/ibrahimafzalmalik/pos-system-nhs/internal/model"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CreateProductRequest is the untrusted create input. Quantity is
// deliberately not part of the contract: new products always start at 0.
type CreateProductRequest struct {
	Name      string          `json:"name"      validate:"required,min=2,max=120"`
	SKU       *string         `json:"sku"`
	Barcode   *string         `json:"barcode"`
	Unit      string          `json:"unit"      validate:"oneof=PCS KG LITER"`
	CostPrice decimal.Decimal `json:"costPrice" validate:"min=0"`
	SalePrice decimal.Decimal `json:"salePrice" validate:"min=0"`
	MinStock  decimal.Decimal `json:"minStock"  validate:"min=0"`
	Status    string          `json:"status"    validate:"oneof=ACTIVE INACTIVE"`
}

// Normalize applies defaults and collapses empty optional strings to absent.
// Must run before Validate.
func (r *CreateProductRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.SKU = normalizeOptional(r.SKU)
	r.Barcode = normalizeOptional(r.Barcode)
	if r.Unit == "" {
		r.Unit = string(model.UnitPCS)
	}
	if r.Status == "" {
		r.Status = string(model.StatusActive)
	}
}

// Validate returns a field→reason map; empty means the input is valid.
func (r CreateProductRequest) Validate() map[string]string {
	fields := map[string]string{}
	checkStruct(r, fields)
	return fields
}

// UpdateProductRequest carries only the fields the caller wants to change.
// Absent fields leave the stored value untouched; null (or empty-string)
// sku/barcode clears the column.
type UpdateProductRequest struct {
	Name      Optional[string]          `json:"name"`
	SKU       Optional[string]          `json:"sku"`
	Barcode   Optional[string]          `json:"barcode"`
	Unit      Optional[string]          `json:"unit"`
	CostPrice Optional[decimal.Decimal] `json:"costPrice"`
	SalePrice Optional[decimal.Decimal] `json:"salePrice"`
	MinStock  Optional[decimal.Decimal] `json:"minStock"`
	Status    Optional[string]          `json:"status"`
}

func (r UpdateProductRequest) Validate() map[string]string {
	fields := map[string]string{}

	if r.Name.Set {
		if r.Name.Null || len(strings.TrimSpace(r.Name.Value)) < 2 {
			fields["name"] = "must be at least 2 characters"
		}
	}
	if r.Unit.Set {
		if r.Unit.Null || !model.Unit(r.Unit.Value).Valid() {
			fields["unit"] = "must be one of PCS KG LITER"
		}
	}
	if r.Status.Set {
		if r.Status.Null || !model.Status(r.Status.Value).Valid() {
			fields["status"] = "must be one of ACTIVE INACTIVE"
		}
	}
	checkDecimal(r.CostPrice, "costPrice", fields)
	checkDecimal(r.SalePrice, "salePrice", fields)
	checkDecimal(r.MinStock, "minStock", fields)

	return fields
}

// Empty reports whether no field at all is present; the repository turns
// such an update into a read.
func (r UpdateProductRequest) Empty() bool {
	return !r.Name.Set && !r.SKU.Set && !r.Barcode.Set && !r.Unit.Set &&
		!r.CostPrice.Set && !r.SalePrice.Set && !r.MinStock.Set && !r.Status.Set
}

func checkDecimal(o Optional[decimal.Decimal], name string, fields map[string]string) {
	if !o.Set {
		return
	}
	if o.Null || o.Value.IsNegative() {
		fields[name] = "must be at least 0"
	}
}

// ProductFilter is the list query. Status defaults to ACTIVE; ALL bypasses
// the status filter entirely.
type ProductFilter struct {
	Q      string `form:"q"`
	Status string `form:"status" validate:"oneof=ACTIVE INACTIVE ALL"`
}

func (f *ProductFilter) Normalize() {
	if f.Status == "" {
		f.Status = string(model.StatusActive)
	}
}

func (f ProductFilter) Validate() map[string]string {
	fields := map[string]string{}
	checkStruct(f, fields)
	return fields
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ACTIVE INACTIVE"`
}

func (r SetStatusRequest) Validate() map[string]string {
	fields := map[string]string{}
	checkStruct(r, fields)
	return fields
}

// AdjustQuantityRequest is a relative stock adjustment (receipts positive,
// corrections/sales negative).
type AdjustQuantityRequest struct {
	Delta int `json:"delta"`
}

func (r AdjustQuantityRequest) Validate() map[string]string {
	fields := map[string]string{}
	if r.Delta == 0 {
		fields["delta"] = "must not be zero"
	}
	return fields
}

// normalizeOptional trims and collapses empty strings to absent, so "" and
// NULL skus never collide under the uniqueness constraint.
func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	SKU       *string         `json:"sku"`
	Barcode   *string         `json:"barcode"`
	Unit      string          `json:"unit"`
	CostPrice decimal.Decimal `json:"costPrice"`
	SalePrice decimal.Decimal `json:"salePrice"`
	Quantity  int             `json:"quantity"`
	MinStock  decimal.Decimal `json:"minStock"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func NewProductResponse(p *model.Product) *ProductResponse {
	return &ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		SKU:       p.SKU,
		Barcode:   p.Barcode,
		Unit:      string(p.Unit),
		CostPrice: p.CostPrice,
		SalePrice: p.SalePrice,
		Quantity:  p.Quantity,
		MinStock:  p.MinStock,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func NewProductListResponse(products []model.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, *NewProductResponse(&products[i]))
	}
	return out
}
