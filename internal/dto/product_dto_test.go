package dto

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalTriState(t *testing.T) {
	var req UpdateProductRequest
	body := `{"name": "Brush 2in", "sku": null}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	assert.True(t, req.Name.Set)
	assert.False(t, req.Name.Null)
	assert.Equal(t, "Brush 2in", req.Name.Value)

	assert.True(t, req.SKU.Set)
	assert.True(t, req.SKU.Null)

	// barcode was absent
	assert.False(t, req.Barcode.Set)
	assert.False(t, req.Empty())
}

func TestCreateNormalizeAppliesDefaults(t *testing.T) {
	empty := ""
	padded := "  AB-1  "
	req := CreateProductRequest{
		Name:    "  Brush 2in  ",
		SKU:     &empty,
		Barcode: &padded,
	}
	req.Normalize()

	assert.Equal(t, "Brush 2in", req.Name)
	assert.Nil(t, req.SKU, "empty sku normalizes to absent")
	require.NotNil(t, req.Barcode)
	assert.Equal(t, "AB-1", *req.Barcode)
	assert.Equal(t, "PCS", req.Unit)
	assert.Equal(t, "ACTIVE", req.Status)
}

func TestCreateValidateEnumeratesEveryViolation(t *testing.T) {
	req := CreateProductRequest{
		Name:      "B",
		Unit:      "BOX",
		CostPrice: decimal.NewFromInt(-1),
		Status:    "ACTIVE",
	}
	fields := req.Validate()

	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "unit")
	assert.Contains(t, fields, "costPrice")
	assert.NotContains(t, fields, "salePrice")
}

func TestCreateValidAfterNormalize(t *testing.T) {
	req := CreateProductRequest{
		Name:      "Brush 2in",
		CostPrice: decimal.NewFromInt(85),
		SalePrice: decimal.NewFromInt(120),
		MinStock:  decimal.NewFromInt(25),
	}
	req.Normalize()
	assert.Empty(t, req.Validate())
}

func TestUpdateValidateChecksOnlyPresentFields(t *testing.T) {
	req := UpdateProductRequest{
		Name:      Null[string](),
		Unit:      Some("CRATE"),
		SalePrice: Some(decimal.NewFromInt(-5)),
	}
	fields := req.Validate()

	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "unit")
	assert.Contains(t, fields, "salePrice")
	assert.NotContains(t, fields, "costPrice")

	assert.Empty(t, UpdateProductRequest{}.Validate())
}

func TestFilterDefaultsToActive(t *testing.T) {
	f := ProductFilter{}
	f.Normalize()
	assert.Equal(t, "ACTIVE", f.Status)
	assert.Empty(t, f.Validate())

	bad := ProductFilter{Status: "EVERYTHING"}
	assert.Contains(t, bad.Validate(), "status")
}

func TestSetStatusValidate(t *testing.T) {
	assert.Contains(t, SetStatusRequest{}.Validate(), "status")
	assert.Contains(t, SetStatusRequest{Status: "GONE"}.Validate(), "status")
	assert.Empty(t, SetStatusRequest{Status: "INACTIVE"}.Validate())
}

func TestAdjustQuantityValidate(t *testing.T) {
	assert.Contains(t, AdjustQuantityRequest{}.Validate(), "delta")
	assert.Empty(t, AdjustQuantityRequest{Delta: -3}.Validate())
}
