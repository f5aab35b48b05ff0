package service

import (
	"context"

	"github.com/ibrahimafzalmalik/pos-system-nhs/internal/apierror"
	"github.com/ibrahimafzalmalik/pos-system-nhs/internal/dto"
	"github.com/ibrahimafzalmalik/pos-system-nhs/internal/model"
	"github.com/ibrahimafzalmalik/pos-system-nhs/internal/repository"
)

// ProductService defines the business logic contract for the catalog.
// It validates untrusted input before any repository call — an invalid
// request never reaches the database.
type ProductService interface {
	List(ctx context.Context, filter dto.ProductFilter) ([]dto.ProductResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error)
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	SetStatus(ctx context.Context, id int64, req dto.SetStatusRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id int64) error
	AdjustQuantity(ctx context.Context, id int64, req dto.AdjustQuantityRequest) (*dto.ProductResponse, error)
	LowStock(ctx context.Context) ([]dto.ProductResponse, error)
}

type productService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) ([]dto.ProductResponse, error) {
	filter.Normalize()
	if fields := filter.Validate(); len(fields) > 0 {
		return nil, apierror.Validation(fields)
	}
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewProductListResponse(products), nil
}

func (s *productService) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apierror.NotFound("product %d not found", id)
	}
	return dto.NewProductResponse(p), nil
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	req.Normalize()
	if fields := req.Validate(); len(fields) > 0 {
		return nil, apierror.Validation(fields)
	}
	p, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	return dto.NewProductResponse(p), nil
}

func (s *productService) Update(ctx context.Context, id int64, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if fields := req.Validate(); len(fields) > 0 {
		return nil, apierror.Validation(fields)
	}
	p, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	return dto.NewProductResponse(p), nil
}

func (s *productService) SetStatus(ctx context.Context, id int64, req dto.SetStatusRequest) (*dto.ProductResponse, error) {
	if fields := req.Validate(); len(fields) > 0 {
		return nil, apierror.Validation(fields)
	}
	p, err := s.repo.SetStatus(ctx, id, model.Status(req.Status))
	if err != nil {
		return nil, err
	}
	return dto.NewProductResponse(p), nil
}

func (s *productService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *productService) AdjustQuantity(ctx context.Context, id int64, req dto.AdjustQuantityRequest) (*dto.ProductResponse, error) {
	if fields := req.Validate(); len(fields) > 0 {
		return nil, apierror.Validation(fields)
	}
	p, err := s.repo.AdjustQuantity(ctx, id, req.Delta)
	if err != nil {
		return nil, err
	}
	return dto.NewProductResponse(p), nil
}

func (s *productService) LowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := s.repo.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewProductListResponse(products), nil
}
