package service

import (
	"context"

	"github.com/flexprice/billing-console/internal/api/dto"
	ierr "github.com/flexprice/billing-console/internal/errors"
	"github.com/flexprice/billing-console/internal/types"
)

type CouponService interface {
	CreateCoupon(ctx context.Context, req dto.CreateCouponRequest) (*dto.CouponResponse, error)
	ListCoupons(ctx context.Context, filter *types.QueryFilter) (*dto.ListCouponsResponse, error)
	DeleteCoupon(ctx context.Context, id string) error
}

type couponService struct {
	ServiceParams
}

func NewCouponService(params ServiceParams) CouponService {
	return &couponService{
		ServiceParams: params,
	}
}

func (s *couponService) CreateCoupon(ctx context.Context, req dto.CreateCouponRequest) (*dto.CouponResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.CouponClient.Create(ctx, req)
}

func (s *couponService) ListCoupons(ctx context.Context, filter *types.QueryFilter) (*dto.ListCouponsResponse, error) {
	if filter == nil {
		filter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return s.CouponClient.List(ctx, filter)
}

func (s *couponService) DeleteCoupon(ctx context.Context, id string) error {
	if id == "" {
		return ierr.NewError("coupon ID is required").
			WithHint("Please provide a valid coupon ID").
			Mark(ierr.ErrValidation)
	}
	return s.CouponClient.Delete(ctx, id)
}
