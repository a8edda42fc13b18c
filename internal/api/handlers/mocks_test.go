package handlers

import (
	"context"

	"github.com/pricewise/pricewise/internal/models"
)

type stubProductStore struct {
	products []models.Product
	err      error
	removed  []int64
}

func (s *stubProductStore) List(context.Context) ([]models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

func (s *stubProductStore) Get(_ context.Context, id int64) (models.Product, error) {
	if s.err != nil {
		return models.Product{}, s.err
	}
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, models.ErrNotFound
}

func (s *stubProductStore) RemoveDiscount(_ context.Context, id int64) error {
	if s.err != nil {
		return s.err
	}
	for _, p := range s.products {
		if p.ID == id {
			s.removed = append(s.removed, id)
			return nil
		}
	}
	return models.ErrNotFound
}

type stubCouponStore struct {
	coupons   []models.Coupon
	createErr error
	created   []models.Coupon
}

func (s *stubCouponStore) List(context.Context) ([]models.Coupon, error) {
	return s.coupons, nil
}

func (s *stubCouponStore) GetByCode(_ context.Context, code string) (models.Coupon, error) {
	for _, c := range s.coupons {
		if c.Matches(code) {
			return c, nil
		}
	}
	return models.Coupon{}, models.ErrNotFound
}

func (s *stubCouponStore) Create(_ context.Context, c models.Coupon) (models.Coupon, error) {
	if s.createErr != nil {
		return models.Coupon{}, s.createErr
	}
	c.ID = int64(len(s.coupons) + 1)
	s.coupons = append(s.coupons, c)
	s.created = append(s.created, c)
	return c, nil
}

type stubOrderStore struct {
	err  error
	last models.Order
}

func (s *stubOrderStore) Create(_ context.Context, o models.Order) (models.Order, error) {
	if s.err != nil {
		return models.Order{}, s.err
	}
	o.ID = "order-1"
	s.last = o
	return o, nil
}
