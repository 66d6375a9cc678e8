package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"hungryhub/internal/domain"
)

type OrderPublisher struct {
	mock.Mock
}

func NewOrderPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *OrderPublisher {
	m := &OrderPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *OrderPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
