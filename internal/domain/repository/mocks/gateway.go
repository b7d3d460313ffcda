// Package mocks dobles de prueba de los puertos de repository (testify/mock).
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/puantaj-api/internal/domain/entity"
	"github.com/jhoicas/puantaj-api/internal/domain/repository"
)

var _ repository.Gateway = (*Gateway)(nil)

// Gateway mock de repository.Gateway.
type Gateway struct {
	mock.Mock
}

func (m *Gateway) ListUsers(ctx context.Context) ([]entity.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]entity.User)
	return users, args.Error(1)
}

func (m *Gateway) ListEntries(ctx context.Context) ([]entity.Entry, error) {
	args := m.Called(ctx)
	entries, _ := args.Get(0).([]entity.Entry)
	return entries, args.Error(1)
}

func (m *Gateway) UpsertUser(ctx context.Context, user entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *Gateway) UpsertEntry(ctx context.Context, e entity.Entry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *Gateway) DeleteUser(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *Gateway) DeleteEntry(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *Gateway) DeleteEntriesByTypeAndDate(ctx context.Context, typ entity.EntryType, date string) error {
	return m.Called(ctx, typ, date).Error(0)
}

func (m *Gateway) WipeAll(ctx context.Context, keepUserID string) error {
	return m.Called(ctx, keepUserID).Error(0)
}
