package composables

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/eisenhub/catalog/pkg/constants"
)

var (
	ErrNoTenantID = errors.New("tenant id not found in context")
	ErrNoUserID   = errors.New("user id not found in context")
)

// UseLogger returns the logger from the context.
// Panics when no logger was attached; middleware always attaches one.
func UseLogger(ctx context.Context) *logrus.Entry {
	logger := ctx.Value(constants.LoggerKey)
	if logger == nil {
		panic("logger not found")
	}
	return logger.(*logrus.Entry)
}

func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, constants.LoggerKey, logger)
}

func WithTenantID(ctx context.Context, tenantID uuid.UUID) context.Context {
	return context.WithValue(ctx, constants.TenantIDKey, tenantID)
}

func UseTenantID(ctx context.Context) (uuid.UUID, error) {
	tenantID, ok := ctx.Value(constants.TenantIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, ErrNoTenantID
	}
	return tenantID, nil
}

func WithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, constants.UserIDKey, userID)
}

func UseUserID(ctx context.Context) (uint, error) {
	userID, ok := ctx.Value(constants.UserIDKey).(uint)
	if !ok {
		return 0, ErrNoUserID
	}
	return userID, nil
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, constants.RequestIDKey, requestID)
}

func UseRequestID(ctx context.Context) string {
	requestID, ok := ctx.Value(constants.RequestIDKey).(string)
	if !ok {
		return ""
	}
	return requestID
}
