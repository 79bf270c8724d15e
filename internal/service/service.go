// Package service contains the business rules on top of the repositories.
package service

import (
	"context"

	"creativeapp/internal/models"
	"creativeapp/internal/observability"
	"creativeapp/internal/repository"

	"go.opentelemetry.io/otel/trace"
)

// invalid wraps an ozzo validation failure as a VALIDATION_ERROR.
func invalid(err error) error {
	if err == nil {
		return nil
	}
	return models.NewValidationError(err.Error())
}

func startSpan(ctx context.Context, service, method string) (context.Context, trace.Span) {
	return observability.GetTraceLayer().TraceServiceCall(ctx, service, method)
}

func userBySlug(ctx context.Context, users repository.UserRepository, slug string) (*models.User, error) {
	if slug == "" {
		return nil, models.NewValidationError("user slug is required")
	}
	return users.GetBySlug(ctx, slug)
}
