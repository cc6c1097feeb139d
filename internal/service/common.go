package service

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/scholarhub-api/internal/models"
	"github.com/noah-isme/scholarhub-api/internal/repository"
	appErrors "github.com/noah-isme/scholarhub-api/pkg/errors"
)

// NewValidator returns a validator that reports json field names and knows the portal enums.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
		return models.AnnouncementPriority(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("event_type", func(fl validator.FieldLevel) bool {
		return models.EventType(fl.Field().String()).Valid()
	})
	return v
}

func validationError(err error, message string) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		message = message + ": " + strings.Join(fields, ", ")
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

// storeError maps repository and context failures onto API errors.
func storeError(err error, entity, action string) error {
	if err == nil {
		return nil
	}
	var appErr *appErrors.Error
	switch {
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, repository.ErrNotFound):
		return appErrors.Clone(appErrors.ErrNotFound, entity+" not found")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return appErrors.Wrap(err, appErrors.ErrCanceled.Code, appErrors.ErrCanceled.Status, action+" cancelled")
	default:
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to "+action)
	}
}

func takeFirst[T any](items []T, limit int) []T {
	if limit < 0 || len(items) <= limit {
		return items
	}
	return items[:limit]
}

// recordStore is the table contract the entity facades depend on.
type recordStore[T any] interface {
	All(ctx context.Context) ([]T, error)
	Filter(ctx context.Context, keep func(T) bool) ([]T, error)
	Find(ctx context.Context, id int) (T, error)
	Insert(ctx context.Context, record T) (T, error)
	Update(ctx context.Context, id int, mutate func(*T) error) (T, error)
	UpdateAll(ctx context.Context, mutate func(*T)) ([]T, error)
	Delete(ctx context.Context, id int) error
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
