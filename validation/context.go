package validation

import (
	"context"
	"sync"
)

type contextKey string

func (c contextKey) String() string {
	return "validation-context-key-" + string(c)
}

const errorsContextKey = contextKey("errors")

type validationContext struct {
	mu     sync.Mutex
	Errors []error
}

// ContextWithValidationContext returns a context that collects errors added
// through AddValidationError.
func ContextWithValidationContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, errorsContextKey, &validationContext{})
}

// AddValidationError records err on the collecting context. It is a no-op when
// ctx was not created by ContextWithValidationContext.
func AddValidationError(ctx context.Context, err error) {
	validationContext, ok := ctx.Value(errorsContextKey).(*validationContext)
	if !ok {
		return
	}

	validationContext.mu.Lock()
	defer validationContext.mu.Unlock()
	validationContext.Errors = append(validationContext.Errors, err)
}

// GetValidationErrors returns the errors collected so far.
func GetValidationErrors(ctx context.Context) []error {
	validationContext, ok := ctx.Value(errorsContextKey).(*validationContext)
	if !ok {
		return nil
	}

	validationContext.mu.Lock()
	defer validationContext.mu.Unlock()
	if len(validationContext.Errors) == 0 {
		return nil
	}
	return append([]error(nil), validationContext.Errors...)
}
