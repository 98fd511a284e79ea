package interfaces

import (
	"context"

	"fnol_intake/internal/domain/entities"
)

// INotifier delivers best-effort notifications (e-mail, queue, log).
// Callers never let a delivery failure change the outcome of an operation.
type INotifier interface {
	Notify(ctx context.Context, n entities.Notification) error
}
