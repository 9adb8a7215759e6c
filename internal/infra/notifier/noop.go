package notifier

import (
	"context"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
)

// NoOpNotifier is used when a channel is disabled.
type NoOpNotifier struct{}

func NewNoOpNotifier() *NoOpNotifier {
	return &NoOpNotifier{}
}

func (n *NoOpNotifier) NotifyStatusChange(context.Context, entity.StatusChange) error {
	return nil
}
