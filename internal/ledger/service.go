package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	ListOpenOrders(ctx context.Context, stationID, productID uuid.UUID) ([]PurchaseOrder, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Remaining lists the approved orders with volume left for a station and
// product, oldest first, and their total.
func (s *Service) Remaining(ctx context.Context, stationID, productID uuid.UUID) (Remaining, error) {
	orders, err := s.repo.ListOpenOrders(ctx, stationID, productID)
	if err != nil {
		return Remaining{}, fmt.Errorf("listing open orders: %w", err)
	}

	return NewRemaining(orders), nil
}
