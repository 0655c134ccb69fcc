// backend-go/internal/service/solped_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jacengineering/inventario/backend-go/internal/domain"
	"github.com/jacengineering/inventario/backend-go/internal/repository"
)

var (
	ErrEmptyCart         = errors.New("solped: cart is empty")
	ErrMissingRequester  = errors.New("solped: requester name is required")
	ErrSolpedNotFound    = errors.New("solped: request not found")
	ErrInvalidTransition = errors.New("solped: state transition not allowed")
)

type SolpedService struct {
	repo repository.SolpedRepository
	now  func() time.Time
}

func NewSolpedService(repo repository.SolpedRepository) *SolpedService {
	return &SolpedService{repo: repo, now: time.Now}
}

// AddToCart merges an item into the cart, combining quantities when the same
// (code, center) is added twice. Returns the updated cart; the caller owns
// the aggregate.
func AddToCart(cart []domain.CartItem, item domain.CartItem) []domain.CartItem {
	for i := range cart {
		if cart[i].Code == item.Code && cart[i].Center == item.Center {
			cart[i].Quantity += item.Quantity
			return cart
		}
	}
	return append(cart, item)
}

// RemoveFromCart drops a line by (code, center).
func RemoveFromCart(cart []domain.CartItem, code, center string) []domain.CartItem {
	filtered := cart[:0]
	for _, item := range cart {
		if item.Code == code && item.Center == center {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

// CartTotal sums the cart value.
func CartTotal(cart []domain.CartItem) float64 {
	var total float64
	for _, item := range cart {
		total += float64(item.Quantity) * item.UnitPrice
	}
	return total
}

// Generate turns a cart into a numbered purchase request and appends its
// lines to the stored history. Numbers are SOLPED-YYYY-NNN, continuing the
// year's sequence.
func (s *SolpedService) Generate(ctx context.Context, cart []domain.CartItem, requestedBy, notes string) (string, []domain.SolpedLine, error) {
	if len(cart) == 0 {
		return "", nil, ErrEmptyCart
	}
	if requestedBy == "" {
		return "", nil, ErrMissingRequester
	}

	for _, item := range cart {
		if item.Code == "" || item.Quantity < 1 {
			return "", nil, fmt.Errorf("solped: invalid cart line %q (qty %d)", item.Code, item.Quantity)
		}
	}

	now := s.now()
	seq, err := s.repo.NextSequence(ctx, now.Year())
	if err != nil {
		return "", nil, err
	}
	number := fmt.Sprintf("SOLPED-%d-%03d", now.Year(), seq)

	lines := make([]domain.SolpedLine, 0, len(cart))
	for _, item := range cart {
		unit := item.Unit
		if unit == "" {
			unit = domain.DefaultUnit
		}
		lines = append(lines, domain.SolpedLine{
			Number:        number,
			Date:          now.Format("2006-01-02 15:04"),
			Code:          item.Code,
			Description:   item.Description,
			TechnicalName: item.TechnicalName,
			Center:        item.Center,
			CenterName:    item.CenterName,
			Quantity:      item.Quantity,
			Unit:          unit,
			UnitPrice:     item.UnitPrice,
			TotalValue:    float64(item.Quantity) * item.UnitPrice,
			Criticality:   domain.NormalizeCriticality(item.Criticality),
			Supplier:      item.Supplier,
			RequestedBy:   requestedBy,
			State:         domain.SolpedPending,
			Notes:         notes,
		})
	}

	if err := s.repo.InsertLines(ctx, lines); err != nil {
		return "", nil, err
	}

	log.Info().Str("solped", number).Int("items", len(lines)).Msg("solped generated")
	return number, lines, nil
}

// History lists stored purchase-request lines.
func (s *SolpedService) History(ctx context.Context, filter domain.SolpedFilter) ([]domain.SolpedLine, error) {
	return s.repo.List(ctx, filter)
}

// Summary aggregates the stored history.
func (s *SolpedService) Summary(ctx context.Context) (domain.SolpedSummary, error) {
	return s.repo.Summary(ctx)
}

// Transition moves a purchase request to a new state, enforcing the
// PENDIENTE -> APROBADA -> RECIBIDA lifecycle (RECHAZADA from PENDIENTE).
func (s *SolpedService) Transition(ctx context.Context, number string, to domain.SolpedState) error {
	lines, err := s.repo.List(ctx, domain.SolpedFilter{Number: number})
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return ErrSolpedNotFound
	}

	current := lines[0].State
	if !current.CanTransition(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, to)
	}

	affected, err := s.repo.UpdateState(ctx, number, to)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSolpedNotFound
	}

	log.Info().Str("solped", number).Str("from", string(current)).Str("to", string(to)).Msg("solped state updated")
	return nil
}
