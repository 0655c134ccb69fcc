package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jacengineering/inventario/backend-go/internal/domain"
)

type fakeSolpedRepo struct {
	lines   []domain.SolpedLine
	nextSeq int
}

func (f *fakeSolpedRepo) InsertLines(ctx context.Context, lines []domain.SolpedLine) error {
	f.lines = append(f.lines, lines...)
	return nil
}

func (f *fakeSolpedRepo) List(ctx context.Context, filter domain.SolpedFilter) ([]domain.SolpedLine, error) {
	var out []domain.SolpedLine
	for _, line := range f.lines {
		if filter.Number != "" && line.Number != filter.Number {
			continue
		}
		if filter.State != "" && string(line.State) != filter.State {
			continue
		}
		out = append(out, line)
	}
	return out, nil
}

func (f *fakeSolpedRepo) NextSequence(ctx context.Context, year int) (int, error) {
	f.nextSeq++
	return f.nextSeq, nil
}

func (f *fakeSolpedRepo) UpdateState(ctx context.Context, number string, state domain.SolpedState) (int64, error) {
	var affected int64
	for i := range f.lines {
		if f.lines[i].Number == number {
			f.lines[i].State = state
			affected++
		}
	}
	return affected, nil
}

func (f *fakeSolpedRepo) Summary(ctx context.Context) (domain.SolpedSummary, error) {
	seen := map[string]bool{}
	summary := domain.SolpedSummary{}
	for _, line := range f.lines {
		seen[line.Number] = true
		summary.TotalItems++
		summary.TotalValue += line.TotalValue
		if line.State == domain.SolpedPending {
			summary.Pending++
		}
	}
	summary.TotalRequests = len(seen)
	return summary, nil
}

func testSolpedService() (*SolpedService, *fakeSolpedRepo) {
	repo := &fakeSolpedRepo{}
	svc := NewSolpedService(repo)
	svc.now = func() time.Time {
		return time.Date(2026, 8, 30, 10, 30, 0, 0, time.UTC)
	}
	return svc, repo
}

func sampleCart() []domain.CartItem {
	return []domain.CartItem{
		{Code: "100", Description: "VALVULA DE BOLA", Center: "C001", Quantity: 45, Unit: "UND", UnitPrice: 10, Criticality: "A", Supplier: "ACME"},
		{Code: "200", Description: "TUBO PVC", Center: "C001", Quantity: 39, UnitPrice: 5, Criticality: "C", Supplier: "ACME"},
	}
}

func TestCartHelpers(t *testing.T) {
	cart := AddToCart(nil, domain.CartItem{Code: "100", Center: "C001", Quantity: 10, UnitPrice: 2})
	cart = AddToCart(cart, domain.CartItem{Code: "100", Center: "C001", Quantity: 5})
	cart = AddToCart(cart, domain.CartItem{Code: "100", Center: "C002", Quantity: 1, UnitPrice: 3})

	if len(cart) != 2 {
		t.Fatalf("same (code, center) must merge, got %d lines", len(cart))
	}
	if cart[0].Quantity != 15 {
		t.Errorf("merged quantity = %d, want 15", cart[0].Quantity)
	}
	if got := CartTotal(cart); got != 33 {
		t.Errorf("CartTotal = %v, want 33", got)
	}

	cart = RemoveFromCart(cart, "100", "C001")
	if len(cart) != 1 || cart[0].Center != "C002" {
		t.Errorf("RemoveFromCart should drop only the matching line: %+v", cart)
	}
}

func TestGenerate_NumbersAndPersistsLines(t *testing.T) {
	svc, repo := testSolpedService()

	number, lines, err := svc.Generate(context.Background(), sampleCart(), "jperez", "urgente")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if number != "SOLPED-2026-001" {
		t.Errorf("number = %s, want SOLPED-2026-001", number)
	}
	if len(lines) != 2 || len(repo.lines) != 2 {
		t.Fatalf("expected 2 persisted lines, got %d/%d", len(lines), len(repo.lines))
	}

	first := lines[0]
	if first.State != domain.SolpedPending {
		t.Errorf("new request must start PENDIENTE, got %s", first.State)
	}
	if first.Date != "2026-08-30 10:30" {
		t.Errorf("date = %s", first.Date)
	}
	if first.TotalValue != 450 {
		t.Errorf("line total = %v, want 450", first.TotalValue)
	}
	if first.RequestedBy != "jperez" || first.Notes != "urgente" {
		t.Errorf("requester metadata not carried: %+v", first)
	}
	if lines[1].Unit != domain.DefaultUnit {
		t.Errorf("blank unit should default to %s, got %s", domain.DefaultUnit, lines[1].Unit)
	}

	second, _, err := svc.Generate(context.Background(), sampleCart(), "jperez", "")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if second != "SOLPED-2026-002" {
		t.Errorf("sequence should advance within the year, got %s", second)
	}
}

func TestGenerate_Validation(t *testing.T) {
	svc, _ := testSolpedService()

	if _, _, err := svc.Generate(context.Background(), nil, "jperez", ""); !errors.Is(err, ErrEmptyCart) {
		t.Errorf("empty cart: got %v", err)
	}
	if _, _, err := svc.Generate(context.Background(), sampleCart(), "", ""); !errors.Is(err, ErrMissingRequester) {
		t.Errorf("missing requester: got %v", err)
	}

	bad := []domain.CartItem{{Code: "100", Quantity: 0}}
	if _, _, err := svc.Generate(context.Background(), bad, "jperez", ""); err == nil || !strings.Contains(err.Error(), "invalid cart line") {
		t.Errorf("zero quantity line: got %v", err)
	}
}

func TestTransition_StateMachine(t *testing.T) {
	svc, _ := testSolpedService()

	number, _, err := svc.Generate(context.Background(), sampleCart(), "jperez", "")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if err := svc.Transition(context.Background(), number, domain.SolpedReceived); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("PENDIENTE to RECIBIDA must be rejected, got %v", err)
	}
	if err := svc.Transition(context.Background(), number, domain.SolpedApproved); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if err := svc.Transition(context.Background(), number, domain.SolpedRejected); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("APROBADA to RECHAZADA must be rejected, got %v", err)
	}
	if err := svc.Transition(context.Background(), number, domain.SolpedReceived); err != nil {
		t.Fatalf("receive failed: %v", err)
	}
	if err := svc.Transition(context.Background(), number, domain.SolpedApproved); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("RECIBIDA is terminal, got %v", err)
	}

	if err := svc.Transition(context.Background(), "SOLPED-2026-999", domain.SolpedApproved); !errors.Is(err, ErrSolpedNotFound) {
		t.Errorf("unknown number: got %v", err)
	}

	history, err := svc.History(context.Background(), domain.SolpedFilter{Number: number})
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	for _, line := range history {
		if line.State != domain.SolpedReceived {
			t.Errorf("every line of the request must carry the new state: %+v", line)
		}
	}

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.TotalRequests != 1 || summary.Pending != 0 {
		t.Errorf("unexpected summary: %+v", summary)
	}
}
