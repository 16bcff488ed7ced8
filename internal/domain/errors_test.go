package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/jhoicas/chronos-ledger/internal/domain"
)

func TestTypedErrors_IsSentinel(t *testing.T) {
	cases := []struct {
		err      error
		sentinel error
		code     string
	}{
		{&domain.InvalidAmountError{Field: "amount", Amount: decimal.NewFromInt(-1)}, domain.ErrInvalidAmount, "INVALID_AMOUNT"},
		{&domain.InsufficientFundsError{AccountID: "caja", Available: decimal.NewFromInt(10), Requested: decimal.NewFromInt(20)}, domain.ErrInsufficientFunds, "INSUFFICIENT_FUNDS"},
		{&domain.SameAccountError{AccountID: "caja"}, domain.ErrSameAccount, "SAME_ACCOUNT"},
		{&domain.StockInsufficientError{PurchaseOrderID: "oc", Available: 1, Requested: 2}, domain.ErrInsufficientStock, "INSUFFICIENT_STOCK"},
		{domain.NewNotFound("cuenta", "x"), domain.ErrNotFound, "NOT_FOUND"},
		{&domain.ValidationError{Errors: []string{"a"}}, domain.ErrInvalidInput, "VALIDATION_ERROR"},
	}
	for _, c := range cases {
		wrapped := fmt.Errorf("capa: %w", c.err)
		assert.True(t, errors.Is(wrapped, c.sentinel), c.err.Error())
		assert.Equal(t, c.code, domain.Code(wrapped))
	}
	assert.Equal(t, "INTERNAL_ERROR", domain.Code(errors.New("db caída")))
	assert.Equal(t, "", domain.Code(nil))
}

func TestInsufficientFundsError_MensajeIncluyeDisponible(t *testing.T) {
	err := &domain.InsufficientFundsError{AccountID: "caja", Available: decimal.NewFromInt(300), Requested: decimal.NewFromInt(500)}
	assert.Contains(t, err.Error(), "Disponible: $300.00")
}
