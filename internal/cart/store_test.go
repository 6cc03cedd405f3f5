package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourorg/canteen-companion/internal/model"
)

// memStorage is an in-memory Storage with configurable failures.
type memStorage struct {
	lines   []model.CartLine
	saves   int
	loadErr error
	saveErr error
}

func (m *memStorage) Load() ([]model.CartLine, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.lines, nil
}

func (m *memStorage) Save(lines []model.CartLine) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.lines = lines
	m.saves++
	return nil
}

// fakePlacer is an OrderPlacer with scripted behavior.
type fakePlacer struct {
	result *model.PlaceOrderResult
	err    error
	got    []model.CartLine
}

func (f *fakePlacer) PlaceOrder(_ context.Context, lines []model.CartLine, _ string) (*model.PlaceOrderResult, error) {
	f.got = lines
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func newTestStore(t *testing.T, storage Storage) *Store {
	t.Helper()
	return NewStore(storage, decimal.NewFromFloat(0.05), zap.NewNop())
}

func price(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func TestAddMergesLinesByItemID(t *testing.T) {
	s := newTestStore(t, &memStorage{})

	require.NoError(t, s.Add("rice", "Rice", price(1500), 2))
	require.NoError(t, s.Add("rice", "Rice", price(1500), 3))

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "rice", lines[0].ItemID)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestAddRejectsInvalidInput(t *testing.T) {
	s := newTestStore(t, &memStorage{})

	assert.ErrorIs(t, s.Add("rice", "Rice", price(0), 1), ErrInvalidLine)
	assert.ErrorIs(t, s.Add("rice", "Rice", price(-100), 1), ErrInvalidLine)
	assert.ErrorIs(t, s.Add("rice", "Rice", price(1500), 0), ErrInvalidLine)
	assert.ErrorIs(t, s.Add("rice", "Rice", price(1500), -2), ErrInvalidLine)
	assert.Equal(t, 0, s.Len())
}

func TestRemoveAbsentItemIsNoop(t *testing.T) {
	s := newTestStore(t, &memStorage{})
	require.NoError(t, s.Add("rice", "Rice", price(1500), 2))

	s.Remove("beans")

	require.Len(t, s.Lines(), 1)
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	s := newTestStore(t, &memStorage{})
	require.NoError(t, s.Add("rice", "Rice", price(1500), 2))

	s.SetQuantity("rice", 0)

	assert.Equal(t, 0, s.Len())
}

func TestTotalsDeriveFromLines(t *testing.T) {
	s := newTestStore(t, &memStorage{})
	require.NoError(t, s.Add("rice", "Rice", price(1500), 2))
	require.NoError(t, s.Add("juice", "Juice", price(500), 1))

	totals := s.Totals()

	assert.True(t, totals.Subtotal.Equal(price(3500)), "subtotal = %s", totals.Subtotal)
	assert.True(t, totals.ServiceFee.Equal(price(175)), "fee = %s", totals.ServiceFee)
	assert.True(t, totals.Total.Equal(price(3675)), "total = %s", totals.Total)
}

func TestTotalsEmptyCart(t *testing.T) {
	s := newTestStore(t, &memStorage{})

	totals := s.Totals()

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestRehydratedTotals(t *testing.T) {
	storage := &memStorage{lines: []model.CartLine{
		{ItemID: "a", Name: "Rice", UnitPrice: price(1500), Quantity: 2},
	}}
	s := newTestStore(t, storage)

	totals := s.Totals()

	assert.True(t, totals.Subtotal.Equal(price(3000)))
	assert.True(t, totals.ServiceFee.Equal(price(150)))
	assert.True(t, totals.Total.Equal(price(3150)))
}

func TestRehydrateFailureStartsEmpty(t *testing.T) {
	s := newTestStore(t, &memStorage{loadErr: errors.New("corrupt snapshot")})
	assert.Equal(t, 0, s.Len())
}

func TestMutationsPersistSnapshot(t *testing.T) {
	storage := &memStorage{}
	s := newTestStore(t, storage)

	require.NoError(t, s.Add("rice", "Rice", price(1500), 2))
	require.Len(t, storage.lines, 1)

	s.Remove("rice")
	assert.Empty(t, storage.lines)
}

func TestPlaceOrderSuccessClearsCartAndStorage(t *testing.T) {
	storage := &memStorage{}
	s := newTestStore(t, storage)
	require.NoError(t, s.Add("rice", "Rice", price(1500), 2))

	placer := &fakePlacer{result: &model.PlaceOrderResult{Success: true, OrderID: "ord-42"}}
	orderID, err := s.PlaceOrder(context.Background(), placer, "no onions")

	require.NoError(t, err)
	assert.Equal(t, "ord-42", orderID)
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, storage.lines)
	require.Len(t, placer.got, 1)
	assert.Equal(t, "rice", placer.got[0].ItemID)
}

func TestPlaceOrderFailureLeavesCartUntouched(t *testing.T) {
	storage := &memStorage{}
	s := newTestStore(t, storage)
	require.NoError(t, s.Add("rice", "Rice", price(1500), 2))
	savesBefore := storage.saves

	placer := &fakePlacer{err: errors.New("connection refused")}
	_, err := s.PlaceOrder(context.Background(), placer, "")

	require.Error(t, err)
	require.Len(t, s.Lines(), 1)
	assert.Equal(t, 2, s.Lines()[0].Quantity)
	assert.Equal(t, savesBefore, storage.saves, "failed order must not rewrite storage")
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	s := newTestStore(t, &memStorage{})

	_, err := s.PlaceOrder(context.Background(), &fakePlacer{}, "")

	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestOnChangeFiresOnMutation(t *testing.T) {
	s := newTestStore(t, &memStorage{})
	fired := 0
	s.OnChange(func() { fired++ })

	require.NoError(t, s.Add("rice", "Rice", price(1500), 1))
	s.Remove("rice")

	assert.Equal(t, 2, fired)
}

func TestPersistFailureDoesNotLoseCart(t *testing.T) {
	s := newTestStore(t, &memStorage{saveErr: errors.New("disk full")})

	require.NoError(t, s.Add("rice", "Rice", price(1500), 1))

	require.Len(t, s.Lines(), 1)
}
