package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/MikeMC777/pickles-ecom/internal/apperr"
	"github.com/MikeMC777/pickles-ecom/internal/cart"
	"github.com/MikeMC777/pickles-ecom/internal/order"
)

type stubRepo struct {
	mu    sync.Mutex
	saved []*order.Order
	err   error
}

func (s *stubRepo) Save(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	cp := *o
	s.saved = append(s.saved, &cp)
	return nil
}

type sentMail struct{ to, subject, body string }

type stubNotifier struct {
	sent []sentMail
	err  error
}

func (n *stubNotifier) Send(_ context.Context, to, subject, body string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentMail{to, subject, body})
	return nil
}

func newTestService(repo order.Repository, n *stubNotifier) (*Service, *observer.ObservedLogs) {
	core, logs := observer.New(zap.InfoLevel)
	s := NewService(repo, n, zap.New(core))
	s.now = func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) }
	s.newID = func() string { return "0b8e4a5e-2f7c-4d0a-9d55-8f3f0e2f4c10" }
	return s, logs
}

func pickleCart(t *testing.T) *cart.Cart {
	t.Helper()
	c := &cart.Cart{}
	require.NoError(t, c.Add("Mango Pickle", decimal.NewFromInt(150), 2))
	require.NoError(t, c.Add("Lemon Pickle", decimal.NewFromInt(100), 1))
	return c
}

var buyer = Buyer{Name: "Asha", Email: "asha@example.com", Address: "12 MG Road, Vijayawada"}

func TestCheckout_HappyPath(t *testing.T) {
	repo := &stubRepo{}
	n := &stubNotifier{}
	svc, _ := newTestService(repo, n)
	c := pickleCart(t)

	res, err := svc.Checkout(context.Background(), c, buyer)
	require.NoError(t, err)

	assert.Equal(t, StatusConfirmed, res.Status())
	assert.Empty(t, res.Errs)
	assert.True(t, c.Empty())

	require.Len(t, repo.saved, 1)
	o := repo.saved[0]
	assert.Equal(t, "0b8e4a5e-2f7c-4d0a-9d55-8f3f0e2f4c10", o.ID)
	assert.True(t, o.Total.Equal(decimal.NewFromInt(400)), "total=%s", o.Total)
	assert.NoError(t, o.Verify())
	assert.Len(t, o.Items, 2, "order keeps its snapshot after the cart is cleared")
	assert.Equal(t, "Asha", o.Name)

	require.Len(t, n.sent, 1)
	assert.Equal(t, "asha@example.com", n.sent[0].to)
	assert.Equal(t, ConfirmationSubject, n.sent[0].subject)
	assert.Contains(t, n.sent[0].body, "Order ID: 0b8e4a5e-2f7c-4d0a-9d55-8f3f0e2f4c10")
	assert.Contains(t, n.sent[0].body, "Total: ₹400.00")
}

func TestCheckout_EmptyCart(t *testing.T) {
	repo := &stubRepo{}
	n := &stubNotifier{}
	svc, _ := newTestService(repo, n)

	_, err := svc.Checkout(context.Background(), &cart.Cart{}, buyer)
	assert.ErrorIs(t, err, ErrEmptyCart)
	_, err = svc.Checkout(context.Background(), nil, buyer)
	assert.ErrorIs(t, err, ErrEmptyCart)

	assert.Empty(t, repo.saved)
	assert.Empty(t, n.sent)
}

func TestCheckout_InvalidBuyer(t *testing.T) {
	cases := map[string]Buyer{
		"no name":    {Email: "a@example.com", Address: "x"},
		"bad email":  {Name: "Asha", Email: "asha", Address: "x"},
		"no address": {Name: "Asha", Email: "a@example.com", Address: "   "},
	}
	for name, b := range cases {
		t.Run(name, func(t *testing.T) {
			repo := &stubRepo{}
			n := &stubNotifier{}
			svc, _ := newTestService(repo, n)
			c := pickleCart(t)

			_, err := svc.Checkout(context.Background(), c, b)
			assert.True(t, apperr.IsValidation(err), "err=%v", err)
			assert.Empty(t, repo.saved)
			assert.Empty(t, n.sent)
			assert.Len(t, c.Lines, 2, "cart is kept for the user to retry")
		})
	}
}

func TestCheckout_StoreAndMailDown(t *testing.T) {
	repo := &stubRepo{err: errors.New("dynamodb: ResourceNotFoundException")}
	n := &stubNotifier{err: errors.New("smtp: 421 service not available")}
	svc, logs := newTestService(repo, n)
	c := pickleCart(t)

	res, err := svc.Checkout(context.Background(), c, buyer)
	require.NoError(t, err)
	assert.True(t, c.Empty())
	assert.Equal(t, StatusPending, res.Status())
	assert.False(t, res.Persisted)
	assert.False(t, res.Notified)
	assert.True(t, res.Order.Total.Equal(decimal.NewFromInt(400)))

	require.Len(t, res.Errs, 2)
	var perr *apperr.PersistenceError
	assert.ErrorAs(t, res.Errs[0], &perr)
	var nerr *apperr.NotificationError
	assert.ErrorAs(t, res.Errs[1], &nerr)

	assert.Equal(t, 1, logs.FilterMessage("failed to save order").Len())
	assert.Equal(t, 1, logs.FilterMessage("failed to send order email").Len())
}

func TestCheckout_MailStillSentWhenStoreFails(t *testing.T) {
	repo := &stubRepo{err: errors.New("timeout")}
	n := &stubNotifier{}
	svc, _ := newTestService(repo, n)

	res, err := svc.Checkout(context.Background(), pickleCart(t), buyer)
	require.NoError(t, err)
	assert.False(t, res.Persisted)
	assert.True(t, res.Notified)
	assert.Len(t, n.sent, 1)
}

func TestCheckout_CanceledRequestStillStores(t *testing.T) {
	repo := order.NewMemoryRepo()
	n := &stubNotifier{}
	svc, _ := newTestService(repo, n)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := svc.Checkout(ctx, pickleCart(t), buyer)
	require.NoError(t, err)
	assert.True(t, res.Persisted)
	assert.Equal(t, 1, repo.Len())
}

func TestNewService_GeneratesUniqueIDs(t *testing.T) {
	svc := NewService(order.NewMemoryRepo(), &stubNotifier{}, zap.NewNop())
	a, err := svc.Checkout(context.Background(), pickleCart(t), buyer)
	require.NoError(t, err)
	b, err := svc.Checkout(context.Background(), pickleCart(t), buyer)
	require.NoError(t, err)
	assert.NotEqual(t, a.Order.ID, b.Order.ID)
	assert.Len(t, a.Order.ID, 36)
}
