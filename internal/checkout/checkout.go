// Package checkout turns a session cart into a stored order and sends the
// confirmation mail.
//
// Storing the order and sending the mail are best-effort: a failure in
// either is logged and reported in Result, but the checkout still
// completes and the cart is still cleared.
package checkout

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MikeMC777/pickles-ecom/internal/apperr"
	"github.com/MikeMC777/pickles-ecom/internal/cart"
	"github.com/MikeMC777/pickles-ecom/internal/notify"
	"github.com/MikeMC777/pickles-ecom/internal/order"
)

const ConfirmationSubject = "Your Order Confirmation"

var ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

type Buyer struct {
	Name    string
	Email   string
	Address string
}

func (b Buyer) validate() error {
	return apperr.First(
		apperr.Required("name", b.Name),
		apperr.Email("email", b.Email),
		apperr.Required("address", b.Address),
	)
}

type Status string

const (
	StatusConfirmed Status = "CONFIRMED"
	// StatusPending means the order was accepted but storing it or
	// mailing the confirmation failed.
	StatusPending Status = "CONFIRMATION_PENDING"
)

type Result struct {
	Order     *order.Order
	Persisted bool
	Notified  bool
	// Errs holds the *apperr.PersistenceError / *apperr.NotificationError
	// that were logged, if any.
	Errs []error
}

func (r *Result) Status() Status {
	if r.Persisted && r.Notified {
		return StatusConfirmed
	}
	return StatusPending
}

type Service struct {
	orders   order.Repository
	notifier notify.Notifier
	logger   *zap.Logger

	now   func() time.Time
	newID func() string
}

func NewService(orders order.Repository, notifier notify.Notifier, logger *zap.Logger) *Service {
	return &Service{
		orders:   orders,
		notifier: notifier,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

// Checkout places an order for the contents of c and clears c.
//
// It returns ErrEmptyCart or a *apperr.ValidationError without side
// effects. Otherwise it always returns a Result and a nil error.
func (s *Service) Checkout(ctx context.Context, c *cart.Cart, b Buyer) (*Result, error) {
	if c == nil || c.Empty() {
		return nil, ErrEmptyCart
	}
	b = Buyer{
		Name:    strings.TrimSpace(b.Name),
		Email:   strings.TrimSpace(b.Email),
		Address: strings.TrimSpace(b.Address),
	}
	if err := b.validate(); err != nil {
		return nil, err
	}

	items := c.Snapshot()
	o := &order.Order{
		ID:        s.newID(),
		Name:      b.Name,
		Email:     b.Email,
		Address:   b.Address,
		CreatedAt: s.now(),
		Items:     items,
		Total:     cart.Sum(items),
	}
	res := &Result{Order: o}

	// the order must outlive a client that hangs up mid-request
	bg := context.WithoutCancel(ctx)

	if err := s.orders.Save(bg, o); err != nil {
		perr := &apperr.PersistenceError{Op: "order", Err: err}
		res.Errs = append(res.Errs, perr)
		s.logger.Error("failed to save order", zap.String("order_id", o.ID), zap.Error(perr))
	} else {
		res.Persisted = true
		s.logger.Info("order saved", zap.String("order_id", o.ID))
	}

	nctx, cancel := context.WithTimeout(bg, 15*time.Second)
	defer cancel()
	if err := s.notifier.Send(nctx, o.Email, ConfirmationSubject, o.Summary()); err != nil {
		nerr := &apperr.NotificationError{To: o.Email, Err: err}
		res.Errs = append(res.Errs, nerr)
		s.logger.Error("failed to send order email", zap.String("order_id", o.ID), zap.Error(nerr))
	} else {
		res.Notified = true
		s.logger.Info("order email sent", zap.String("order_id", o.ID), zap.String("to", o.Email))
	}

	c.Clear()

	s.logger.Info("checkout completed",
		zap.String("order_id", o.ID),
		zap.String("total", o.Total.StringFixed(2)),
		zap.Int("lines", len(o.Items)),
		zap.String("status", string(res.Status())))
	return res, nil
}
