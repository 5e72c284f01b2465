// Package checkout turns a one-item cart into an order and drives the
// checkout form through its states.
package checkout

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"storefront/cart"
	"storefront/models"
	"storefront/pricing"
)

// RedirectAfterOrder is where the customer goes once an order is placed.
const RedirectAfterOrder = "/profile"

// Session exposes the signed-in customer, if any.
type Session interface {
	CurrentUser() (models.User, bool)
}

// OrderSubmitter sends an order to the order service.
type OrderSubmitter interface {
	CreateOrder(ctx context.Context, order models.Order) (models.OrderRecord, error)
}

// Notifier shows messages to the customer.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Info(msg string)
}

// Mailer sends the order confirmation email.
type Mailer interface {
	SendOrderConfirmationEmail(to string, user models.User, record models.OrderRecord) error
}

type Deps struct {
	Cart     *cart.Store
	Session  Session
	Orders   OrderSubmitter
	Notifier Notifier
	Mailer   Mailer
	Logger   *zap.Logger

	// OnTransition, when set, observes every state change.
	OnTransition func(from, to State)
}

// Result describes a placed order.
type Result struct {
	Order    models.Order       `json:"order"`
	Record   models.OrderRecord `json:"record"`
	Message  string             `json:"message"`
	Redirect string             `json:"redirect"`
}

// Workflow is the checkout of one cart session.
type Workflow struct {
	deps   Deps
	logger *zap.Logger

	mu      sync.Mutex
	state   State
	lastErr error
	mailWG  sync.WaitGroup
}

func NewWorkflow(deps Deps) *Workflow {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workflow{deps: deps, logger: logger}
}

func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// LastError is the reason the last attempt returned to idle, or nil.
func (w *Workflow) LastError() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

// Quote prices the cart as it stands.
func (w *Workflow) Quote() pricing.Breakdown {
	return w.deps.Cart.Totals()
}

// Reset starts a new cart session after a completed order.
func (w *Workflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateSucceeded {
		w.transition(StateIdle)
	}
	w.lastErr = nil
}

// Submit validates the form and cart, places the order and removes the
// ordered entry from the cart on success. Rejections happen before any call
// to the order service and leave the cart as it was. Cart changes made while
// the order is in flight are kept.
func (w *Workflow) Submit(ctx context.Context, form Form) (Result, error) {
	w.mu.Lock()
	switch w.state {
	case StateSubmitting:
		w.mu.Unlock()
		return Result{}, ErrSubmitInProgress
	case StateSucceeded:
		w.mu.Unlock()
		return Result{}, ErrAlreadyCompleted
	}
	w.transition(StateValidating)

	user, item, order, err := w.prepare(form)
	if err != nil {
		w.reject(err)
		w.mu.Unlock()
		w.notifyError(err)
		return Result{}, err
	}

	w.transition(StateSubmitting)
	w.mu.Unlock()

	w.logger.Info("submitting order",
		zap.String("customer_id", order.CustomerID),
		zap.String("product_id", order.ProductID),
		zap.Int("quantity", order.Quantity),
		zap.String("total", order.Total.StringFixed(2)),
		zap.String("payment_method", string(order.PaymentMethod)))

	record, err := w.deps.Orders.CreateOrder(ctx, order)
	if err != nil {
		failure := submissionFailed(err)
		w.mu.Lock()
		w.transition(StateFailed)
		w.transition(StateIdle)
		w.lastErr = failure
		w.mu.Unlock()

		w.logger.Error("order submission failed", zap.String("product_id", order.ProductID), zap.Error(err))
		w.notifyError(failure)
		return Result{}, failure
	}

	if !w.deps.Cart.RemoveEntry(item) {
		w.logger.Info("cart changed while order was in flight", zap.String("product_id", item.ProductID))
	}
	msg := ConfirmationMessage(order.PaymentMethod)

	w.mu.Lock()
	w.transition(StateSucceeded)
	w.lastErr = nil
	w.mu.Unlock()

	w.logger.Info("order placed", zap.String("order_id", record.OrderID), zap.String("payment_status", string(record.PaymentStatus)))
	if w.deps.Notifier != nil {
		w.deps.Notifier.Success(msg)
	}
	w.sendConfirmation(user, record)

	return Result{Order: order, Record: record, Message: msg, Redirect: RedirectAfterOrder}, nil
}

// Wait blocks until pending confirmation emails have been handed off.
func (w *Workflow) Wait() {
	w.mailWG.Wait()
}

func (w *Workflow) prepare(form Form) (models.User, models.LineItem, models.Order, error) {
	user, ok := w.currentUser()
	if !ok {
		return models.User{}, models.LineItem{}, models.Order{}, ErrNotAuthenticated
	}

	items := w.deps.Cart.Items()
	if len(items) != 1 {
		return models.User{}, models.LineItem{}, models.Order{}, ErrSingleItem
	}

	method, err := form.Validate()
	if err != nil {
		return models.User{}, models.LineItem{}, models.Order{}, err
	}

	return user, items[0], BuildOrder(items[0], user.ID, method), nil
}

func (w *Workflow) currentUser() (models.User, bool) {
	if w.deps.Session == nil {
		return models.User{}, false
	}
	user, ok := w.deps.Session.CurrentUser()
	if !ok || user.ID == "" {
		return models.User{}, false
	}
	return user, true
}

// BuildOrder creates the order payload for a single cart entry.
func BuildOrder(item models.LineItem, customerID string, method models.PaymentMethod) models.Order {
	return models.Order{
		ProductID:     item.ProductID,
		CustomerID:    customerID,
		Quantity:      item.Quantity,
		Total:         item.LineTotal(),
		PaymentMethod: method,
	}
}

func (w *Workflow) sendConfirmation(user models.User, record models.OrderRecord) {
	if w.deps.Mailer == nil || user.Email == "" {
		return
	}
	w.mailWG.Add(1)
	go func() {
		defer w.mailWG.Done()
		if err := w.deps.Mailer.SendOrderConfirmationEmail(user.Email, user, record); err != nil {
			w.logger.Warn("failed to send confirmation email", zap.String("email", user.Email), zap.Error(err))
		}
	}()
}

// reject must be called with w.mu held.
func (w *Workflow) reject(err error) {
	w.transition(StateRejected)
	w.transition(StateIdle)
	w.lastErr = err
	w.logger.Info("checkout rejected", zap.Error(err))
}

func (w *Workflow) notifyError(err error) {
	if w.deps.Notifier != nil {
		w.deps.Notifier.Error(UserMessage(err))
	}
}

// transition must be called with w.mu held.
func (w *Workflow) transition(to State) {
	from := w.state
	w.state = to
	if w.deps.OnTransition != nil {
		w.deps.OnTransition(from, to)
	}
}
