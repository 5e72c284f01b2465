package controllers

import (
	"sync"

	"go.uber.org/zap"

	"storefront/cart"
	"storefront/checkout"
	"storefront/models"
	"storefront/utils"
)

// Sessions keeps the cart and checkout workflow of every signed-in customer.
type Sessions struct {
	Carts    *cart.Registry
	Orders   checkout.OrderSubmitter
	Mailer   checkout.Mailer
	Notifier checkout.Notifier
	Logger   *zap.Logger

	mu        sync.Mutex
	workflows map[string]*checkout.Workflow
	users     map[string]*userSession
}

func NewSessions(orders checkout.OrderSubmitter, mailer checkout.Mailer, logger *zap.Logger) *Sessions {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sessions{
		Carts:     cart.NewRegistry(),
		Orders:    orders,
		Mailer:    mailer,
		Notifier:  utils.LogNotifier{Logger: logger},
		Logger:    logger,
		workflows: make(map[string]*checkout.Workflow),
		users:     make(map[string]*userSession),
	}
}

func (s *Sessions) Cart(userID string) *cart.Store {
	return s.Carts.For(userID)
}

// Checkout returns the workflow bound to the customer's cart. The workflow
// sees user as the current customer from now on.
func (s *Sessions) Checkout(user models.User) *checkout.Workflow {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.users[user.ID]
	if !ok {
		sess = &userSession{}
		s.users[user.ID] = sess
	}
	sess.set(user)

	wf, ok := s.workflows[user.ID]
	if !ok {
		wf = checkout.NewWorkflow(checkout.Deps{
			Cart:     s.Carts.For(user.ID),
			Session:  sess,
			Orders:   s.Orders,
			Notifier: s.Notifier,
			Mailer:   s.Mailer,
			Logger:   s.Logger.With(zap.String("customer_id", user.ID)),
		})
		s.workflows[user.ID] = wf
	}
	return wf
}

// StartNewCart reopens checkout once a customer shops again after an order.
func (s *Sessions) StartNewCart(userID string) {
	s.mu.Lock()
	wf, ok := s.workflows[userID]
	s.mu.Unlock()
	if ok && wf.State() == checkout.StateSucceeded {
		wf.Reset()
	}
}

// userSession holds the claims of the customer's latest request.
type userSession struct {
	mu   sync.Mutex
	user models.User
}

func (u *userSession) set(user models.User) {
	u.mu.Lock()
	u.user = user
	u.mu.Unlock()
}

func (u *userSession) CurrentUser() (models.User, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.user, u.user.ID != ""
}
