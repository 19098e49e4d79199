package checkout

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/GESTIONMAX/my-vision-connect-sub001/internal/cart"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/enums"
	pkgerrors "github.com/GESTIONMAX/my-vision-connect-sub001/pkg/errors"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/logger"
)

// HomePath is where shoppers land after the confirmation delay.
const HomePath = "/"

// Service drives the checkout step machine for every active shopper.
type Service interface {
	Start(ctx context.Context, shopper cart.Shopper) (*Session, error)
	Get(ctx context.Context, shopperID string) (*Session, error)
	Advance(ctx context.Context, shopper cart.Shopper) (*Session, error)
	Back(ctx context.Context, shopperID string) (*Session, error)
	SelectPaymentMethod(ctx context.Context, shopperID string, method enums.PaymentMethod) (*Session, error)
	PaymentOptions(ctx context.Context, shopperID string) ([]enums.PaymentMethod, error)
	OnAuthenticated(ctx context.Context, shopperID string, accountType enums.AccountType)
	Abandon(ctx context.Context, shopper cart.Shopper) error
	Shutdown()
}

// Navigator pushes a client-side route change to the shopper.
type Navigator interface {
	Navigate(ctx context.Context, shopperID, path string)
}

type cartAccess interface {
	GetCart(ctx context.Context, shopper cart.Shopper) (*cart.View, error)
	Clear(ctx context.Context, shopper cart.Shopper) (*cart.View, error)
	Convert(ctx context.Context, shopperID string) error
}

type methodCatalog interface {
	MethodsFor(accountType enums.AccountType) []enums.PaymentMethod
	Allowed(accountType enums.AccountType, method enums.PaymentMethod) bool
}

// ServiceParams groups dependencies for the checkout service.
type ServiceParams struct {
	Carts        cartAccess
	Methods      methodCatalog
	Navigator    Navigator
	Logger       *logger.Logger
	ConfirmDelay time.Duration
}

type entry struct {
	session *Session
	timer   *time.Timer
}

type service struct {
	carts     cartAccess
	methods   methodCatalog
	navigator Navigator
	logg      *logger.Logger
	delay     time.Duration

	mu       sync.Mutex
	sessions map[string]*entry
}

// NewService constructs the checkout service.
func NewService(params ServiceParams) (*service, error) {
	if params.Carts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart access required")
	}
	if params.Methods == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "method catalog required")
	}
	if params.Navigator == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "navigator required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger required")
	}
	if params.ConfirmDelay <= 0 {
		params.ConfirmDelay = 5 * time.Second
	}

	return &service{
		carts:     params.Carts,
		methods:   params.Methods,
		navigator: params.Navigator,
		logg:      params.Logger,
		delay:     params.ConfirmDelay,
		sessions:  make(map[string]*entry),
	}, nil
}

// Start opens a checkout session at the cart step. Starting again while a
// session exists returns the existing session unchanged.
func (s *service) Start(ctx context.Context, shopper cart.Shopper) (*Session, error) {
	if strings.TrimSpace(shopper.ID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shopper id is required")
	}

	s.mu.Lock()
	if existing, ok := s.sessions[shopper.ID]; ok {
		snapshot := *existing.session
		s.mu.Unlock()
		return &snapshot, nil
	}
	s.mu.Unlock()

	view, err := s.carts.GetCart(ctx, shopper)
	if err != nil {
		return nil, err
	}
	if len(view.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}

	session := &Session{
		ShopperID:       shopper.ID,
		AccountType:     shopper.EffectiveAccountType(),
		Step:            enums.CheckoutStepCart,
		AccountComplete: shopper.UserID != nil,
		StartedAt:       time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.sessions[shopper.ID]; ok {
		snapshot := *existing.session
		return &snapshot, nil
	}
	s.sessions[shopper.ID] = &entry{session: session}

	snapshot := *session
	return &snapshot, nil
}

// Get returns the current session snapshot for the shopper.
func (s *service) Get(ctx context.Context, shopperID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[shopperID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no checkout in progress")
	}
	snapshot := *e.session
	return &snapshot, nil
}

// Advance moves the session one step forward. Reaching the confirmation
// step arms the deferred cart conversion and home redirect.
func (s *service) Advance(ctx context.Context, shopper cart.Shopper) (*Session, error) {
	s.mu.Lock()
	e, ok := s.sessions[shopper.ID]
	if !ok {
		s.mu.Unlock()
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no checkout in progress")
	}

	if e.session.Step == enums.CheckoutStepCart {
		// leaving the cart step needs a fresh look at the cart
		s.mu.Unlock()
		view, err := s.carts.GetCart(ctx, shopper)
		if err != nil {
			return nil, err
		}
		if len(view.Items) == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
		}
		s.mu.Lock()
		e, ok = s.sessions[shopper.ID]
		if !ok {
			s.mu.Unlock()
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no checkout in progress")
		}
	}
	defer s.mu.Unlock()

	// the bearer token on this request counts as the authenticated
	// identity, even when the login never reached the observer
	if shopper.UserID != nil {
		e.session.AccountComplete = true
		e.session.AccountType = shopper.EffectiveAccountType()
	}

	if err := e.session.Advance(); err != nil {
		return nil, err
	}

	if e.session.Step == enums.CheckoutStepConfirmation {
		s.armConfirmationLocked(e)
	}

	snapshot := *e.session
	return &snapshot, nil
}

// Back moves the session one step backward.
func (s *service) Back(ctx context.Context, shopperID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[shopperID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no checkout in progress")
	}
	if err := e.session.Back(); err != nil {
		return nil, err
	}

	snapshot := *e.session
	return &snapshot, nil
}

// SelectPaymentMethod validates the method against the session's account
// class and records it.
func (s *service) SelectPaymentMethod(ctx context.Context, shopperID string, method enums.PaymentMethod) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[shopperID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no checkout in progress")
	}
	if !s.methods.Allowed(e.session.AccountType, method) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment method not available for this account")
	}
	if err := e.session.SelectPaymentMethod(method); err != nil {
		return nil, err
	}

	snapshot := *e.session
	return &snapshot, nil
}

// PaymentOptions lists the methods offered to the session's account class.
func (s *service) PaymentOptions(ctx context.Context, shopperID string) ([]enums.PaymentMethod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[shopperID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no checkout in progress")
	}
	return s.methods.MethodsFor(e.session.AccountType), nil
}

// OnAuthenticated is the identity observer hook. A successful login or
// registration completes the account step; when the shopper is waiting on
// that step the session advances on its own.
func (s *service) OnAuthenticated(ctx context.Context, shopperID string, accountType enums.AccountType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[shopperID]
	if !ok {
		return
	}

	e.session.AccountComplete = true
	if accountType.IsValid() {
		e.session.AccountType = accountType
	}

	if e.session.Step == enums.CheckoutStepAccount {
		if err := e.session.Advance(); err != nil {
			s.logg.Error(ctx, "auto-advance after authentication failed", err)
			return
		}
		if e.session.Step == enums.CheckoutStepConfirmation {
			s.armConfirmationLocked(e)
		}
	}
}

// Abandon tears the session down, clears the cart, and sends the shopper
// home. Any pending confirmation timer is cancelled first so the abandoned
// session cannot convert.
func (s *service) Abandon(ctx context.Context, shopper cart.Shopper) error {
	s.mu.Lock()
	e, ok := s.sessions[shopper.ID]
	if !ok {
		s.mu.Unlock()
		return pkgerrors.New(pkgerrors.CodeNotFound, "no checkout in progress")
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	delete(s.sessions, shopper.ID)
	s.mu.Unlock()

	if _, err := s.carts.Clear(ctx, shopper); err != nil {
		return err
	}
	s.navigator.Navigate(ctx, shopper.ID, HomePath)
	return nil
}

// Shutdown cancels every pending timer. Used on process exit.
func (s *service) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range s.sessions {
		if e.timer != nil {
			e.timer.Stop()
		}
		delete(s.sessions, id)
	}
}

// armConfirmationLocked schedules the one-shot conversion. Callers hold s.mu.
func (s *service) armConfirmationLocked(e *entry) {
	if e.timer != nil {
		return
	}
	shopperID := e.session.ShopperID
	e.timer = time.AfterFunc(s.delay, func() {
		s.finishConfirmation(shopperID)
	})
}

func (s *service) finishConfirmation(shopperID string) {
	ctx := context.Background()

	s.mu.Lock()
	_, ok := s.sessions[shopperID]
	if !ok {
		s.mu.Unlock()
		return
	}
	delete(s.sessions, shopperID)
	s.mu.Unlock()

	if err := s.carts.Convert(ctx, shopperID); err != nil {
		s.logg.Error(ctx, "converting cart after confirmation", err)
	}
	s.navigator.Navigate(ctx, shopperID, HomePath)
}
