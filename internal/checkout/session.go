package checkout

import (
	"time"

	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/enums"
	pkgerrors "github.com/GESTIONMAX/my-vision-connect-sub001/pkg/errors"
)

// Session is the in-flight checkout state for one shopper. It lives in
// memory only; the durable cart stays in Postgres.
type Session struct {
	ShopperID       string               `json:"shopper_id"`
	AccountType     enums.AccountType    `json:"account_type"`
	Step            enums.CheckoutStep   `json:"step"`
	PaymentMethod   *enums.PaymentMethod `json:"payment_method,omitempty"`
	AccountComplete bool                 `json:"account_complete"`
	StartedAt       time.Time            `json:"started_at"`
	ConfirmedAt     *time.Time           `json:"confirmed_at,omitempty"`
}

// The full step order lives here and nowhere else.
var stepOrder = []enums.CheckoutStep{
	enums.CheckoutStepCart,
	enums.CheckoutStepPayment,
	enums.CheckoutStepAccount,
	enums.CheckoutStepConfirmation,
}

func nextStep(step enums.CheckoutStep) (enums.CheckoutStep, bool) {
	for i, s := range stepOrder {
		if s == step && i+1 < len(stepOrder) {
			return stepOrder[i+1], true
		}
	}
	return "", false
}

func prevStep(step enums.CheckoutStep) (enums.CheckoutStep, bool) {
	for i, s := range stepOrder {
		if s == step && i > 0 {
			return stepOrder[i-1], true
		}
	}
	return "", false
}

// Advance moves the session one step forward after checking the guard for
// the step being left.
func (s *Session) Advance() error {
	if s.Step.IsTerminal() {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "checkout is already confirmed")
	}

	if err := s.guardLeaving(s.Step); err != nil {
		return err
	}

	next, ok := nextStep(s.Step)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "no further step")
	}
	// an already signed-in shopper never sees the account step
	if next == enums.CheckoutStepAccount && s.AccountComplete {
		next = enums.CheckoutStepConfirmation
	}

	s.Step = next
	if next == enums.CheckoutStepConfirmation {
		now := time.Now()
		s.ConfirmedAt = &now
	}
	return nil
}

// Back moves the session one step backward. Back from the cart step is a
// no-op; the confirmation step is terminal and cannot be left.
func (s *Session) Back() error {
	if s.Step.IsTerminal() {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "checkout is already confirmed")
	}

	prev, ok := prevStep(s.Step)
	if !ok {
		return nil
	}

	s.Step = prev
	return nil
}

// SelectPaymentMethod records the chosen method. Only valid while the
// session sits on the payment step.
func (s *Session) SelectPaymentMethod(method enums.PaymentMethod) error {
	if s.Step != enums.CheckoutStepPayment {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "not on the payment step")
	}
	if !method.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method")
	}
	s.PaymentMethod = &method
	return nil
}

func (s *Session) guardLeaving(step enums.CheckoutStep) error {
	switch step {
	case enums.CheckoutStepPayment:
		if s.PaymentMethod == nil {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "select a payment method first")
		}
	case enums.CheckoutStepAccount:
		if !s.AccountComplete {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "sign in or create an account first")
		}
	}
	return nil
}
