package paymentmethods

import (
	"testing"

	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/enums"
)

func TestMethodsForIndividual(t *testing.T) {
	t.Parallel()

	catalog := NewCatalog()
	methods := catalog.MethodsFor(enums.AccountTypeIndividual)
	if len(methods) != 2 {
		t.Fatalf("expected 2 methods, got %d", len(methods))
	}
	if methods[0] != enums.PaymentMethodCard || methods[1] != enums.PaymentMethodPayPal {
		t.Fatalf("unexpected methods %v", methods)
	}
}

func TestMethodsForBusiness(t *testing.T) {
	t.Parallel()

	catalog := NewCatalog()
	methods := catalog.MethodsFor(enums.AccountTypeBusiness)
	if len(methods) != 2 {
		t.Fatalf("expected 2 methods, got %d", len(methods))
	}
	if methods[0] != enums.PaymentMethodQuote || methods[1] != enums.PaymentMethodTransfer {
		t.Fatalf("unexpected methods %v", methods)
	}
}

func TestMethodsForUnknownFallsBackToIndividual(t *testing.T) {
	t.Parallel()

	catalog := NewCatalog()
	methods := catalog.MethodsFor(enums.AccountType(""))
	if len(methods) != 2 || methods[0] != enums.PaymentMethodCard {
		t.Fatalf("expected individual fallback, got %v", methods)
	}
}

func TestAllowedIsClassGated(t *testing.T) {
	t.Parallel()

	catalog := NewCatalog()

	if !catalog.Allowed(enums.AccountTypeIndividual, enums.PaymentMethodCard) {
		t.Fatal("card should be allowed for individual")
	}
	if catalog.Allowed(enums.AccountTypeIndividual, enums.PaymentMethodQuote) {
		t.Fatal("quote should not be allowed for individual")
	}
	if !catalog.Allowed(enums.AccountTypeBusiness, enums.PaymentMethodTransfer) {
		t.Fatal("transfer should be allowed for business")
	}
	if catalog.Allowed(enums.AccountTypeBusiness, enums.PaymentMethodPayPal) {
		t.Fatal("paypal should not be allowed for business")
	}
}

func TestMethodsForReturnsCopy(t *testing.T) {
	t.Parallel()

	catalog := NewCatalog()
	methods := catalog.MethodsFor(enums.AccountTypeBusiness)
	methods[0] = enums.PaymentMethodCard

	if catalog.Allowed(enums.AccountTypeBusiness, enums.PaymentMethodCard) {
		t.Fatal("mutating the returned slice must not affect the catalog")
	}
}
