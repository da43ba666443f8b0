package account

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ghazal-mohammad/advanced-banking-system/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newAccount(kind models.AccountKind, state models.LifecycleState, balance string) *models.Account {
	return &models.Account{
		AccountNumber: "01000001",
		Kind:          kind,
		State:         state,
		Balance:       dec(balance),
	}
}

func TestTransition(t *testing.T) {
	tests := []struct {
		name        string
		from        models.LifecycleState
		event       LifecycleEvent
		wantState   models.LifecycleState
		wantChanged bool
		wantErr     error
	}{
		{name: "active to frozen", from: models.StateActive, event: EventFreeze, wantState: models.StateFrozen, wantChanged: true},
		{name: "active to suspended", from: models.StateActive, event: EventSuspend, wantState: models.StateSuspended, wantChanged: true},
		{name: "frozen back to active", from: models.StateFrozen, event: EventActivate, wantState: models.StateActive, wantChanged: true},
		{name: "suspended back to active", from: models.StateSuspended, event: EventActivate, wantState: models.StateActive, wantChanged: true},
		{name: "active to closed", from: models.StateActive, event: EventClose, wantState: models.StateClosed, wantChanged: true},
		{name: "re-entrant freeze is a no-op", from: models.StateFrozen, event: EventFreeze, wantState: models.StateFrozen, wantChanged: false},
		{name: "re-entrant close is a no-op", from: models.StateClosed, event: EventClose, wantState: models.StateClosed, wantChanged: false},
		{name: "closed cannot reactivate", from: models.StateClosed, event: EventActivate, wantState: models.StateClosed, wantErr: models.ErrInvalidStateTransition},
		{name: "closed cannot freeze", from: models.StateClosed, event: EventFreeze, wantState: models.StateClosed, wantErr: models.ErrInvalidStateTransition},
		{name: "unknown event", from: models.StateActive, event: LifecycleEvent("defrost"), wantState: models.StateActive, wantErr: models.ErrInvalidStateTransition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAccount(models.KindSavings, tt.from, "0")
			changed, err := Transition(a, tt.event)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if changed != tt.wantChanged {
				t.Errorf("expected changed=%v, got %v", tt.wantChanged, changed)
			}
			if a.State != tt.wantState {
				t.Errorf("expected state %s, got %s", tt.wantState, a.State)
			}
		})
	}
}

func TestDeposit(t *testing.T) {
	tests := []struct {
		name        string
		state       models.LifecycleState
		amount      string
		wantErr     error
		wantBalance string
	}{
		{name: "active account accepts deposit", state: models.StateActive, amount: "50", wantBalance: "150"},
		{name: "frozen account accepts deposit", state: models.StateFrozen, amount: "50", wantBalance: "150"},
		{name: "suspended account rejects deposit", state: models.StateSuspended, amount: "50", wantErr: models.ErrInvalidStateTransition, wantBalance: "100"},
		{name: "closed account rejects deposit", state: models.StateClosed, amount: "50", wantErr: models.ErrInvalidStateTransition, wantBalance: "100"},
		{name: "zero amount rejected", state: models.StateActive, amount: "0", wantErr: models.ErrInvalidAmount, wantBalance: "100"},
		{name: "negative amount rejected", state: models.StateActive, amount: "-10", wantErr: models.ErrInvalidAmount, wantBalance: "100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAccount(models.KindSavings, tt.state, "100")
			err := Deposit(a, dec(tt.amount))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if !a.Balance.Equal(dec(tt.wantBalance)) {
				t.Errorf("expected balance %s, got %s", tt.wantBalance, a.Balance)
			}
		})
	}
}

func TestWithdraw(t *testing.T) {
	tests := []struct {
		name          string
		kind          models.AccountKind
		state         models.LifecycleState
		balance       string
		overdraft     string
		amount        string
		wantErr       error
		wantOverdraft bool
		wantBalance   string
	}{
		{name: "sufficient funds", kind: models.KindSavings, state: models.StateActive, balance: "100", amount: "40", wantBalance: "60"},
		{name: "exact balance", kind: models.KindSavings, state: models.StateActive, balance: "100", amount: "100", wantBalance: "0"},
		{name: "insufficient funds", kind: models.KindSavings, state: models.StateActive, balance: "100", amount: "100.01", wantErr: models.ErrInsufficientFunds, wantBalance: "100"},
		{name: "frozen account rejects withdrawal", kind: models.KindSavings, state: models.StateFrozen, balance: "100", amount: "10", wantErr: models.ErrInvalidStateTransition, wantBalance: "100"},
		{name: "suspended account rejects withdrawal", kind: models.KindSavings, state: models.StateSuspended, balance: "100", amount: "10", wantErr: models.ErrInvalidStateTransition, wantBalance: "100"},
		{name: "closed account rejects withdrawal", kind: models.KindSavings, state: models.StateClosed, balance: "100", amount: "10", wantErr: models.ErrInvalidStateTransition, wantBalance: "100"},
		{name: "zero amount rejected", kind: models.KindSavings, state: models.StateActive, balance: "100", amount: "0", wantErr: models.ErrInvalidAmount, wantBalance: "100"},
		{name: "checking within balance", kind: models.KindChecking, state: models.StateActive, balance: "100", overdraft: "500", amount: "100", wantBalance: "0"},
		{name: "checking draws into overdraft", kind: models.KindChecking, state: models.StateActive, balance: "100", overdraft: "500", amount: "300", wantOverdraft: true, wantBalance: "-200"},
		{name: "checking at overdraft limit", kind: models.KindChecking, state: models.StateActive, balance: "100", overdraft: "500", amount: "600", wantOverdraft: true, wantBalance: "-500"},
		{name: "checking beyond overdraft limit", kind: models.KindChecking, state: models.StateActive, balance: "100", overdraft: "500", amount: "600.01", wantErr: models.ErrInsufficientFunds, wantBalance: "100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAccount(tt.kind, tt.state, tt.balance)
			if tt.overdraft != "" {
				a.OverdraftLimit = dec(tt.overdraft)
			}
			used, err := Withdraw(a, dec(tt.amount))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if used != tt.wantOverdraft {
				t.Errorf("expected overdraftUsed=%v, got %v", tt.wantOverdraft, used)
			}
			if !a.Balance.Equal(dec(tt.wantBalance)) {
				t.Errorf("expected balance %s, got %s", tt.wantBalance, a.Balance)
			}
		})
	}
}
