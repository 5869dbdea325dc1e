package payment

import (
	"context"
	"log/slog"
	"sync"
	"time"

	application "marlowe/contexts/rights-enforcement/access-service/application"
)

// Transfer is one settled collection recorded by the ledger stub.
type Transfer struct {
	Reference string
	Payer     string
	Payee     string
	Amount    int64
	SettledAt time.Time
}

// Ledger is an in-process stand-in for the external settlement service
// behind ports.PaymentLedger. The access service trusts settlement to be
// atomic; this adapter records transfers and lets tests force the next
// collection to fail so the no-grant-after-failed-payment path is
// observable.
type Ledger struct {
	mu        sync.Mutex
	transfers []Transfer
	nextErr   error
	logger    *slog.Logger
}

func NewLedger(logger *slog.Logger) *Ledger {
	return &Ledger{logger: application.ResolveLogger(logger)}
}

func (l *Ledger) Collect(_ context.Context, payer string, payee string, amount int64, reference string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.nextErr != nil {
		err := l.nextErr
		l.nextErr = nil
		return err
	}

	l.transfers = append(l.transfers, Transfer{
		Reference: reference,
		Payer:     payer,
		Payee:     payee,
		Amount:    amount,
		SettledAt: time.Now().UTC(),
	})
	l.logger.Info("payment collected",
		"event", "payment_collected",
		"module", "rights-enforcement/access-service",
		"layer", "adapter",
		"payer", payer,
		"payee", payee,
		"amount", amount,
		"reference", reference,
	)
	return nil
}

// FailNext makes the next Collect call return err, then clears itself.
func (l *Ledger) FailNext(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextErr = err
}

// Transfers returns a copy of everything settled so far.
func (l *Ledger) Transfers() []Transfer {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Transfer(nil), l.transfers...)
}
