package service

import (
	"context"
	"math"

	"go.opentelemetry.io/otel/attribute"

	"github.com/d60-Lab/commentlog/internal/address"
	"github.com/d60-Lab/commentlog/internal/events"
	"github.com/d60-Lab/commentlog/internal/model"
	"github.com/d60-Lab/commentlog/internal/repository"
	"github.com/d60-Lab/commentlog/internal/store"
)

// Wallet 余额记录与转账；转账在调用方事务内执行
type Wallet struct {
	st   store.Store
	opts options
}

func NewWallet(st store.Store, opts ...Option) *Wallet {
	return &Wallet{st: st, opts: buildOptions(opts)}
}

// TransferAddresses 转账需要声明的记录
func TransferAddresses(from, to address.Address) []address.Address {
	return []address.Address{address.BalanceAddress(from), address.BalanceAddress(to)}
}

// Transfer 从 from 扣款并记入 to；余额不足返回 ErrInsufficientFunds
func (w *Wallet) Transfer(r *repository.Records, from, to address.Address, amount uint64) error {
	if amount == 0 {
		return ErrInvalidAmount
	}
	src, srcExists, err := r.Balance(from)
	if err != nil {
		return err
	}
	if src.Amount < amount {
		return ErrInsufficientFunds
	}
	if from == to {
		return nil
	}
	dst, dstExists, err := r.Balance(to)
	if err != nil {
		return err
	}
	if dst.Amount > math.MaxUint64-amount {
		return ErrInvalidAmount
	}
	src.Amount -= amount
	dst.Amount += amount
	if err := r.SaveBalance(src, srcExists); err != nil {
		return err
	}
	return r.SaveBalance(dst, dstExists)
}

func (w *Wallet) Deposit(ctx context.Context, owner address.Address, amount uint64) (b *model.Balance, err error) {
	ctx, span := startSpan(ctx, "Wallet.Deposit", attribute.String("owner", owner.Short()))
	defer func() { finish(span, "deposit", err) }()

	if amount == 0 {
		return nil, ErrInvalidAmount
	}
	err = w.st.Update(ctx, []address.Address{address.BalanceAddress(owner)}, func(tx store.Tx) error {
		r := repository.NewRecords(tx)
		bal, exists, err := r.Balance(owner)
		if err != nil {
			return err
		}
		if bal.Amount > math.MaxUint64-amount {
			return ErrInvalidAmount
		}
		bal.Amount += amount
		b = bal
		return r.SaveBalance(bal, exists)
	})
	if err != nil {
		return nil, err
	}
	w.opts.emitter.Emit(events.New(events.FundsDeposited, owner, owner).WithAmount(amount))
	return b, nil
}

// Balance 无记录时为 0
func (w *Wallet) Balance(ctx context.Context, owner address.Address) (amount uint64, err error) {
	err = w.st.View(ctx, []address.Address{address.BalanceAddress(owner)}, func(tx store.Tx) error {
		b, _, err := repository.NewRecords(tx).Balance(owner)
		if err != nil {
			return err
		}
		amount = b.Amount
		return nil
	})
	return amount, err
}
