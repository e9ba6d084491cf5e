package service

import (
	"context"
	"math"

	"go.opentelemetry.io/otel/attribute"

	"github.com/d60-Lab/commentlog/internal/address"
	"github.com/d60-Lab/commentlog/internal/events"
	"github.com/d60-Lab/commentlog/internal/repository"
	"github.com/d60-Lab/commentlog/internal/store"
)

// TipService 打赏：转账与作者档案累计在同一事务内完成
type TipService interface {
	TipPost(ctx context.Context, payer, post, author address.Address, amount uint64) error
}

type tipService struct {
	st     store.Store
	wallet *Wallet
	opts   options
}

func NewTipService(st store.Store, wallet *Wallet, opts ...Option) TipService {
	return &tipService{st: st, wallet: wallet, opts: buildOptions(opts)}
}

func (s *tipService) TipPost(ctx context.Context, payer, postAddr, author address.Address, amount uint64) (err error) {
	ctx, span := startSpan(ctx, "TipService.TipPost",
		attribute.String("post", postAddr.Short()), attribute.Int64("amount", int64(amount)))
	defer func() { finish(span, "tip_post", err) }()

	if amount == 0 {
		return ErrInvalidAmount
	}

	addrs := append([]address.Address{postAddr, address.ProfileAddress(author)}, TransferAddresses(payer, author)...)
	err = s.st.Update(ctx, addrs, func(tx store.Tx) error {
		r := repository.NewRecords(tx)
		p, err := loadPost(r, postAddr)
		if err != nil {
			return err
		}
		if p.Author != author {
			return ErrAuthorMismatch
		}
		prof, exists, err := r.Profile(author)
		if err != nil {
			return err
		}
		// 累计值只增不减，溢出即拒绝
		if prof.ReceivedTipAmount > math.MaxUint64-amount {
			return ErrCounterOverflow
		}
		if err := s.wallet.Transfer(r, payer, author, amount); err != nil {
			return err
		}
		prof.ReceivedTipAmount += amount
		return r.SaveProfile(prof, exists)
	})
	if err != nil {
		return err
	}
	s.opts.emitter.Emit(events.New(events.PostTipped, payer, postAddr).WithAmount(amount))
	return nil
}
