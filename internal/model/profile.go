package model

import "github.com/d60-Lab/commentlog/internal/address"

const (
	UserProfileSize = 1 + address.Size + 8 + 8 + 8
	BalanceSize     = 1 + address.Size + 8
)

// UserProfile 用户聚合计数，只增不减
type UserProfile struct {
	Authority         address.Address `json:"authority"`
	PostCount         uint64          `json:"post_count"`
	ReceivedLikeCount uint64          `json:"received_like_count"`
	ReceivedTipAmount uint64          `json:"received_tip_amount"`
}

func (*UserProfile) Namespace() string { return address.NamespaceProfile }

func (p *UserProfile) MarshalBinary() ([]byte, error) {
	e := newEncoder(UserProfileSize, kindProfile)
	e.address(p.Authority)
	e.u64(p.PostCount)
	e.u64(p.ReceivedLikeCount)
	e.u64(p.ReceivedTipAmount)
	return e.bytes(), nil
}

func (p *UserProfile) UnmarshalBinary(data []byte) error {
	d, err := newDecoder(data, UserProfileSize, kindProfile)
	if err != nil {
		return err
	}
	p.Authority = d.address()
	p.PostCount = d.u64()
	p.ReceivedLikeCount = d.u64()
	p.ReceivedTipAmount = d.u64()
	return nil
}

// Balance 账户余额（最小单位）
type Balance struct {
	Owner  address.Address `json:"owner"`
	Amount uint64          `json:"amount"`
}

func (*Balance) Namespace() string { return address.NamespaceBalance }

func (b *Balance) MarshalBinary() ([]byte, error) {
	e := newEncoder(BalanceSize, kindBalance)
	e.address(b.Owner)
	e.u64(b.Amount)
	return e.bytes(), nil
}

func (b *Balance) UnmarshalBinary(data []byte) error {
	d, err := newDecoder(data, BalanceSize, kindBalance)
	if err != nil {
		return err
	}
	b.Owner = d.address()
	b.Amount = d.u64()
	return nil
}
