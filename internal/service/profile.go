package service

import (
	"context"

	"github.com/d60-Lab/commentlog/internal/address"
	"github.com/d60-Lab/commentlog/internal/model"
	"github.com/d60-Lab/commentlog/internal/repository"
	"github.com/d60-Lab/commentlog/internal/store"
)

// ProfileService 只读：计数由发帖、点赞、打赏在各自事务内累加
type ProfileService interface {
	GetProfile(ctx context.Context, user address.Address) (*model.UserProfile, error)
}

type profileService struct {
	st store.Store
}

func NewProfileService(st store.Store) ProfileService { return &profileService{st: st} }

// GetProfile 尚无记录时返回零值档案
func (s *profileService) GetProfile(ctx context.Context, user address.Address) (p *model.UserProfile, err error) {
	err = s.st.View(ctx, []address.Address{address.ProfileAddress(user)}, func(tx store.Tx) error {
		p, _, err = repository.NewRecords(tx).Profile(user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}
