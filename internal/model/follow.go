package model

import "github.com/d60-Lab/commentlog/internal/address"

const UserFollowSize = 1 + address.Size + address.Size + 8

// UserFollow 关注关系（Follower 关注 Target），每对至多一条
type UserFollow struct {
	Follower  address.Address `json:"follower"`
	Target    address.Address `json:"target"`
	Timestamp int64           `json:"timestamp"`
}

func (*UserFollow) Namespace() string { return address.NamespaceFollow }

func (f *UserFollow) MarshalBinary() ([]byte, error) {
	e := newEncoder(UserFollowSize, kindFollow)
	e.address(f.Follower)
	e.address(f.Target)
	e.i64(f.Timestamp)
	return e.bytes(), nil
}

func (f *UserFollow) UnmarshalBinary(data []byte) error {
	d, err := newDecoder(data, UserFollowSize, kindFollow)
	if err != nil {
		return err
	}
	f.Follower = d.address()
	f.Target = d.address()
	f.Timestamp = d.i64()
	return nil
}
