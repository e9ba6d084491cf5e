package store

import (
	"bytes"
	"sort"

	"github.com/d60-Lab/commentlog/internal/address"
)

type opKind int

const (
	opNone opKind = iota
	opCreate
	opPut
	opDelete
)

type slot struct {
	namespace string
	data      []byte
	exists    bool
	op        opKind
}

// write is one pending mutation handed to a backend at commit time.
type write struct {
	addr      address.Address
	namespace string
	data      []byte
	op        opKind
}

// bufferedTx holds a snapshot of the declared records and collects writes
// in memory; backends load it before fn runs and flush it afterwards.
type bufferedTx struct {
	slots    map[address.Address]*slot
	readOnly bool
}

func newBufferedTx(addrs []address.Address, readOnly bool) *bufferedTx {
	tx := &bufferedTx{slots: make(map[address.Address]*slot, len(addrs)), readOnly: readOnly}
	for _, a := range addrs {
		tx.slots[a] = &slot{}
	}
	return tx
}

// load seeds the snapshot with a record that exists in the backend.
func (t *bufferedTx) load(addr address.Address, namespace string, data []byte) {
	s, ok := t.slots[addr]
	if !ok {
		return
	}
	s.namespace = namespace
	s.data = data
	s.exists = true
}

func (t *bufferedTx) slot(addr address.Address) (*slot, error) {
	s, ok := t.slots[addr]
	if !ok {
		return nil, ErrUndeclared
	}
	return s, nil
}

func (t *bufferedTx) Get(addr address.Address) ([]byte, error) {
	s, err := t.slot(addr)
	if err != nil {
		return nil, err
	}
	if !s.exists {
		return nil, ErrNotFound
	}
	return bytes.Clone(s.data), nil
}

func (t *bufferedTx) Create(addr address.Address, namespace string, data []byte) error {
	if t.readOnly {
		return ErrReadOnly
	}
	s, err := t.slot(addr)
	if err != nil {
		return err
	}
	if s.exists {
		return ErrExists
	}
	s.exists = true
	s.namespace = namespace
	s.data = bytes.Clone(data)
	if s.op == opDelete {
		s.op = opPut
	} else {
		s.op = opCreate
	}
	return nil
}

func (t *bufferedTx) Put(addr address.Address, namespace string, data []byte) error {
	if t.readOnly {
		return ErrReadOnly
	}
	s, err := t.slot(addr)
	if err != nil {
		return err
	}
	if !s.exists {
		return ErrNotFound
	}
	s.namespace = namespace
	s.data = bytes.Clone(data)
	if s.op != opCreate {
		s.op = opPut
	}
	return nil
}

func (t *bufferedTx) Delete(addr address.Address) error {
	if t.readOnly {
		return ErrReadOnly
	}
	s, err := t.slot(addr)
	if err != nil {
		return err
	}
	if !s.exists {
		return ErrNotFound
	}
	s.exists = false
	if s.op == opCreate {
		s.op = opNone
	} else {
		s.op = opDelete
	}
	return nil
}

// writes returns pending mutations ordered by address.
func (t *bufferedTx) writes() []write {
	out := make([]write, 0, len(t.slots))
	for a, s := range t.slots {
		if s.op == opNone {
			continue
		}
		out = append(out, write{addr: a, namespace: s.namespace, data: s.data, op: s.op})
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i].addr[:], out[j].addr[:]) < 0
	})
	return out
}

func keys(addrs []address.Address) []string {
	out := make([]string, len(addrs))
	for i, a := range addrs {
		out[i] = a.String()
	}
	return out
}

// dedupe drops repeated addresses while keeping order.
func dedupe(addrs []address.Address) []address.Address {
	seen := make(map[address.Address]struct{}, len(addrs))
	out := make([]address.Address, 0, len(addrs))
	for _, a := range addrs {
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}
