package service_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/d60-Lab/commentlog/internal/service"
)

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		err       error
		kind      service.Kind
		retryable bool
	}{
		{service.ErrContentTooLong, service.KindValidation, false},
		{service.ErrParentNotFound, service.KindValidation, false},
		{service.ErrPageFull, service.KindCapacity, true},
		{service.ErrIndexOutOfBounds, service.KindCapacity, true},
		{service.ErrCounterOverflow, service.KindCapacity, true},
		{service.ErrAlreadyLiked, service.KindDuplication, false},
		{service.ErrNotFollowing, service.KindDuplication, false},
		{service.ErrPageMismatch, service.KindConsistency, true},
		{service.ErrNotAtPageBoundary, service.KindConsistency, true},
		{service.ErrInsufficientFunds, service.KindTransfer, false},
	}
	for _, tt := range tests {
		t.Run(service.CodeOf(tt.err), func(t *testing.T) {
			wrapped := errors.Wrap(tt.err, "outer")
			assert.Equal(t, tt.kind, service.KindOf(wrapped))
			assert.Equal(t, tt.retryable, service.Retryable(wrapped))
			assert.ErrorIs(t, wrapped, tt.err)
		})
	}

	plain := errors.New("io failure")
	assert.Equal(t, service.KindUnknown, service.KindOf(plain))
	assert.False(t, service.Retryable(plain))
	assert.Empty(t, service.CodeOf(plain))
}
