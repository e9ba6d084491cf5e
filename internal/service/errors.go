package service

import "errors"

// Kind 错误分类，调用方据此决定是否重试
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindCapacity
	KindDuplication
	KindConsistency
	KindTransfer
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindCapacity:
		return "capacity"
	case KindDuplication:
		return "duplication"
	case KindConsistency:
		return "consistency"
	case KindTransfer:
		return "transfer"
	default:
		return "unknown"
	}
}

// Error 领域错误，Code 为稳定的对外错误码
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

var (
	ErrContentTooLong = newError(KindValidation, "content_too_long", "content exceeds maximum length")
	ErrTopicTooLong   = newError(KindValidation, "topic_too_long", "topic exceeds maximum length")
	ErrInvalidAmount  = newError(KindValidation, "invalid_amount", "amount must be positive")
	ErrFollowSelf     = newError(KindValidation, "follow_self", "cannot follow self")
	ErrParentNotFound = newError(KindValidation, "parent_not_found", "parent comment does not exist")

	ErrPageFull         = newError(KindCapacity, "page_full", "comment page is full")
	ErrIndexOutOfBounds = newError(KindCapacity, "index_out_of_bounds", "comment index exceeds like tracker capacity")
	ErrCounterOverflow  = newError(KindCapacity, "counter_overflow", "amount would overflow the recipient counter")

	ErrAlreadyLiked     = newError(KindDuplication, "already_liked", "already liked")
	ErrAddressCollision = newError(KindDuplication, "address_collision", "record already exists at derived address")
	ErrAlreadyFollowing = newError(KindDuplication, "already_following", "already following")
	ErrNotFollowing     = newError(KindDuplication, "not_following", "not following")

	ErrPostNotFound      = newError(KindConsistency, "post_not_found", "post not found")
	ErrPageNotFound      = newError(KindConsistency, "page_not_found", "comment page not found")
	ErrPageMismatch      = newError(KindConsistency, "page_mismatch", "comment page does not match post state")
	ErrNotAtPageBoundary = newError(KindConsistency, "not_at_page_boundary", "current page is not full yet")
	ErrCommentNotFound   = newError(KindConsistency, "comment_not_found", "comment not found")
	ErrAuthorMismatch    = newError(KindConsistency, "author_mismatch", "recipient is not the post author")

	ErrInsufficientFunds = newError(KindTransfer, "insufficient_funds", "insufficient funds")
)

func asDomain(err error, target **Error) bool { return errors.As(err, target) }

// KindOf 非领域错误返回 KindUnknown
func KindOf(err error) Kind {
	var e *Error
	if asDomain(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// CodeOf 非领域错误返回空串
func CodeOf(err error) string {
	var e *Error
	if asDomain(err, &e) {
		return e.Code
	}
	return ""
}

// Retryable 容量与一致性错误在调用方修正输入（换页、刷新状态）后可重试
func Retryable(err error) bool {
	switch KindOf(err) {
	case KindCapacity, KindConsistency:
		return true
	default:
		return false
	}
}
