package address

import "github.com/google/uuid"

// PostAddress locates the post created with the given id.
func PostAddress(id uuid.UUID) Address {
	return Derive(NamespacePost, id[:])
}

// CommentPageAddress locates page `index` of a post's comment log.
func CommentPageAddress(post Address, index uint64) Address {
	return Derive(NamespaceCommentPage, post[:], U64(index))
}

// UserLikeAddress locates the (user, post) like dedup record.
func UserLikeAddress(user, post Address) Address {
	return Derive(NamespaceUserLike, user[:], post[:])
}

// CommentLikesAddress locates the (user, post) comment like bitmap.
func CommentLikesAddress(user, post Address) Address {
	return Derive(NamespaceCommentLikes, user[:], post[:])
}

// FollowAddress locates the follower -> target relation record.
func FollowAddress(follower, target Address) Address {
	return Derive(NamespaceFollow, follower[:], target[:])
}

func ProfileAddress(user Address) Address {
	return Derive(NamespaceProfile, user[:])
}

func BalanceAddress(owner Address) Address {
	return Derive(NamespaceBalance, owner[:])
}
