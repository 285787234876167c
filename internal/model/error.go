package model

// ErrorKind classifies a domain error for transport mapping.
type ErrorKind int

const (
	KindNotFound ErrorKind = iota
	KindInvalidArgument
	KindInvalidState
	KindUnauthorised
	KindTransactionFailure
)

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeMissingField      = "MISSING_FIELD"
	ErrCodeProductNotFound   = "PRODUCT_NOT_FOUND"
	ErrCodeItemNotFound      = "ITEM_NOT_FOUND"
	ErrCodeCouponNotFound    = "COUPON_NOT_FOUND"
	ErrCodeUsageNotFound     = "COUPON_USAGE_NOT_FOUND"
	ErrCodeOrderNotFound     = "ORDER_NOT_FOUND"
	ErrCodeReviewNotFound    = "REVIEW_NOT_FOUND"
	ErrCodeInvalidQuantity   = "INVALID_QUANTITY"
	ErrCodeEmptyCouponCode   = "EMPTY_COUPON_CODE"
	ErrCodeCouponInvalid     = "COUPON_INVALID"
	ErrCodeCouponAlreadyUsed = "COUPON_ALREADY_USED"
	ErrCodeEmptyCart         = "EMPTY_CART"
	ErrCodeEmailTaken        = "EMAIL_TAKEN"
	ErrCodeBadCredentials    = "BAD_CREDENTIALS"
	ErrCodeReviewExists      = "REVIEW_EXISTS"
	ErrCodePostNotFound      = "POST_NOT_FOUND"
	ErrCodeCommentNotFound   = "COMMENT_NOT_FOUND"
	ErrCodeSlugTaken         = "SLUG_TAKEN"
	ErrCodeEmptyTitle        = "EMPTY_TITLE"
	ErrCodeEmptyComment      = "EMPTY_COMMENT"
	ErrCodeInvalidRating     = "INVALID_RATING"
	ErrCodeUnauthorised      = "UNAUTHORIZED"
	ErrCodeTransactionFailed = "TRANSACTION_FAILED"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// DomainError carries a machine-readable code and a kind the HTTP layer
// uses to pick a status code.
type DomainError struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrProductNotFound   = NewDomainError(KindNotFound, ErrCodeProductNotFound, "Product not found")
	ErrItemNotFound      = NewDomainError(KindNotFound, ErrCodeItemNotFound, "Item not found in cart")
	ErrCouponNotFound    = NewDomainError(KindNotFound, ErrCodeCouponNotFound, "Invalid coupon code")
	ErrUsageNotFound     = NewDomainError(KindNotFound, ErrCodeUsageNotFound, "No coupon usage found for this code")
	ErrOrderNotFound     = NewDomainError(KindNotFound, ErrCodeOrderNotFound, "Order not found")
	ErrReviewNotFound    = NewDomainError(KindNotFound, ErrCodeReviewNotFound, "Review not found")
	ErrInvalidQuantity   = NewDomainError(KindInvalidArgument, ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrMissingProductID  = NewDomainError(KindInvalidArgument, ErrCodeMissingField, "product_id is required")
	ErrEmptyCouponCode   = NewDomainError(KindInvalidArgument, ErrCodeEmptyCouponCode, "Coupon code is required")
	ErrCouponInvalid     = NewDomainError(KindInvalidState, ErrCodeCouponInvalid, "Coupon is no longer valid or has expired")
	ErrCouponAlreadyUsed = NewDomainError(KindInvalidState, ErrCodeCouponAlreadyUsed, "You have already used this coupon")
	ErrEmptyCart         = NewDomainError(KindInvalidState, ErrCodeEmptyCart, "Your cart is empty")
	ErrEmailTaken        = NewDomainError(KindInvalidState, ErrCodeEmailTaken, "An account with this email already exists")
	ErrBadCredentials    = NewDomainError(KindUnauthorised, ErrCodeBadCredentials, "Invalid email or password")
	ErrReviewExists      = NewDomainError(KindInvalidState, ErrCodeReviewExists, "You have already reviewed this product")
	ErrPostNotFound      = NewDomainError(KindNotFound, ErrCodePostNotFound, "Blog post not found")
	ErrCommentNotFound   = NewDomainError(KindNotFound, ErrCodeCommentNotFound, "Comment not found")
	ErrSlugTaken         = NewDomainError(KindInvalidState, ErrCodeSlugTaken, "A post with this title already exists")
	ErrEmptyTitle        = NewDomainError(KindInvalidArgument, ErrCodeEmptyTitle, "Title is required")
	ErrEmptyComment      = NewDomainError(KindInvalidArgument, ErrCodeEmptyComment, "Comment text is required")
	ErrInvalidRating     = NewDomainError(KindInvalidArgument, ErrCodeInvalidRating, "Rating must be between 1 and 5")
	ErrAuthRequired      = NewDomainError(KindUnauthorised, ErrCodeUnauthorised, "Authentication required")
	ErrTransactionFailed = NewDomainError(KindTransactionFailure, ErrCodeTransactionFailed, "Operation could not be completed. Please try again.")
)
