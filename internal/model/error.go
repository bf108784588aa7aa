package model

import "errors"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ErrorKind groups domain errors by how callers should react to them.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindAuth       ErrorKind = "auth"
	KindForbidden  ErrorKind = "forbidden"
)

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON           = "invalid_json"
	ErrCodeMissingCustomerFields = "missing_customer_fields"
	ErrCodeEmptyCart             = "empty_cart"
	ErrCodeInvalidItems          = "invalid_items"
	ErrCodeInvalidStatus         = "invalid_status"
	ErrCodeInvalidProductPayload = "invalid_product_payload"
	ErrCodeInvalidNotification   = "invalid_notification"
	ErrCodeOrderNotFound         = "order_not_found"
	ErrCodeProductNotFound       = "product_not_found"
	ErrCodeMissingCredentials    = "missing_credentials"
	ErrCodeInvalidCredentials    = "invalid_credentials"
	ErrCodeMissingToken          = "missing_token"
	ErrCodeInvalidToken          = "invalid_token"
	ErrCodeForbidden             = "forbidden"
	ErrCodeDeliveryFailed        = "delivery_failed"
	ErrCodeInternalError         = "internal_error"
)

// Domain errors for business logic
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

// AsDomainError unwraps err into a DomainError if it is one.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// Common domain errors
var (
	ErrMissingCustomerFields = NewDomainError(KindValidation, ErrCodeMissingCustomerFields, "Customer name, phone and address are required")
	ErrEmptyCart             = NewDomainError(KindValidation, ErrCodeEmptyCart, "Order must contain at least one item")
	ErrInvalidItems          = NewDomainError(KindValidation, ErrCodeInvalidItems, "None of the requested products are available")
	ErrInvalidStatus         = NewDomainError(KindValidation, ErrCodeInvalidStatus, "Status must be PENDING, IN_DELIVERY, DELIVERED or CANCELED")
	ErrInvalidProductPayload = NewDomainError(KindValidation, ErrCodeInvalidProductPayload, "Product id and name are required and price must be zero or greater")
	ErrInvalidNotification   = NewDomainError(KindValidation, ErrCodeInvalidNotification, "Phone and text are required")
	ErrOrderNotFound         = NewDomainError(KindNotFound, ErrCodeOrderNotFound, "Order not found")
	ErrProductNotFound       = NewDomainError(KindNotFound, ErrCodeProductNotFound, "Product not found")
	ErrMissingCredentials    = NewDomainError(KindValidation, ErrCodeMissingCredentials, "User and password are required")
	ErrInvalidCredentials    = NewDomainError(KindAuth, ErrCodeInvalidCredentials, "Invalid user or password")
	ErrMissingToken          = NewDomainError(KindAuth, ErrCodeMissingToken, "Missing bearer token")
	ErrInvalidToken          = NewDomainError(KindAuth, ErrCodeInvalidToken, "Invalid or expired token")
	ErrForbidden             = NewDomainError(KindForbidden, ErrCodeForbidden, "Admin role required")
)
