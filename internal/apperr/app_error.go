package apperr

import "github.com/cafekiosk/kiosk/pkg/zerror"

const (
	ValidationErrorCode         = "VALIDATION_FAILED"
	InsufficientStockErrorCode  = "INSUFFICIENT_STOCK"
	StatisticsMailErrorCode     = "STATISTICS_MAIL_SEND_FAILED"
	ProductNumberParseErrorCode = "PRODUCT_NUMBER_PARSE_FAILED"
)

var (
	ValidationErr = zerror.NewValidationFailed(ValidationErrorCode, "validation error")

	// InsufficientStockErr aborts order creation as a whole: no order row and
	// no stock deduction may be committed when it is returned.
	InsufficientStockErr = zerror.NewValidationFailed(InsufficientStockErrorCode, "insufficient stock for one or more products")

	StatisticsMailErr = zerror.NewBadGateway(StatisticsMailErrorCode, "failed to send order statistics mail")

	ProductNumberParseErr = zerror.NewInternalServerError(ProductNumberParseErrorCode, "latest product number is not numeric")
)
