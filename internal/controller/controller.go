package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"tradefair_dev_v1_202608/internal/service"
)

// statusFor 业务错误到 HTTP 状态码的映射
// 未列出的错误一律按 500 处理
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		return 401
	case errors.Is(err, service.ErrUserDisabled),
		errors.Is(err, service.ErrNotShedOwner),
		errors.Is(err, service.ErrNotProductOwner),
		errors.Is(err, service.ErrNotPreorderParty),
		errors.Is(err, service.ErrShedNotSecured):
		return 403
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrVendorNotFound),
		errors.Is(err, service.ErrCustomerNotFound),
		errors.Is(err, service.ErrShedNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrPreorderNotFound),
		errors.Is(err, service.ErrPaymentNotFound):
		return 404
	case errors.Is(err, service.ErrUsernameExists),
		errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrAlreadyFollowing),
		errors.Is(err, service.ErrShedConflict),
		errors.Is(err, service.ErrShedCapacityExceeded),
		errors.Is(err, service.ErrAlreadyPaid),
		errors.Is(err, service.ErrShedAlreadySecured),
		errors.Is(err, service.ErrPreorderNotPending):
		return 409
	case errors.Is(err, service.ErrInvalidDomain),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, service.ErrVendorFieldsRequired),
		errors.Is(err, service.ErrNotFollowing),
		errors.Is(err, service.ErrPreorderCancelled),
		errors.Is(err, service.ErrRegistrationExpired):
		return 400
	case errors.Is(err, service.ErrPaymentInitiation),
		errors.Is(err, service.ErrUpstreamGateway),
		errors.Is(err, service.ErrPaymentFailed):
		return 502
	default:
		return 500
	}
}

// fail 统一错误响应
func fail(c *gin.Context, err error) {
	code := statusFor(err)
	c.JSON(code, gin.H{"code": code, "message": err.Error()})
}

// ok 统一成功响应
func ok(c *gin.Context, data interface{}) {
	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    data,
	})
}
