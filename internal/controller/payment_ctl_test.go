package controller

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tradefair_dev_v1_202608/internal/model"
	"tradefair_dev_v1_202608/internal/repository"
	"tradefair_dev_v1_202608/internal/service"
	"tradefair_dev_v1_202608/pkg/paystack"
)

const webhookSecret = "sk_test_ctl"

func setupWebhookRouter(t *testing.T) *gin.Engine {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{}, &model.VendorProfile{}, &model.CustomerProfile{},
		&model.Shed{}, &model.Product{}, &model.Follow{}, &model.Preorder{},
		&model.Payment{}, &model.VendorPayment{},
	); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}

	regSvc := service.NewRegistrationService(
		nil,
		repository.NewUserRepository(db),
		repository.NewCustomerProfileRepository(db),
		repository.NewProvisionUnitOfWork(db),
		stubGateway{},
	)
	paySvc := service.NewPaymentService(
		repository.NewPaymentRepository(db),
		repository.NewVendorPaymentRepository(db),
		repository.NewPreorderRepository(db),
		repository.NewShedRepository(db),
		repository.NewVendorProfileRepository(db),
		regSvc,
		stubGateway{},
		webhookSecret,
		"http://localhost:8080/callback",
	)
	ctl := NewPaymentController(paySvc)

	r := gin.New()
	r.POST("/api/v1/payments/webhook", ctl.Webhook)
	return r
}

func postWebhook(r http.Handler, body []byte, signature string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/payments/webhook", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set(paystack.SignatureHeader, signature)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signWebhook(body []byte) string {
	mac := hmac.New(sha512.New, []byte(webhookSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestWebhook_MissingSignature(t *testing.T) {
	r := setupWebhookRouter(t)

	body := []byte(`{"event":"charge.success","data":{"reference":"ref_1","status":"success"}}`)
	w := postWebhook(r, body, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhook_TamperedBody(t *testing.T) {
	r := setupWebhookRouter(t)

	body := []byte(`{"event":"charge.success","data":{"reference":"ref_1","status":"success"}}`)
	signature := signWebhook(body)

	// 签名对不上篡改后的 body
	tampered := []byte(`{"event":"charge.success","data":{"reference":"ref_attacker","status":"success"}}`)
	w := postWebhook(r, tampered, signature)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhook_ValidSignature(t *testing.T) {
	r := setupWebhookRouter(t)

	// 合法签名但 reference 对不上任何流水，仍回 200 防止网关重发
	body := []byte(`{"event":"charge.success","data":{"reference":"ref_unknown","status":"success"}}`)
	w := postWebhook(r, body, signWebhook(body))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "unknown reference")

	// 非成功事件直接确认
	body = []byte(`{"event":"charge.failed","data":{"reference":"ref_x","status":"failed"}}`)
	w = postWebhook(r, body, signWebhook(body))
	assert.Equal(t, http.StatusOK, w.Code)
}
