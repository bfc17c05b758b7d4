package paystack

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// ==================== 客户端配置 ====================

// Config Paystack 客户端配置
type Config struct {
	SecretKey string
	BaseURL   string // 默认 https://api.paystack.co，测试时可指向 httptest
}

// Client Paystack 交易接口客户端
type Client struct {
	http      *resty.Client
	secretKey string
}

// NewClient 创建 Paystack 客户端
func NewClient(cfg *Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.paystack.co"
	}

	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(15 * time.Second)
	client.SetRetryCount(2)
	client.SetHeader("Authorization", "Bearer "+cfg.SecretKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		http:      client,
		secretKey: cfg.SecretKey,
	}
}

// ==================== 交易接口 ====================

// Initialize 初始化交易，返回收银台跳转地址
// amount 单位为 kobo（奈拉 × 100），换算在调用方完成
func (c *Client) Initialize(ctx context.Context, req *InitializeRequest) (*InitializeResponse, error) {
	var result InitializeResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		Post("/transaction/initialize")
	if err != nil {
		return nil, fmt.Errorf("paystack initialize 请求失败: %w", err)
	}

	if resp.StatusCode() != 200 || !result.Status {
		return nil, fmt.Errorf("paystack initialize 被拒绝: http %d, message: %s", resp.StatusCode(), result.Message)
	}
	if result.Data.AuthorizationURL == "" || result.Data.Reference == "" {
		return nil, fmt.Errorf("paystack initialize 响应缺少字段")
	}

	return &result, nil
}

// Verify 主动查询交易状态
func (c *Client) Verify(ctx context.Context, reference string) (*VerifyResponse, error) {
	var result VerifyResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/transaction/verify/" + reference)
	if err != nil {
		return nil, fmt.Errorf("paystack verify 请求失败: %w", err)
	}

	if resp.StatusCode() != 200 || !result.Status {
		return nil, fmt.Errorf("paystack verify 被拒绝: http %d, message: %s", resp.StatusCode(), result.Message)
	}

	return &result, nil
}

// ==================== Webhook 签名 ====================

// SignatureHeader Paystack 回调签名头
const SignatureHeader = "X-Paystack-Signature"

// VerifySignature 校验 webhook 签名
// Paystack 用 secret key 对原始请求体做 HMAC-SHA512，十六进制放在签名头里
func (c *Client) VerifySignature(body []byte, signature string) bool {
	return VerifySignature(c.secretKey, body, signature)
}

// VerifySignature 校验 webhook 签名（独立函数，便于测试）
func VerifySignature(secretKey string, body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha512.New, []byte(secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
