package paystack

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// ==================== 交易接口测试 ====================

func TestClient_Initialize(t *testing.T) {
	var gotAuth string
	var gotBody InitializeRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transaction/initialize" || r.Method != http.MethodPost {
			t.Errorf("意外请求: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": true,
			"message": "Authorization URL created",
			"data": {
				"authorization_url": "https://checkout.paystack.com/abc123",
				"access_code": "abc123",
				"reference": "ref_test_1"
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(&Config{SecretKey: "sk_test_x", BaseURL: server.URL})

	resp, err := client.Initialize(context.Background(), &InitializeRequest{
		Reference: "ref_test_1",
		Amount:    2500000,
		Email:     "vendor@test.com",
	})
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	if gotAuth != "Bearer sk_test_x" {
		t.Errorf("Authorization = %s, want Bearer sk_test_x", gotAuth)
	}
	if gotBody.Amount != 2500000 {
		t.Errorf("请求金额 = %d, want 2500000 (kobo)", gotBody.Amount)
	}
	if resp.Data.AuthorizationURL != "https://checkout.paystack.com/abc123" {
		t.Errorf("AuthorizationURL = %s", resp.Data.AuthorizationURL)
	}
}

func TestClient_Initialize_Declined(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status": false, "message": "Invalid amount"}`))
	}))
	defer server.Close()

	client := NewClient(&Config{SecretKey: "sk_test_x", BaseURL: server.URL})

	_, err := client.Initialize(context.Background(), &InitializeRequest{Reference: "r", Amount: 0, Email: "x@test.com"})
	if err == nil {
		t.Fatal("网关拒绝时应返回错误")
	}
}

func TestClient_Verify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transaction/verify/ref_test_2" {
			t.Errorf("意外路径: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": true,
			"message": "Verification successful",
			"data": {"status": "success", "reference": "ref_test_2", "amount": 450000}
		}`))
	}))
	defer server.Close()

	client := NewClient(&Config{SecretKey: "sk_test_x", BaseURL: server.URL})

	resp, err := client.Verify(context.Background(), "ref_test_2")
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if resp.Data.Status != TxStatusSuccess || resp.Data.Amount != 450000 {
		t.Errorf("data = %+v", resp.Data)
	}
}

// ==================== 签名测试 ====================

func TestVerifySignature(t *testing.T) {
	secret := "sk_test_webhook"
	body := []byte(`{"event":"charge.success","data":{"reference":"ref_1","status":"success"}}`)

	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	valid := hex.EncodeToString(mac.Sum(nil))

	cases := []struct {
		name      string
		secret    string
		signature string
		want      bool
	}{
		{"正确签名", secret, valid, true},
		{"空签名", secret, "", false},
		{"篡改签名", secret, "deadbeef", false},
		{"密钥不符", "sk_other", valid, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := VerifySignature(tc.secret, body, tc.signature); got != tc.want {
				t.Errorf("VerifySignature() = %v, want %v", got, tc.want)
			}
		})
	}
}
