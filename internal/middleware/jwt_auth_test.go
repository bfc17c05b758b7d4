package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"tradefair_dev_v1_202608/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	chain := append([]gin.HandlerFunc{JWTAuth()}, handlers...)
	chain = append(chain, func(c *gin.Context) {
		c.JSON(200, gin.H{"user_id": GetUserID(c), "role": GetUserRole(c)})
	})
	r.GET("/protected", chain...)
	return r
}

func doGet(r http.Handler, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ==================== Token 生成与解析测试 ====================

func TestTokenRoundTrip(t *testing.T) {
	access, refresh, err := GenerateTokenPair(42, "alice", model.RoleVendor)
	if err != nil {
		t.Fatalf("GenerateTokenPair() error = %v", err)
	}

	claims, err := ParseToken(access)
	if err != nil {
		t.Fatalf("ParseToken(access) error = %v", err)
	}
	if claims.UserID != 42 || claims.Role != model.RoleVendor || claims.Subject != "access" {
		t.Errorf("claims = %+v", claims)
	}

	refreshClaims, err := ParseToken(refresh)
	if err != nil {
		t.Fatalf("ParseToken(refresh) error = %v", err)
	}
	if refreshClaims.Subject != "refresh" {
		t.Errorf("Subject = %s, want refresh", refreshClaims.Subject)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	access, _, _ := GenerateTokenPair(1, "alice", model.RoleCustomer)

	// 换掉密钥后旧 Token 全部失效
	old := GetJWTConfig()
	SetJWTConfig(&JWTConfig{
		SecretKey:       "another-secret",
		AccessTokenTTL:  old.AccessTokenTTL,
		RefreshTokenTTL: old.RefreshTokenTTL,
		Issuer:          old.Issuer,
	})
	defer SetJWTConfig(old)

	if _, err := ParseToken(access); err == nil {
		t.Error("换密钥后旧 Token 仍能解析")
	}
}

// ==================== 中间件测试 ====================

func TestJWTAuth(t *testing.T) {
	r := protectedRouter()

	// 无 Token
	if w := doGet(r, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("无 Token: code = %d, want 401", w.Code)
	}

	// 乱写的 Token
	if w := doGet(r, "garbage"); w.Code != http.StatusUnauthorized {
		t.Errorf("非法 Token: code = %d, want 401", w.Code)
	}

	// Refresh Token 不能当 Access Token 用
	_, refresh, _ := GenerateTokenPair(1, "alice", model.RoleCustomer)
	if w := doGet(r, refresh); w.Code != http.StatusUnauthorized {
		t.Errorf("Refresh Token 访问: code = %d, want 401", w.Code)
	}

	// 正常 Access Token
	access, _, _ := GenerateTokenPair(1, "alice", model.RoleCustomer)
	if w := doGet(r, access); w.Code != http.StatusOK {
		t.Errorf("合法 Token: code = %d, want 200", w.Code)
	}
}

func TestRequireRole(t *testing.T) {
	vendorOnly := protectedRouter(RequireVendor())

	vendorToken, _, _ := GenerateTokenPair(1, "seller", model.RoleVendor)
	customerToken, _, _ := GenerateTokenPair(2, "buyer", model.RoleCustomer)

	if w := doGet(vendorOnly, vendorToken); w.Code != http.StatusOK {
		t.Errorf("摊主访问摊主接口: code = %d, want 200", w.Code)
	}
	if w := doGet(vendorOnly, customerToken); w.Code != http.StatusForbidden {
		t.Errorf("顾客访问摊主接口: code = %d, want 403", w.Code)
	}

	customerOnly := protectedRouter(RequireCustomer())
	if w := doGet(customerOnly, vendorToken); w.Code != http.StatusForbidden {
		t.Errorf("摊主访问顾客接口: code = %d, want 403", w.Code)
	}
}
