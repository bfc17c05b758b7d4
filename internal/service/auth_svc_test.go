package service

import (
	"context"
	"errors"
	"testing"

	"tradefair_dev_v1_202608/internal/api/dto"
	"tradefair_dev_v1_202608/internal/middleware"
	"tradefair_dev_v1_202608/internal/model"
	"tradefair_dev_v1_202608/internal/repository"
)

func newAuthFixture(t *testing.T) *AuthService {
	db := setupServiceTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db))

	hashed, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	db.Create(&model.User{Username: "alice", Email: "alice@test.com", Password: hashed, IsVendor: true, IsActive: true})
	db.Create(&model.User{Username: "banned", Email: "banned@test.com", Password: hashed, IsActive: false})

	return svc
}

func TestAuthService_Login(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("登录后未返回 Token 对")
	}
	if resp.User.Role != model.RoleVendor {
		t.Errorf("Role = %s, want vendor", resp.User.Role)
	}

	// Access Token 里携带角色
	claims, err := middleware.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.Role != model.RoleVendor || claims.Subject != "access" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := newAuthFixture(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}

	// 不存在的用户给同一个错误，不泄露用户是否存在
	_, err = svc.Login(context.Background(), &dto.LoginRequest{Username: "nobody", Password: "x"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthService_Login_Disabled(t *testing.T) {
	svc := newAuthFixture(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "banned", Password: "secret123"})
	if !errors.Is(err, ErrUserDisabled) {
		t.Errorf("err = %v, want ErrUserDisabled", err)
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	refreshed, err := svc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	if err != nil {
		t.Fatalf("RefreshToken() error = %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Error("刷新后未返回 Access Token")
	}

	// Access Token 不能拿来刷新
	_, err = svc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: login.AccessToken})
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("用 Access Token 刷新: err = %v, want ErrInvalidToken", err)
	}

	// 乱写的 Token
	_, err = svc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: "not.a.token"})
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}
