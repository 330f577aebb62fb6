package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"control-docente/backend/config"
	"control-docente/backend/internal/dto"
	"control-docente/backend/internal/model"
	"control-docente/backend/pkg/jwt"
)

// ── 测试辅助 ──

func testAuthConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret-key-0123456789",
			AccessTokenTTL:          15 * time.Minute,
			RefreshTokenTTLDefault:  24 * time.Hour,
			RefreshTokenTTLRemember: 168 * time.Hour,
		},
	}
}

func setupTestAuthService() (AuthService, *testRepos, *jwt.Manager) {
	repo, mocks := newTestRepository()
	cfg := testAuthConfig()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	// rdb 为 nil：黑名单功能降级，不影响核心流程
	svc := NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop())
	return svc, mocks, jwtMgr
}

func seedUser(mocks *testRepos, password string) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &model.User{
		UserID:       "user-1",
		Name:         "Profesora Ana",
		Email:        "ana@example.com",
		PasswordHash: string(hash),
	}
	mocks.user.users["user-1"] = user
	return user
}

// ── Register 测试 ──

func TestAuthService_Register_Success(t *testing.T) {
	svc, mocks, _ := setupTestAuthService()

	req := &dto.RegisterRequest{
		Name:     "Profesora Ana",
		Email:    "ana@example.com",
		Password: "contraseña-segura",
	}
	result, err := svc.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("Register 应成功: %v", err)
	}
	if result.Email != "ana@example.com" {
		t.Errorf("期望邮箱 ana@example.com，实际 %s", result.Email)
	}

	stored := mocks.user.users[result.ID]
	if stored == nil {
		t.Fatal("用户应已写入")
	}
	if stored.PasswordHash == "contraseña-segura" {
		t.Error("密码不应明文存储")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("contraseña-segura")); err != nil {
		t.Errorf("密码哈希无法验证: %v", err)
	}
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	svc, mocks, _ := setupTestAuthService()
	seedUser(mocks, "password123")

	req := &dto.RegisterRequest{Name: "Otro", Email: "ana@example.com", Password: "otra-clave"}
	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("期望 ErrEmailTaken，实际: %v", err)
	}
}

// ── Login 测试 ──

func TestAuthService_Login_Success(t *testing.T) {
	svc, mocks, jwtMgr := setupTestAuthService()
	seedUser(mocks, "password123")

	req := &dto.LoginRequest{Email: "ana@example.com", Password: "password123"}
	result, err := svc.Login(context.Background(), req)
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatal("应返回 Token 对")
	}
	if result.ExpiresIn != int((15 * time.Minute).Seconds()) {
		t.Errorf("期望有效期 900 秒，实际 %d", result.ExpiresIn)
	}

	claims, err := jwtMgr.ParseToken(result.AccessToken)
	if err != nil {
		t.Fatalf("AccessToken 应可解析: %v", err)
	}
	if claims.TokenType != "access" || claims.UserID != "user-1" {
		t.Errorf("声明有误: %+v", claims)
	}
}

func TestAuthService_Login_RememberMe(t *testing.T) {
	svc, mocks, jwtMgr := setupTestAuthService()
	seedUser(mocks, "password123")

	req := &dto.LoginRequest{Email: "ana@example.com", Password: "password123", RememberMe: true}
	result, err := svc.Login(context.Background(), req)
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	claims, err := jwtMgr.ParseToken(result.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken 应可解析: %v", err)
	}
	if !claims.RememberMe {
		t.Error("RememberMe 应写入 refresh token 声明")
	}
	// remember me 的有效期应明显长于默认 24h
	if time.Until(claims.ExpiresAt.Time) < 100*time.Hour {
		t.Error("RememberMe 的 refresh token 有效期应为 168h")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, mocks, _ := setupTestAuthService()
	seedUser(mocks, "password123")

	req := &dto.LoginRequest{Email: "ana@example.com", Password: "incorrecta"}
	_, err := svc.Login(context.Background(), req)
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _, _ := setupTestAuthService()

	req := &dto.LoginRequest{Email: "nadie@example.com", Password: "password123"}
	_, err := svc.Login(context.Background(), req)
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("未注册邮箱也应返回 ErrInvalidCredentials，实际: %v", err)
	}
}

// ── RefreshToken 测试 ──

func TestAuthService_RefreshToken_Success(t *testing.T) {
	svc, mocks, jwtMgr := setupTestAuthService()
	seedUser(mocks, "password123")

	refreshToken, err := jwtMgr.GenerateRefreshToken("user-1", false)
	if err != nil {
		t.Fatalf("生成 refresh token 失败: %v", err)
	}

	result, err := svc.RefreshToken(context.Background(), refreshToken)
	if err != nil {
		t.Fatalf("RefreshToken 应成功: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("应签发新的 Token 对")
	}
}

func TestAuthService_RefreshToken_AccessTokenRejected(t *testing.T) {
	svc, mocks, jwtMgr := setupTestAuthService()
	seedUser(mocks, "password123")

	accessToken, _ := jwtMgr.GenerateAccessToken("user-1")
	_, err := svc.RefreshToken(context.Background(), accessToken)
	if !errors.Is(err, ErrRefreshInvalid) {
		t.Errorf("access token 不应可用于刷新，实际: %v", err)
	}
}

func TestAuthService_RefreshToken_Garbage(t *testing.T) {
	svc, _, _ := setupTestAuthService()

	_, err := svc.RefreshToken(context.Background(), "no-es-un-token")
	if !errors.Is(err, ErrRefreshInvalid) {
		t.Errorf("期望 ErrRefreshInvalid，实际: %v", err)
	}
}

func TestAuthService_RefreshToken_UserDeleted(t *testing.T) {
	svc, _, jwtMgr := setupTestAuthService()

	refreshToken, _ := jwtMgr.GenerateRefreshToken("user-borrado", false)
	_, err := svc.RefreshToken(context.Background(), refreshToken)
	if !errors.Is(err, ErrRefreshInvalid) {
		t.Errorf("用户不存在时期望 ErrRefreshInvalid，实际: %v", err)
	}
}

// ── GetMe 测试 ──

func TestAuthService_GetMe_Success(t *testing.T) {
	svc, mocks, _ := setupTestAuthService()
	seedUser(mocks, "password123")

	result, err := svc.GetMe(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetMe 应成功: %v", err)
	}
	if result.Name != "Profesora Ana" || result.Email != "ana@example.com" {
		t.Errorf("用户信息有误: %+v", result)
	}
}

func TestAuthService_GetMe_NotFound(t *testing.T) {
	svc, _, _ := setupTestAuthService()

	_, err := svc.GetMe(context.Background(), "nonexistent")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

// ── ChangePassword 测试 ──

func TestAuthService_ChangePassword_Success(t *testing.T) {
	svc, mocks, _ := setupTestAuthService()
	seedUser(mocks, "password123")

	req := &dto.ChangePasswordRequest{OldPassword: "password123", NewPassword: "clave-nueva-larga"}
	if err := svc.ChangePassword(context.Background(), "user-1", req); err != nil {
		t.Fatalf("ChangePassword 应成功: %v", err)
	}

	stored := mocks.user.users["user-1"]
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("clave-nueva-larga")); err != nil {
		t.Errorf("新密码应可验证: %v", err)
	}
}

func TestAuthService_ChangePassword_WrongOld(t *testing.T) {
	svc, mocks, _ := setupTestAuthService()
	seedUser(mocks, "password123")

	req := &dto.ChangePasswordRequest{OldPassword: "incorrecta", NewPassword: "clave-nueva-larga"}
	err := svc.ChangePassword(context.Background(), "user-1", req)
	if !errors.Is(err, ErrOldPasswordWrong) {
		t.Errorf("期望 ErrOldPasswordWrong，实际: %v", err)
	}
}

// ── Logout 测试 ──

func TestAuthService_Logout_NilRedisDegrades(t *testing.T) {
	svc, _, jwtMgr := setupTestAuthService()

	accessToken, _ := jwtMgr.GenerateAccessToken("user-1")
	claims, _ := jwtMgr.ParseToken(accessToken)

	// Redis 不可用时登出静默成功
	if err := svc.Logout(context.Background(), claims); err != nil {
		t.Errorf("Logout 在无 Redis 时应降级成功: %v", err)
	}
}
