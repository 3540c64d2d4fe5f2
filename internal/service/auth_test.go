package service

import (
	"storefront-service/internal/model"
	"storefront-service/internal/testutil"
	"storefront-service/pkg/jwtutil"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newAuth(t *testing.T) (*Auth, *jwtutil.JWTUtil) {
	t.Helper()
	jwt := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})
	return NewAuth(testutil.NewDB(t), jwt).WithHashCost(bcrypt.MinCost), jwt
}

func TestRegisterFirstUserIsAdmin(t *testing.T) {
	auth, _ := newAuth(t)

	first, err := auth.Register(ctx, RegisterInput{Name: "Dona", Email: "Dona@Loja.com ", Password: "segredo123"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if first.Role != model.RoleAdmin {
		t.Errorf("first user role = %s, want admin", first.Role)
	}
	if first.Email != "dona@loja.com" {
		t.Errorf("email not normalized: %q", first.Email)
	}
	if first.Password == "segredo123" {
		t.Error("password stored in clear text")
	}

	second, err := auth.Register(ctx, RegisterInput{Name: "Cliente", Email: "cliente@loja.com", Password: "segredo123"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if second.Role != model.RoleCustomer {
		t.Errorf("second user role = %s, want customer", second.Role)
	}

	_, err = auth.Register(ctx, RegisterInput{Name: "Outra", Email: "dona@loja.com", Password: "segredo123"})
	requireKind(t, err, ErrConflict, "E-mail já cadastrado")
}

func TestRegisterValidation(t *testing.T) {
	auth, _ := newAuth(t)

	_, err := auth.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@loja.com", Password: "curta"})
	requireValidation(t, err, "senha: A senha deve ter pelo menos 8 caracteres")

	_, err = auth.Register(ctx, RegisterInput{Name: "Ana", Email: "ana", Password: "segredo123"})
	requireValidation(t, err, "email: E-mail inválido")
}

func TestCreateUserWithRole(t *testing.T) {
	auth, _ := newAuth(t)

	if _, err := auth.Register(ctx, RegisterInput{Name: "Dona", Email: "dona@loja.com", Password: "segredo123"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	u, err := auth.CreateUser(ctx, RegisterInput{Name: "Gerente", Email: "gerente@loja.com", Password: "segredo123"}, model.RoleAdmin)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.Role != model.RoleAdmin {
		t.Errorf("role = %s, want admin", u.Role)
	}

	_, err = auth.CreateUser(ctx, RegisterInput{Name: "X", Email: "x@loja.com", Password: "segredo123"}, "root")
	requireValidation(t, err, "role: Perfil inválido")
}

func TestLogin(t *testing.T) {
	auth, jwt := newAuth(t)
	if _, err := auth.Register(ctx, RegisterInput{Name: "Dona", Email: "dona@loja.com", Password: "segredo123"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	session, err := auth.Login(ctx, LoginInput{Email: " DONA@loja.com", Password: "segredo123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err := jwt.ValidateToken(session.Token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Email != "dona@loja.com" || claims.Role != model.RoleAdmin || claims.UserID != session.User.ID {
		t.Errorf("unexpected claims %+v", claims)
	}

	_, err = auth.Login(ctx, LoginInput{Email: "dona@loja.com", Password: "errada123"})
	requireKind(t, err, ErrUnauthorized, "Credenciais inválidas")

	_, err = auth.Login(ctx, LoginInput{Email: "ninguem@loja.com", Password: "segredo123"})
	requireKind(t, err, ErrUnauthorized, "Credenciais inválidas")
}
