package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const CtxUsuario ctxKey = "usuario"

// Usuario é a identidade de quem chama a API ("liquidado por", "fechado por").
type Usuario struct {
	ID                  uint
	Email               string
	RepresentanteCodigo string
	IsAdmin             bool
}

// Representante indica usuário vinculado a um representante comercial.
func (u Usuario) Representante() bool {
	return u.RepresentanteCodigo != "" && !u.IsAdmin
}

// ComUsuario devolve um contexto carregando o usuário.
func ComUsuario(ctx context.Context, u Usuario) context.Context {
	return context.WithValue(ctx, CtxUsuario, u)
}

// UsuarioDe lê o usuário autenticado do contexto.
func UsuarioDe(ctx context.Context) (Usuario, bool) {
	u, ok := ctx.Value(CtxUsuario).(Usuario)
	return u, ok
}

func MiddlewareAutenticacao(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			http.Error(w, "Token ausente", http.StatusUnauthorized)
			return
		}
		claims, err := ParseAndValidate(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			http.Error(w, "Token inválido", http.StatusUnauthorized)
			return
		}
		ctx := ComUsuario(r.Context(), Usuario{
			ID:                  claims.UserID,
			Email:               claims.Email,
			RepresentanteCodigo: claims.RepresentanteCodigo,
			IsAdmin:             claims.IsAdmin,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := UsuarioDe(r.Context())
		if !ok || !u.IsAdmin {
			http.Error(w, "Forbidden (admin only)", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
