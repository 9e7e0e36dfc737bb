package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Claims do token de acesso. O token é emitido pelo serviço de identidade;
// aqui só validamos e lemos quem é o usuário.
type Claims struct {
	UserID              uint   `json:"userId"`
	Email               string `json:"email"`
	RepresentanteCodigo string `json:"representanteCodigo,omitempty"`
	IsAdmin             bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// ParseAndValidate valida assinatura, iss, aud e exp.
func ParseAndValidate(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(getIssuer()),
		jwt.WithAudience(getAudience()),
		jwt.WithExpirationRequired(),
	)
	tok, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		k, _ := t.Header["kid"].(string)
		if k == "" {
			return nil, errors.New("kid ausente")
		}
		pub, ok := getPub(k)
		if !ok {
			return nil, errors.New("kid desconhecido")
		}
		return pub, nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("token inválido")
	}

	c, ok := tok.Claims.(*Claims)
	if !ok {
		return nil, errors.New("claims inválidas")
	}
	return c, nil
}
