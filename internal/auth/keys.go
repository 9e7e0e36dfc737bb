package auth

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/distribuidora/api-financeiro/internal/config"
)

var (
	keysMu sync.RWMutex

	pubKeys  = map[string]*rsa.PublicKey{} // kid -> pub
	issuer   string
	audience string
)

// Init carrega a chave pública RSA do emissor de tokens. Aceita PEM
// "PUBLIC KEY" (PKIX), "RSA PUBLIC KEY" (PKCS#1) ou um certificado.
func Init(cfg config.Auth) error {
	if cfg.PublicKeyPath == "" || cfg.KID == "" || cfg.Issuer == "" || cfg.Audience == "" {
		return errors.New("missing envs: AUTH_RSA_PUBLIC_PATH/AUTH_KID/AUTH_ISSUER/AUTH_AUDIENCE")
	}

	b, err := os.ReadFile(cfg.PublicKeyPath)
	if err != nil {
		return fmt.Errorf("read public key: %w", err)
	}
	pub, err := lerChavePublica(b)
	if err != nil {
		return err
	}
	InitComChave(pub, cfg.KID, cfg.Issuer, cfg.Audience)
	return nil
}

func lerChavePublica(b []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(b)
	if block == nil {
		return nil, errors.New("pem decode public key failed")
	}

	var pk any
	switch block.Type {
	case "CERTIFICATE":
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parse certificate: %w", err)
		}
		pk = cert.PublicKey
	case "RSA PUBLIC KEY":
		k, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parse public key: %w", err)
		}
		pk = k
	default:
		k, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parse public key: %w", err)
		}
		pk = k
	}

	rsaKey, ok := pk.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not RSA")
	}
	return rsaKey, nil
}

// InitComChave registra uma chave já carregada (usado também nos testes).
func InitComChave(k *rsa.PublicKey, kid, iss, aud string) {
	keysMu.Lock()
	defer keysMu.Unlock()
	issuer = iss
	audience = aud
	pubKeys = map[string]*rsa.PublicKey{kid: k}
}

func getPub(kid string) (*rsa.PublicKey, bool) {
	keysMu.RLock()
	defer keysMu.RUnlock()
	p, ok := pubKeys[kid]
	return p, ok
}

func getIssuer() string {
	keysMu.RLock()
	defer keysMu.RUnlock()
	return issuer
}

func getAudience() string {
	keysMu.RLock()
	defer keysMu.RUnlock()
	return audience
}
