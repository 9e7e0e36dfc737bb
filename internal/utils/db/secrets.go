package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/distribuidora/api-financeiro/internal/config"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type secretsAPI interface {
	GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

func initSecretsConfig(ctx context.Context) (secretsAPI, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return secretsmanager.NewFromConfig(cfg), nil
}

// retrieveCredentials prefere DB_USERNAME/DB_PASSWORD; sem eles busca o segredo DB_SECRET_ID.
func retrieveCredentials(ctx context.Context, cfg config.DB, secrets secretsAPI) (string, string, error) {
	if cfg.User != "" && cfg.Password != "" {
		return cfg.User, cfg.Password, nil
	}
	if cfg.SecretID == "" {
		return "", "", errors.New("credenciais do banco ausentes: defina DB_USERNAME/DB_PASSWORD ou DB_SECRET_ID")
	}
	if secrets == nil {
		var err error
		if secrets, err = initSecretsConfig(ctx); err != nil {
			return "", "", fmt.Errorf("configurar aws: %w", err)
		}
	}

	result, err := secrets.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(cfg.SecretID),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return "", "", fmt.Errorf("ler segredo %s: %w", cfg.SecretID, err)
	}
	if result.SecretString == nil {
		return "", "", fmt.Errorf("segredo %s sem SecretString", cfg.SecretID)
	}

	var secret Credentials
	if err = json.Unmarshal([]byte(*result.SecretString), &secret); err != nil {
		return "", "", fmt.Errorf("segredo %s mal formado: %w", cfg.SecretID, err)
	}
	return secret.Username, secret.Password, nil
}
