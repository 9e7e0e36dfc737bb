package anexo

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/distribuidora/api-financeiro/internal/config"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Armazenador grava um objeto e devolve a URL pública dele.
type Armazenador interface {
	Enviar(ctx context.Context, chave string, r io.Reader, tamanho int64, contentType string) (string, error)
}

type S3 struct {
	Client  *minio.Client
	Bucket  string
	baseURL string
}

func Conectar(cfg config.S3) (*S3, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, err
	}
	return &S3{Client: client, Bucket: cfg.Bucket, baseURL: BaseURL(cfg)}, nil
}

// GarantirBucket cria o bucket na primeira subida.
func (s *S3) GarantirBucket(ctx context.Context) error {
	existe, err := s.Client.BucketExists(ctx, s.Bucket)
	if err != nil {
		return err
	}
	if !existe {
		return s.Client.MakeBucket(ctx, s.Bucket, minio.MakeBucketOptions{})
	}
	return nil
}

func (s *S3) Enviar(ctx context.Context, chave string, r io.Reader, tamanho int64, contentType string) (string, error) {
	if tamanho <= 0 {
		tamanho = -1
	}
	_, err := s.Client.PutObject(ctx, s.Bucket, chave, r, tamanho, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", chave, err)
	}
	return s.baseURL + "/" + chave, nil
}

// BaseURL é S3_PUBLIC_URL quando configurado, senão endpoint/bucket.
func BaseURL(cfg config.S3) string {
	if cfg.PublicURL != "" {
		return strings.TrimRight(cfg.PublicURL, "/")
	}
	esquema := "http"
	if cfg.UseSSL {
		esquema = "https"
	}
	return fmt.Sprintf("%s://%s/%s", esquema, strings.TrimRight(cfg.Endpoint, "/"), cfg.Bucket)
}

// Chave monta "comprovantes/<uuid>-<nome>" sem caminho nem espaços no nome.
func Chave(nome string) string {
	nome = path.Base(strings.ReplaceAll(nome, "\\", "/"))
	nome = strings.Join(strings.Fields(nome), "_")
	if nome == "" || nome == "." || nome == "/" {
		nome = "arquivo"
	}
	return fmt.Sprintf("comprovantes/%s-%s", uuid.NewString(), nome)
}
