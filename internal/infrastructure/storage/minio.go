// Package storage archiva los reportes PDF exportados en un bucket S3-compatible.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jhoicas/impilo-stock/internal/application/dashboard"
	"github.com/jhoicas/impilo-stock/pkg/config"
)

const (
	reportPrefix = "reports"
	contentPDF   = "application/pdf"
)

var _ dashboard.ReportArchive = (*ReportArchive)(nil)

// ReportArchive guarda reportes en MinIO (o cualquier S3). Es seguro para uso concurrente.
type ReportArchive struct {
	client *minio.Client
	bucket string
}

// NewReportArchive crea el cliente, valida la conexión y crea el bucket si no existe.
func NewReportArchive(ctx context.Context, cfg config.MinIOConfig) (*ReportArchive, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio: endpoint requerido")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio: credenciales requeridas")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio: bucket requerido")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio: crear cliente: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio: verificar bucket: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio: crear bucket: %w", err)
		}
	}
	return &ReportArchive{client: cli, bucket: cfg.Bucket}, nil
}

// ObjectKey clave del objeto para un nombre de reporte.
func ObjectKey(name string) string {
	return path.Join(reportPrefix, path.Base(name))
}

// Put sube el PDF bajo reports/<name> y devuelve la clave.
func (a *ReportArchive) Put(ctx context.Context, name string, pdf []byte) (string, error) {
	key := ObjectKey(name)
	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(pdf), int64(len(pdf)), minio.PutObjectOptions{
		ContentType: contentPDF,
	})
	if err != nil {
		return "", fmt.Errorf("minio: subir %s: %w", key, err)
	}
	return key, nil
}
