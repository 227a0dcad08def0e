package services

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dzavadskis/minimart/internal/common"
	sc "github.com/dzavadskis/minimart/internal/server/config"
	"github.com/dzavadskis/minimart/internal/server/models"
	"github.com/dzavadskis/minimart/internal/server/repositories/repomanager"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
)

// ProductService owns the product catalog: creating items, listing them,
// and storing their images in the S3-compatible object store.
type ProductService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewProductService(db *sql.DB, repomanager repomanager.RepositoryManager, config *sc.Config) *ProductService {
	return &ProductService{
		db:          db,
		repomanager: repomanager,
		config:      config,
	}
}

// GetRandomStorageKey builds an object key with a date prefix and a UUID,
// so uploads never collide and stay browsable by day.
func GetRandomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("products/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *ProductService) getS3Client() (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return client, nil
}

// objectURL returns the public URL of a stored object (path-style, which
// MinIO and other S3-compatible backends serve directly).
func (s *ProductService) objectURL(key string) string {
	base := strings.TrimSuffix(s.config.S3BaseEndpoint, "/")
	return fmt.Sprintf("%s/%s/%s", base, s.config.S3Bucket, key)
}

// UploadImage sniffs the payload content type, stores the bytes in the
// object store and returns the resulting URL. Payloads that are not images
// yield common.ErrNotAnImage.
func (s *ProductService) UploadImage(ctx context.Context, data []byte) (string, error) {
	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", common.ErrNotAnImage
	}

	client, err := s.getS3Client()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket
	key := GetRandomStorageKey() + mtype.Extension()
	contentType := mtype.String()

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("image upload error: %w", err)
	}

	return s.objectURL(key), nil
}

// Create computes the final price and inserts the product.
func (s *ProductService) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	product.FinalPrice = product.Price
	if product.DiscountPercent > 0 {
		product.FinalPrice = product.Price - product.Price*product.DiscountPercent/100
	}
	if product.Tags == nil {
		product.Tags = []string{}
	}
	if product.Images == nil {
		product.Images = []string{}
	}

	repo := s.repomanager.Products(s.db)
	p, err := repo.Create(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("error creating product: %w", err)
	}
	return p, nil
}

// List returns the full catalog.
func (s *ProductService) List(ctx context.Context) ([]*models.Product, error) {
	repo := s.repomanager.Products(s.db)
	result, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}
	return result, nil
}
