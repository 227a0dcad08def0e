package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dzavadskis/minimart/internal/common"
	"github.com/dzavadskis/minimart/internal/server/config"
	"github.com/dzavadskis/minimart/internal/server/models"
)

// pngBytes is a minimal payload carrying the PNG magic number, enough for
// content sniffing.
var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newProductService(t *testing.T, rm *fakeRepoManager) *ProductService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	cfg := &config.Config{
		S3RootUser:     "admin",
		S3RootPassword: "secret",
		S3Bucket:       "product-images",
		S3Region:       "us-east-1",
		S3BaseEndpoint: "http://127.0.0.1:9000/",
	}
	return NewProductService(db, rm, cfg)
}

func TestProductCreate_ComputesFinalPrice(t *testing.T) {
	rm := &fakeRepoManager{p: &fakeProductsRepo{}}
	svc := newProductService(t, rm)

	p, err := svc.Create(context.Background(), &models.Product{
		Name:            "Widget",
		Price:           200,
		DiscountPercent: 25,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if p.FinalPrice != 150 {
		t.Fatalf("final price = %v, want 150", p.FinalPrice)
	}
	if p.Images == nil {
		t.Fatal("nil images must be normalized to an empty slice")
	}
	if p.Tags == nil {
		t.Fatal("nil tags must be normalized to an empty slice")
	}
}

func TestProductCreate_NoDiscount(t *testing.T) {
	rm := &fakeRepoManager{p: &fakeProductsRepo{}}
	svc := newProductService(t, rm)

	p, err := svc.Create(context.Background(), &models.Product{Name: "Widget", Price: 99.5})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if p.FinalPrice != 99.5 {
		t.Fatalf("final price = %v, want 99.5", p.FinalPrice)
	}
}

func TestProductCreate_RepoError(t *testing.T) {
	rm := &fakeRepoManager{p: &fakeProductsRepo{createErr: errors.New("db down")}}
	svc := newProductService(t, rm)

	if _, err := svc.Create(context.Background(), &models.Product{Name: "Widget"}); err == nil {
		t.Fatal("expected error from repository")
	}
}

func TestUploadImage_RejectsNonImage(t *testing.T) {
	rm := &fakeRepoManager{p: &fakeProductsRepo{}}
	svc := newProductService(t, rm)

	_, err := svc.UploadImage(context.Background(), []byte("%PDF-1.4 not an image"))
	if !errors.Is(err, common.ErrNotAnImage) {
		t.Fatalf("expected common.ErrNotAnImage, got %v", err)
	}
}

func TestUploadImage_Success(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	origNew := newS3ClientFromConfig
	origPut := putObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
		putObject = origPut
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.New(s3.Options{})
	}

	var gotBucket, gotKey, gotContentType string
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		gotBucket = aws.ToString(in.Bucket)
		gotKey = aws.ToString(in.Key)
		gotContentType = aws.ToString(in.ContentType)
		return &s3.PutObjectOutput{}, nil
	}

	rm := &fakeRepoManager{p: &fakeProductsRepo{}}
	svc := newProductService(t, rm)

	url, err := svc.UploadImage(context.Background(), pngBytes)
	if err != nil {
		t.Fatalf("UploadImage error: %v", err)
	}

	if gotBucket != "product-images" {
		t.Fatalf("bucket = %q", gotBucket)
	}
	if !strings.HasPrefix(gotKey, "products/") || !strings.HasSuffix(gotKey, ".png") {
		t.Fatalf("unexpected key: %q", gotKey)
	}
	if gotContentType != "image/png" {
		t.Fatalf("content type = %q", gotContentType)
	}
	want := "http://127.0.0.1:9000/product-images/" + gotKey
	if url != want {
		t.Fatalf("url = %q, want %q", url, want)
	}
}

func TestUploadImage_PutError(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	origNew := newS3ClientFromConfig
	origPut := putObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
		putObject = origPut
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.New(s3.Options{})
	}
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return nil, errors.New("storage down")
	}

	rm := &fakeRepoManager{p: &fakeProductsRepo{}}
	svc := newProductService(t, rm)

	if _, err := svc.UploadImage(context.Background(), pngBytes); err == nil {
		t.Fatal("expected upload error")
	}
}

func TestGetRandomStorageKey_Unique(t *testing.T) {
	t.Parallel()

	if GetRandomStorageKey() == GetRandomStorageKey() {
		t.Fatal("storage keys must not collide")
	}
}

func TestProductList(t *testing.T) {
	rm := &fakeRepoManager{p: &fakeProductsRepo{
		listOut: []*models.Product{{ID: 1, Name: "Widget"}},
	}}
	svc := newProductService(t, rm)

	got, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Widget" {
		t.Fatalf("unexpected result: %+v", got)
	}
}
