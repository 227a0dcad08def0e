package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dzavadskis/minimart/internal/common"
	"github.com/dzavadskis/minimart/internal/server/models"
)

type productResponse struct {
	ID              int64              `json:"id"`
	Name            string             `json:"name"`
	Description     string             `json:"description"`
	Price           float64            `json:"price"`
	DiscountPercent float64            `json:"discount_percent"`
	FinalPrice      float64            `json:"final_price"`
	Category        string             `json:"category"`
	Brand           string             `json:"brand"`
	Stock           int                `json:"stock"`
	Rating          float64            `json:"rating"`
	ReviewsCount    int                `json:"reviews_count"`
	Tags            []string           `json:"tags"`
	Color           string             `json:"color"`
	Size            string             `json:"size"`
	Weight          float64            `json:"weight"`
	Dimensions      *models.Dimensions `json:"dimensions"`
	ImageURL        string             `json:"image_url"`
	Images          []string           `json:"images"`
	IsActive        bool               `json:"is_active"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

func toProductResponse(p *models.Product) productResponse {
	return productResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		DiscountPercent: p.DiscountPercent,
		FinalPrice:      p.FinalPrice,
		Category:        p.Category,
		Brand:           p.Brand,
		Stock:           p.Stock,
		Rating:          p.Rating,
		ReviewsCount:    p.ReviewsCount,
		Tags:            p.Tags,
		Color:           p.Color,
		Size:            p.Size,
		Weight:          p.Weight,
		Dimensions:      p.Dimensions,
		ImageURL:        p.ImageURL,
		Images:          p.Images,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// handleListProducts returns the full catalog.
func (s *Server) handleListProducts(c *gin.Context) {
	result, err := s.products.List(c.Request.Context())
	if err != nil {
		s.logger.Error(c.Request.Context(), "product listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "INTERNAL",
			"message": "internal error",
		})
		return
	}

	responses := make([]productResponse, 0, len(result))
	for _, p := range result {
		responses = append(responses, toProductResponse(p))
	}
	c.JSON(http.StatusOK, gin.H{"products": responses})
}

// readFormFile loads an uploaded file into memory, enforcing the configured
// size limit before reading.
func (s *Server) readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	if fh.Size > s.cfg.MaxUploadSizeBytes {
		return nil, errors.New("file too large")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadSizeBytes+1))
}

// uploadFormFile reads and stores one uploaded image, returning its URL.
func (s *Server) uploadFormFile(c *gin.Context, fh *multipart.FileHeader) (string, bool) {
	data, err := s.readFormFile(fh)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "FILE_TOO_LARGE",
			"message": "uploaded file exceeds the size limit",
		})
		return "", false
	}

	url, err := s.products.UploadImage(c.Request.Context(), data)
	if err != nil {
		if errors.Is(err, common.ErrNotAnImage) {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    "INVALID_INPUT",
				"message": "file must be an image",
			})
			return "", false
		}
		s.logger.Error(c.Request.Context(), "image upload failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "UPLOAD_FAILED",
			"message": "image upload failed",
		})
		return "", false
	}

	return url, true
}

// handleUploadImages stores several images in one request. Files that are
// not images are skipped rather than failing the batch.
func (s *Server) handleUploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "INVALID_INPUT",
			"message": "files are required",
		})
		return
	}

	urls := make([]string, 0, len(form.File["files"]))
	for _, fh := range form.File["files"] {
		data, err := s.readFormFile(fh)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    "FILE_TOO_LARGE",
				"message": "uploaded file exceeds the size limit",
			})
			return
		}

		url, err := s.products.UploadImage(c.Request.Context(), data)
		if err != nil {
			if errors.Is(err, common.ErrNotAnImage) {
				continue
			}
			s.logger.Error(c.Request.Context(), "image upload failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    "UPLOAD_FAILED",
				"message": "image upload failed",
			})
			return
		}
		urls = append(urls, url)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%d images uploaded successfully", len(urls)),
		"urls":    urls,
	})
}

// handleUploadImage stores a single image and returns its URL.
func (s *Server) handleUploadImage(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "INVALID_INPUT",
			"message": "file is required",
		})
		return
	}

	url, ok := s.uploadFormFile(c, fh)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "image uploaded successfully",
		"url":     url,
	})
}

// handleCreateProduct creates a catalog item from a multipart form with a
// required main image and optional additional images.
func (s *Server) handleCreateProduct(c *gin.Context) {
	name := c.PostForm("name")
	priceStr := c.PostForm("price")
	if name == "" || priceStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "INVALID_INPUT",
			"message": "name and price are required",
		})
		return
	}
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "INVALID_INPUT",
			"message": "price must be a number",
		})
		return
	}
	discount, _ := strconv.ParseFloat(c.DefaultPostForm("discount_percent", "0"), 64)
	stock, _ := strconv.Atoi(c.DefaultPostForm("stock", "0"))
	rating, _ := strconv.ParseFloat(c.DefaultPostForm("rating", "0"), 64)
	reviewsCount, _ := strconv.Atoi(c.DefaultPostForm("reviews_count", "0"))
	weight, _ := strconv.ParseFloat(c.DefaultPostForm("weight", "0"), 64)
	isActive, _ := strconv.ParseBool(c.DefaultPostForm("is_active", "true"))

	// tags and dimensions arrive as JSON strings inside the form.
	var tags []string
	if raw := c.DefaultPostForm("tags", "[]"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &tags); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    "INVALID_INPUT",
				"message": "tags must be a JSON array of strings",
			})
			return
		}
	}
	var dimensions *models.Dimensions
	if raw := c.PostForm("dimensions"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &dimensions); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    "INVALID_INPUT",
				"message": "dimensions must be a JSON object",
			})
			return
		}
	}

	mainImage, err := c.FormFile("main_image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "INVALID_INPUT",
			"message": "main_image is required",
		})
		return
	}

	imageURL, ok := s.uploadFormFile(c, mainImage)
	if !ok {
		return
	}

	var additionalURLs []string
	if form, err := c.MultipartForm(); err == nil {
		for _, fh := range form.File["additional_images"] {
			url, ok := s.uploadFormFile(c, fh)
			if !ok {
				return
			}
			additionalURLs = append(additionalURLs, url)
		}
	}

	product := &models.Product{
		Name:            name,
		Description:     c.PostForm("description"),
		Price:           price,
		DiscountPercent: discount,
		Category:        c.PostForm("category"),
		Brand:           c.PostForm("brand"),
		Stock:           stock,
		Rating:          rating,
		ReviewsCount:    reviewsCount,
		Tags:            tags,
		Color:           c.PostForm("color"),
		Size:            c.PostForm("size"),
		Weight:          weight,
		Dimensions:      dimensions,
		ImageURL:        imageURL,
		Images:          additionalURLs,
		IsActive:        isActive,
	}

	created, err := s.products.Create(c.Request.Context(), product)
	if err != nil {
		s.logger.Error(c.Request.Context(), "product creation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "INTERNAL",
			"message": "internal error",
		})
		return
	}

	s.logger.Info(c.Request.Context(), "product created", "id", created.ID, "name", created.Name)
	c.JSON(http.StatusCreated, gin.H{
		"message": "product created successfully",
		"product": toProductResponse(created),
	})
}
