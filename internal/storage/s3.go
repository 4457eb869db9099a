package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/fluxoapp/fluxo-api/internal/config"
)

// fotos de profissionais são sempre reencodadas em webp e limitadas a 512px
const (
	maxPhotoEdge = 512
	webpQuality  = 80
)

type PhotoStorage struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewPhotoStorage(cfg *config.Config) *PhotoStorage {
	if !cfg.HasS3() {
		return nil
	}

	creds := credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")

	client := s3.New(s3.Options{
		Region:       cfg.S3Region,
		Credentials:  creds,
		UsePathStyle: cfg.S3Endpoint != "",
		BaseEndpoint: optional(cfg.S3Endpoint),
	})

	publicURL := cfg.S3PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}

	return &PhotoStorage{
		client:    client,
		bucket:    cfg.S3Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// UploadProfessionalPhoto decodifica (jpeg/png/webp), reduz para caber em
// maxPhotoEdge, reencoda em webp e sobe para o bucket. Retorna a URL pública.
func (ps *PhotoStorage) UploadProfessionalPhoto(
	ctx context.Context,
	professionalID uuid.UUID,
	r io.Reader,
) (string, error) {

	img, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("decode photo: %w", err)
	}

	img = downscale(img)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return "", fmt.Errorf("encode webp: %w", err)
	}

	key := fmt.Sprintf("professionals/%s/%s.webp", professionalID, uuid.NewString())

	_, err = ps.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(ps.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", fmt.Errorf("upload photo: %w", err)
	}

	return ps.publicURL + "/" + key, nil
}

func downscale(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxPhotoEdge && h <= maxPhotoEdge {
		return img
	}

	scale := float64(maxPhotoEdge) / float64(w)
	if h > w {
		scale = float64(maxPhotoEdge) / float64(h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
