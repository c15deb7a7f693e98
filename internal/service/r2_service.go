package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	cfg "github.com/maheshrc27/content-planner/configs"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const maxMirrorBytes = 20 * 1024 * 1024

// ImageMirror copies a remote image into storage we control and returns
// its public URL.
type ImageMirror interface {
	Mirror(ctx context.Context, sourceURL string) (string, error)
}

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type R2Service struct {
	client    *http.Client
	s3        objectPutter
	bucket    string
	publicURL string
}

func NewR2Service(ctx context.Context, c cfg.Config, client *http.Client) (*R2Service, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(c.R2.AccessKey, c.R2.SecretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", c.R2.AccountID))
	})

	publicURL := c.R2.PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.r2.cloudflarestorage.com/%s", c.R2.AccountID, c.R2.BucketName)
	}

	return &R2Service{
		client:    client,
		s3:        s3Client,
		bucket:    c.R2.BucketName,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

var allowedImageTypes = map[string]struct{}{
	"jpg": {}, "png": {}, "webp": {}, "gif": {},
}

func (r *R2Service) Mirror(ctx context.Context, sourceURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d downloading image", resp.StatusCode)
	}

	fileBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxMirrorBytes))
	if err != nil {
		return "", fmt.Errorf("error reading image: %w", err)
	}

	fileType, err := filetype.Match(fileBytes)
	if err != nil {
		return "", fmt.Errorf("unsupported file type: %w", err)
	}
	if fileType == types.Unknown {
		return "", errors.New("unsupported file type")
	}
	if _, ok := allowedImageTypes[fileType.Extension]; !ok {
		return "", fmt.Errorf("file type %s is not allowed", fileType.Extension)
	}

	id, err := gonanoid.New()
	if err != nil {
		return "", err
	}
	key := id + "." + fileType.Extension

	if err := r.UploadToR2(ctx, key, fileBytes, fileType.MIME.Value); err != nil {
		return "", err
	}

	return r.publicURL + "/" + key, nil
}

func (r *R2Service) UploadToR2(ctx context.Context, key string, file []byte, filetype string) error {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(file),
		ContentType: aws.String(filetype),
	}

	_, err := r.s3.PutObject(ctx, input)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	return nil
}
