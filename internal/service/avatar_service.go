package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// PlaceholderAvatar is served whenever a picture cannot be fetched.
var PlaceholderAvatar = []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="140" height="140" viewBox="0 0 140 140">` +
	`<rect width="140" height="140" fill="#dcdcdc"/>` +
	`<circle cx="70" cy="52" r="26" fill="#a0a0a0"/>` +
	`<path d="M22 130c4-28 24-44 48-44s44 16 48 44z" fill="#a0a0a0"/></svg>`)

const placeholderContentType = "image/svg+xml"

// Avatar is a profile picture ready to be served.
type Avatar struct {
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
	Placeholder bool   `json:"-"`
}

// AvatarConfig tunes AvatarService.
type AvatarConfig struct {
	Timeout  time.Duration
	MaxBytes int64
	CacheTTL time.Duration
}

// AvatarService downloads profile pictures. It never fails: any problem
// yields the placeholder.
type AvatarService struct {
	client *http.Client
	cache  *CacheService
	cfg    AvatarConfig
	logger *zap.Logger
}

// NewAvatarService constructs an AvatarService. cache may be nil.
func NewAvatarService(client *http.Client, cache *CacheService, cfg AvatarConfig, logger *zap.Logger) *AvatarService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 2 << 20
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvatarService{client: client, cache: cache, cfg: cfg, logger: logger}
}

// Placeholder returns the built-in picture.
func Placeholder() Avatar {
	return Avatar{ContentType: placeholderContentType, Body: PlaceholderAvatar, Placeholder: true}
}

// Fetch returns the picture at rawURL, or the placeholder.
func (s *AvatarService) Fetch(ctx context.Context, rawURL string) Avatar {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return Placeholder()
	}

	key := avatarCacheKey(rawURL)
	var cached Avatar
	if s.cache.Get(ctx, key, &cached) && len(cached.Body) > 0 {
		return cached
	}

	avatar, err := s.download(ctx, rawURL)
	if err != nil {
		s.logger.Warn("avatar fetch failed", zap.String("url", rawURL), zap.Error(err))
		return Placeholder()
	}

	s.cache.Set(ctx, key, avatar, s.cfg.CacheTTL)
	return avatar
}

func (s *AvatarService) download(ctx context.Context, rawURL string) (Avatar, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Avatar{}, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Avatar{}, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Avatar{}, err
	}
	req.Header.Set("Accept", "image/*")

	resp, err := s.client.Do(req)
	if err != nil {
		return Avatar{}, err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return Avatar{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.cfg.MaxBytes+1))
	if err != nil {
		return Avatar{}, err
	}
	if int64(len(body)) > s.cfg.MaxBytes {
		return Avatar{}, fmt.Errorf("avatar larger than %d bytes", s.cfg.MaxBytes)
	}
	if len(body) == 0 {
		return Avatar{}, fmt.Errorf("empty avatar body")
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return Avatar{}, fmt.Errorf("content type %q is not an image", contentType)
	}

	return Avatar{ContentType: contentType, Body: body}, nil
}

func avatarCacheKey(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return "avatar:" + hex.EncodeToString(sum[:])
}
