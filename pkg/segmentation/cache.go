package segmentation

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"time"

	"golang.org/x/crypto/blake2b"

	"caption-studio-server/pkg/logger"
)

// Store is the byte cache processed images are kept in.
type Store interface {
	GetBytes(ctx context.Context, key string) ([]byte, bool, error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedRemover memoizes successful results by content hash, so uploading
// the same sticker twice calls the model once.
type CachedRemover struct {
	next      Remover
	store     Store
	namespace string
	ttl       time.Duration
}

func NewCachedRemover(next Remover, store Store, namespace string, ttl time.Duration) *CachedRemover {
	return &CachedRemover{next: next, store: store, namespace: namespace, ttl: ttl}
}

// ContentKey hashes the image bytes and MIME type with BLAKE2b-256.
func ContentKey(namespace string, img Image) string {
	h, _ := blake2b.New256(nil)
	h.Write([]byte(img.MIMEType))
	h.Write([]byte{0})
	h.Write(img.Data)
	return "segmentation:" + namespace + ":" + hex.EncodeToString(h.Sum(nil))
}

func (c *CachedRemover) RemoveBackground(ctx context.Context, img Image) (Image, error) {
	key := ContentKey(c.namespace, img)

	if raw, ok, err := c.store.GetBytes(ctx, key); err != nil {
		logger.Warnf("Segmentation cache read failed: %v", err)
	} else if ok {
		var cached Image
		if err := json.Unmarshal(raw, &cached); err == nil {
			logger.Debugf("Segmentation cache hit: %s", key)
			return cached, nil
		}
	}

	out, err := c.next.RemoveBackground(ctx, img)
	if err != nil {
		return Image{}, err
	}

	if raw, err := json.Marshal(out); err == nil {
		if err := c.store.SetBytes(ctx, key, raw, c.ttl); err != nil {
			logger.Warnf("Segmentation cache write failed: %v", err)
		}
	}
	return out, nil
}
