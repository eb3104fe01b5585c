package loader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStoreConfig describes an S3-compatible document store.
type ObjectStoreConfig struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefixes  []string
	UseSSL    bool

	// CacheSize bounds the payload cache used to avoid re-downloading an
	// object matched by more than one prefix. Zero uses a small default.
	CacheSize int
}

const defaultObjectCacheSize = 128

// ObjectStore streams JSON documents from an S3-compatible bucket: every
// object under the configured prefixes is fetched and decoded as one
// document. Listing and fetching are lazy, one object ahead of the
// consumer; the sequence is not restartable since the bucket may change
// between traversals.
type ObjectStore struct {
	client   *minio.Client
	bucket   string
	prefixes []string
	cache    *lru.Cache[string, []byte]

	count   int
	prefix  int
	listing <-chan minio.ObjectInfo
	listCtx context.CancelFunc
}

// NewObjectStore connects to the store described by cfg. The connection
// is validated lazily on the first Next.
func NewObjectStore(cfg ObjectStoreConfig) (*ObjectStore, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("object store endpoint is required")
	}
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("object store bucket is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("object store access key and secret key are required")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to object store: %w", err)
	}

	size := cfg.CacheSize
	if size <= 0 {
		size = defaultObjectCacheSize
	}
	cache, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, err
	}

	prefixes := cfg.Prefixes
	if len(prefixes) == 0 {
		prefixes = []string{""}
	}

	return &ObjectStore{
		client:   client,
		bucket:   cfg.Bucket,
		prefixes: prefixes,
		cache:    cache,
	}, nil
}

func (l *ObjectStore) Count() int { return l.count }

func (l *ObjectStore) Next(ctx context.Context) (any, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if l.listing == nil {
			if l.prefix >= len(l.prefixes) {
				return nil, io.EOF
			}
			listCtx, cancel := context.WithCancel(ctx)
			l.listCtx = cancel
			l.listing = l.client.ListObjects(listCtx, l.bucket, minio.ListObjectsOptions{
				Prefix:    l.prefixes[l.prefix],
				Recursive: true,
			})
			l.prefix++
		}

		info, ok := <-l.listing
		if !ok {
			l.listCtx()
			l.listing = nil
			continue
		}
		if info.Err != nil {
			l.listCtx()
			return nil, fmt.Errorf("listing bucket %s: %w", l.bucket, info.Err)
		}
		if strings.HasSuffix(info.Key, "/") {
			continue
		}

		payload, err := l.fetch(ctx, info.Key)
		if err != nil {
			l.listCtx()
			return nil, err
		}

		dec := json.NewDecoder(bytes.NewReader(payload))
		dec.UseNumber()
		var doc any
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decoding object %s: %w", info.Key, err)
		}
		l.count++
		return doc, nil
	}
}

func (l *ObjectStore) fetch(ctx context.Context, key string) ([]byte, error) {
	if payload, ok := l.cache.Get(key); ok {
		return payload, nil
	}
	obj, err := l.client.GetObject(ctx, l.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("fetching object %s: %w", key, err)
	}
	defer obj.Close()
	payload, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("reading object %s: %w", key, err)
	}
	l.cache.Add(key, payload)
	return payload, nil
}
