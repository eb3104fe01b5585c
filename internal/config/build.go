package config

import (
	"fmt"
	"strings"

	"github.com/datprof/schemap/pkg/loader"
)

// BuildLoader constructs the document producer the configuration
// selects, wrapped with the jq filter when one is configured.
func (c Config) BuildLoader() (loader.Loader, error) {
	var (
		src loader.Loader
		err error
	)
	switch strings.ToLower(strings.TrimSpace(c.Loader.Type)) {
	case LoaderFiles:
		src, err = loader.NewMulti(c.Loader.Paths, c.Loader.Strict)
	case LoaderDir:
		src, err = loader.NewDir(c.Loader.Dirs, c.Loader.Recursive, c.Loader.Strict)
	case LoaderGlob:
		src, err = loader.NewGlob(c.Loader.Patterns, c.Loader.Strict)
	case LoaderObject:
		src, err = loader.NewObjectStore(loader.ObjectStoreConfig{
			Endpoint:  c.Loader.Object.Endpoint,
			Region:    c.Loader.Object.Region,
			AccessKey: c.Loader.Object.AccessKey,
			SecretKey: c.Loader.Object.SecretKey,
			Bucket:    c.Loader.Object.Bucket,
			Prefixes:  c.Loader.Object.Prefixes,
			UseSSL:    c.Loader.Object.UseSSL,
			CacheSize: c.Loader.Object.CacheSize,
		})
	default:
		return nil, fmt.Errorf("invalid loader type: %q", c.Loader.Type)
	}
	if err != nil {
		return nil, err
	}

	if c.Analyze.Filter != "" {
		src, err = loader.NewFilter(src, c.Analyze.Filter)
		if err != nil {
			return nil, err
		}
	}
	return src, nil
}
