package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/matzehuels/barchart/pkg/cache"
	"github.com/matzehuels/barchart/pkg/dataset"
	"github.com/matzehuels/barchart/pkg/errors"
	"github.com/matzehuels/barchart/pkg/observability"
)

// Load resolves the dataset named by opts and reports whether the parsed
// points came from the cache. The returned hash identifies the content.
func (r *Runner) Load(ctx context.Context, opts Options) (*dataset.Dataset, string, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, "", false, err
	}

	if opts.Dataset != nil {
		ds := opts.Dataset.Clone()
		if opts.Name != "" {
			ds.Name = opts.Name
		}
		data, err := json.Marshal(ds.Points)
		if err != nil {
			return nil, "", false, errors.Wrap(errors.ErrCodeInternal, err, "hash dataset")
		}
		return ds, cache.Hash(data), false, nil
	}

	source := opts.Source
	data, format, name := opts.Data, opts.Format, opts.Name
	if source != "" {
		var err error
		if data, format, err = readSource(source); err != nil {
			return nil, "", false, err
		}
		if name == "" {
			name = dataset.NameFromPath(source)
		}
	} else {
		source = "inline." + string(format)
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, source)
	start := time.Now()

	ds, hash, hit, err := r.loadBytes(ctx, data, format, name, opts.Refresh)
	points := 0
	if ds != nil {
		points = len(ds.Points)
	}
	hooks.OnLoadComplete(ctx, source, points, time.Since(start), err)
	return ds, hash, hit, err
}

func readSource(path string) ([]byte, dataset.Format, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, "", err
	}
	format, err := dataset.FormatFromPath(path)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "data file %s", path)
		}
		return nil, "", errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	return data, format, nil
}

func (r *Runner) loadBytes(ctx context.Context, data []byte, format dataset.Format, name string, refresh bool) (*dataset.Dataset, string, bool, error) {
	hash := cache.Hash(data)
	key := r.Keyer.DataKey(hash, string(format))
	hooks := observability.Cache()

	if !refresh {
		if raw, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var ds dataset.Dataset
			if err := json.Unmarshal(raw, &ds); err == nil {
				hooks.OnCacheHit(ctx, "data")
				if name != "" {
					ds.Name = name
				}
				return &ds, hash, true, nil
			}
		}
		hooks.OnCacheMiss(ctx, "data")
	}

	ds, err := dataset.Read(bytes.NewReader(data), format, name)
	if err != nil {
		return nil, "", false, err
	}
	ds.Sort()
	if raw, err := json.Marshal(ds); err == nil {
		if err := r.Cache.Set(ctx, key, raw, cache.TTLData); err != nil {
			r.Logger.Warn("cache write failed", "key", key, "err", err)
		} else {
			hooks.OnCacheSet(ctx, "data", len(raw))
		}
	}
	return ds, hash, false, nil
}
