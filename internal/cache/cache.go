// Package cache stores generated meshes on disk, keyed by everything that
// influences their content.
package cache

import (
	"encoding/binary"
	"errors"
	"fmt"
	gomath "math"
	"os"
	"path/filepath"
	"sync/atomic"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"

	"github.com/Faultbox/terragen/internal/logger"
	"github.com/Faultbox/terragen/internal/terrain"
	"github.com/Faultbox/terragen/pkg/formats"
)

const (
	keyDomain = "terragen-mesh"
	entryExt  = ".tmsh.zst"
)

// ErrCorruptEntry is returned when a cache file exists but cannot be decoded.
var ErrCorruptEntry = errors.New("corrupt cache entry")

// Cache is a directory of zstd-compressed TMSH files.
// It is safe for concurrent use.
type Cache struct {
	dir string
	enc *zstd.Encoder
	dec *zstd.Decoder
	log *zap.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

// Open creates dir if needed and returns a cache rooted there.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("cache dir: %w", err)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, err
	}

	return &Cache{
		dir: dir,
		enc: enc,
		dec: dec,
		log: logger.Named("cache"),
	}, nil
}

// Close releases the compressor resources.
func (c *Cache) Close() error {
	c.dec.Close()
	return c.enc.Close()
}

// Dir returns the cache root.
func (c *Cache) Dir() string {
	return c.dir
}

// Key derives the cache key for a build. Two builds with the same key
// produce identical meshes.
func Key(basis string, seed int64, p terrain.Params) string {
	normals := p.Normals
	if normals == "" {
		normals = terrain.NormalsFlat
	}

	buf := make([]byte, 0, 96)
	buf = append(buf, keyDomain...)
	buf = append(buf, 0)
	buf = append(buf, basis...)
	buf = append(buf, 0)
	buf = append(buf, normals...)
	buf = append(buf, 0)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(seed))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(p.Width))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(p.Height))
	buf = binary.LittleEndian.AppendUint32(buf, gomath.Float32bits(p.Extent))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(p.Noise.Octaves))
	for _, f := range []float32{p.Noise.Gain, p.Noise.Lacunarity, p.Noise.Amplitude, p.Noise.Frequency} {
		buf = binary.LittleEndian.AppendUint32(buf, gomath.Float32bits(f))
	}

	return fmt.Sprintf("%016x", xxhash.Sum64(buf))
}

// Path returns the file backing key.
func (c *Cache) Path(key string) string {
	return filepath.Join(c.dir, key+entryExt)
}

// Load returns the cached mesh for key. A missing entry is a miss, not an error.
func (c *Cache) Load(key string) (*terrain.Mesh, bool, error) {
	path := c.Path(key)
	compressed, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.misses.Add(1)
			c.log.Debug("miss", zap.String("key", key))
			return nil, false, nil
		}
		return nil, false, err
	}

	data, err := c.dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s: %v", ErrCorruptEntry, path, err)
	}
	f, err := formats.ParseTMSH(data)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s: %v", ErrCorruptEntry, path, err)
	}
	m, err := terrain.MeshFromTMSH(f)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s: %v", ErrCorruptEntry, path, err)
	}

	c.hits.Add(1)
	c.log.Debug("hit",
		zap.String("key", key),
		zap.Int("compressed_bytes", len(compressed)),
		zap.Int("vertices", m.VertexCount()))
	return m, true, nil
}

// Store writes m under key. The file is replaced atomically.
func (c *Cache) Store(key string, m *terrain.Mesh) error {
	data, err := m.ToTMSH().Encode()
	if err != nil {
		return err
	}
	compressed := c.enc.EncodeAll(data, make([]byte, 0, len(data)/2))

	tmp, err := os.CreateTemp(c.dir, key+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(compressed); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), c.Path(key)); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	c.log.Debug("stored",
		zap.String("key", key),
		zap.Int("raw_bytes", len(data)),
		zap.Int("compressed_bytes", len(compressed)))
	return nil
}

// Remove deletes the entry for key if present.
func (c *Cache) Remove(key string) error {
	err := os.Remove(c.Path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Stats returns hit and miss counts since Open.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
