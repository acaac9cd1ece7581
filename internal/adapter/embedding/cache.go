package embedding

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"go.etcd.io/bbolt"
)

var (
	bucketWords = []byte("words")
	bucketMeta  = []byte("meta")
	keySource   = []byte("source")
	keyDim      = []byte("dimension")

	errCorruptCache = errors.New("corrupt cache entry")
)

// Cache is a BoltDB parse cache for embedding tables. Parsing a large
// GloVe text file takes far longer than reading back the binary form, so
// the parsed table is stored keyed by a fingerprint of the source file
// and reused until the source changes.
type Cache struct {
	db *bbolt.DB
}

// OpenCache opens or creates the cache database at path.
func OpenCache(path string) (*Cache, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedding cache: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketWords, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Load returns the cached table if it was stored for the given source
// fingerprint. A stale fingerprint or a corrupted entry is a miss, not
// an error.
func (c *Cache) Load(fingerprint string) (*Table, bool, error) {
	var table *Table
	err := c.db.View(func(tx *bbolt.Tx) error {
		meta := tx.Bucket(bucketMeta)
		if string(meta.Get(keySource)) != fingerprint {
			return nil
		}
		dim, err := strconv.Atoi(string(meta.Get(keyDim)))
		if err != nil || dim <= 0 {
			return nil
		}

		t := &Table{dimension: dim, vectors: make(map[string][]float32)}
		err = tx.Bucket(bucketWords).ForEach(func(k, v []byte) error {
			vec, err := decodeVector(v)
			if err != nil || len(vec) != dim {
				return errCorruptCache
			}
			t.vectors[string(k)] = vec
			return nil
		})
		if err != nil {
			return nil
		}
		if len(t.vectors) > 0 {
			table = t
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to read embedding cache: %w", err)
	}
	return table, table != nil, nil
}

// Store replaces the cache contents with table under the given source
// fingerprint. The swap happens in one transaction so readers never see
// a half-written table.
func (c *Cache) Store(fingerprint string, table *Table) error {
	return c.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketWords); err != nil {
			return fmt.Errorf("failed to reset words bucket: %w", err)
		}
		words, err := tx.CreateBucket(bucketWords)
		if err != nil {
			return fmt.Errorf("failed to create words bucket: %w", err)
		}

		for word, vec := range table.vectors {
			if err := words.Put([]byte(word), encodeVector(vec)); err != nil {
				return err
			}
		}

		meta := tx.Bucket(bucketMeta)
		if err := meta.Put(keySource, []byte(fingerprint)); err != nil {
			return err
		}
		return meta.Put(keyDim, []byte(strconv.Itoa(table.dimension)))
	})
}

// Fingerprint identifies the current state of the source table file by
// size and modification time.
func Fingerprint(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return fmt.Sprintf("%d:%d", info.Size(), info.ModTime().UnixNano()), nil
}

// LoadTableCached loads the table from cachePath when it is current,
// parsing the text file at path and refreshing the cache otherwise.
func LoadTableCached(path, cachePath string) (*Table, error) {
	fp, err := Fingerprint(path)
	if err != nil {
		return nil, err
	}

	cache, err := OpenCache(cachePath)
	if err != nil {
		return nil, err
	}
	defer cache.Close()

	if table, ok, err := cache.Load(fp); err != nil {
		return nil, err
	} else if ok {
		return table, nil
	}

	table, err := LoadTable(path)
	if err != nil {
		return nil, err
	}
	if err := cache.Store(fp, table); err != nil {
		return nil, err
	}
	return table, nil
}

// encodeVector packs a vector as a little-endian sequence of IEEE 754
// float32 values. The length is implied by the blob size.
func encodeVector(vec []float32) []byte {
	b := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}
	return b
}

func decodeVector(b []byte) ([]float32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("invalid vector blob length %d", len(b))
	}
	vec := make([]float32, len(b)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return vec, nil
}
