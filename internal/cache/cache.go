package cache

import (
	"encoding/json"
	"time"

	bolt "github.com/boltdb/bolt"
	inerr "github.com/ivanpodgorny/clubhost/internal/errors"
)

// Cache хранит записи с ограниченным временем жизни во встраиваемой
// базе bolt. Протухшие записи считаются отсутствующими и перезаписываются
// при следующем Set.
type Cache struct {
	db  *bolt.DB
	ttl time.Duration
	now func() time.Time
}

type entry struct {
	Value     json.RawMessage `json:"value"`
	ExpiresAt time.Time       `json:"expires_at"`
}

const bucketName = "entries"

func New(path string, ttl time.Duration) (*Cache, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))

		return err
	}); err != nil {
		_ = db.Close()

		return nil, err
	}

	return &Cache{
		db:  db,
		ttl: ttl,
		now: time.Now,
	}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// Set сохраняет значение под ключом key со временем жизни кеша.
func (c *Cache) Set(key string, v any) error {
	value, err := json.Marshal(v)
	if err != nil {
		return err
	}

	b, err := json.Marshal(entry{
		Value:     value,
		ExpiresAt: c.now().Add(c.ttl),
	})
	if err != nil {
		return err
	}

	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(key), b)
	})
}

// Get читает значение под ключом key в v. Если записи нет или ее время
// жизни истекло, возвращает ошибку errors.ErrCacheMiss.
func (c *Cache) Get(key string, v any) error {
	var e entry
	if err := c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName)).Get([]byte(key))
		if b == nil {
			return inerr.ErrCacheMiss
		}

		return json.Unmarshal(b, &e)
	}); err != nil {
		return err
	}

	if c.now().After(e.ExpiresAt) {
		return inerr.ErrCacheMiss
	}

	return json.Unmarshal(e.Value, v)
}

// Delete удаляет запись под ключом key. Отсутствие записи не является ошибкой.
func (c *Cache) Delete(key string) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Delete([]byte(key))
	})
}
