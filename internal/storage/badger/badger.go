// badger — встраиваемое хранилище постов на BadgerDB.
// Используется как локальный источник ленты без внешней БД (dev/offline).
//
// Раскладка ключей:
//   - post:<id big-endian uint64> -> JSON models.Post;
//   - seq:post                   -> последний выданный id (big-endian uint64).
//
// Big-endian ключи дают порядок по id, обратная итерация — «сначала новые».
package badger

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SonGokuFan1996/NeuroNet/internal/models"
	"github.com/SonGokuFan1996/NeuroNet/internal/storage"

	"github.com/dgraph-io/badger/v4"
)

const (
	postKeyPrefix = "post:"
	postSeqKey    = "seq:post"
)

// Storage — посты ленты в BadgerDB.
type Storage struct {
	db  *badger.DB
	now func() time.Time
}

// New открывает (или создаёт) базу в каталоге path.
func New(path string) (*Storage, error) {
	const op = "storage.badger.New"

	db, err := badger.Open(badger.DefaultOptions(path).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db, now: time.Now}, nil
}

// Close закрывает базу.
func (s *Storage) Close() error {
	return s.db.Close()
}

// ListPosts возвращает до limit постов (limit <= 0 — все), новые первыми (по убыванию id).
func (s *Storage) ListPosts(ctx context.Context, limit int) ([]models.Post, error) {
	const op = "storage.badger.ListPosts"

	posts := make([]models.Post, 0, max(limit, 0))
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(postKeyPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		// Обратная итерация начинается с ключа, большего любого post:<id>.
		for it.Seek(append([]byte(postKeyPrefix), 0xFF)); it.Valid() && (limit <= 0 || len(posts) < limit); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var p models.Post
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &p)
			}); err != nil {
				return fmt.Errorf("unmarshal post: %w", err)
			}

			posts = append(posts, p)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return posts, nil
}

// InsertPost сохраняет один пост, назначая ему следующий id и created_at.
func (s *Storage) InsertPost(ctx context.Context, post models.Post) error {
	const op = "storage.badger.InsertPost"

	if err := s.insert(ctx, []models.Post{post}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// InsertPosts сохраняет пачку постов в одной транзакции.
func (s *Storage) InsertPosts(ctx context.Context, posts []models.Post) error {
	const op = "storage.badger.InsertPosts"

	if len(posts) == 0 {
		return nil
	}

	if err := s.insert(ctx, posts); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DeletePost удаляет пост по id. Отсутствие записи — storage.ErrNotFound.
func (s *Storage) DeletePost(ctx context.Context, id int64) error {
	const op = "storage.badger.DeletePost"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		key := postKey(id)

		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}

		return txn.Delete(key)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DeleteAllPosts удаляет все посты (id > 0). Счётчик id не сбрасывается.
func (s *Storage) DeleteAllPosts(ctx context.Context) (int64, error) {
	const op = "storage.badger.DeleteAllPosts"

	var keys [][]byte
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(postKeyPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%s: scan: %w", op, err)
	}

	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for _, k := range keys {
		if err := wb.Delete(k); err != nil {
			return 0, fmt.Errorf("%s: delete: %w", op, err)
		}
	}

	if err := wb.Flush(); err != nil {
		return 0, fmt.Errorf("%s: flush: %w", op, err)
	}

	return int64(len(keys)), nil
}

func (s *Storage) insert(ctx context.Context, posts []models.Post) error {
	for i, p := range posts {
		if p.Likes < 0 {
			return fmt.Errorf("item %d negative likes: %w", i, storage.ErrInvalidArgument)
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	createdAt := s.now().UTC().Format(time.RFC3339)

	return s.db.Update(func(txn *badger.Txn) error {
		for _, p := range posts {
			id, err := nextID(txn)
			if err != nil {
				return fmt.Errorf("next id: %w", err)
			}

			p.ID = &id
			p.CreatedAt = &createdAt
			p.IsLikedByMe = false

			data, err := json.Marshal(p)
			if err != nil {
				return fmt.Errorf("marshal post: %w", err)
			}

			if err := txn.Set(postKey(id), data); err != nil {
				return err
			}
		}

		return nil
	})
}

// nextID выдаёт следующий id в рамках транзакции. Первый id — 1.
func nextID(txn *badger.Txn) (int64, error) {
	var id uint64

	item, err := txn.Get([]byte(postSeqKey))
	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
	case err != nil:
		return 0, err
	default:
		if err := item.Value(func(val []byte) error {
			if len(val) != 8 {
				return fmt.Errorf("corrupted sequence value of %d bytes", len(val))
			}
			id = binary.BigEndian.Uint64(val)
			return nil
		}); err != nil {
			return 0, err
		}
	}

	id++

	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, id)
	if err := txn.Set([]byte(postSeqKey), buf); err != nil {
		return 0, err
	}

	return int64(id), nil
}

func postKey(id int64) []byte {
	key := make([]byte, len(postKeyPrefix)+8)
	copy(key, postKeyPrefix)
	binary.BigEndian.PutUint64(key[len(postKeyPrefix):], uint64(id))

	return key
}

var _ storage.PostsStorage = (*Storage)(nil)
