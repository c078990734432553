package forge

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger"
	"go.uber.org/zap"
)

// Cache stores compiled artifacts keyed by a hash of the DSL source,
// the compiler version and the generation options. The pipeline is
// deterministic, so a hit is byte-identical to a fresh compile.
type Cache struct {
	log *zap.Logger
	db  *badger.DB
}

func OpenCache(log *zap.Logger, dir string) (*Cache, error) {
	options := badger.DefaultOptions(dir)
	options.Logger = &badgerLogger{l: log}
	db, err := badger.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}
	return &Cache{
		log: log,
		db:  db,
	}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

func (c *Cache) Key(source []byte, pkg string) []byte {
	h := xxhash.New()
	h.WriteString(Version)
	h.WriteString("\x00")
	h.WriteString(pkg)
	h.WriteString("\x00")
	h.Write(source)
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, h.Sum64())
	return key
}

func (c *Cache) Get(key []byte) (*CompileResult, bool) {
	var data []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false
	}
	if err != nil {
		c.log.Warn("Cache read failed", zap.Error(err))
		return nil, false
	}
	var result CompileResult
	if err := json.Unmarshal(data, &result); err != nil {
		c.log.Warn("Cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return &result, true
}

func (c *Cache) Put(key []byte, result *CompileResult) {
	data, err := json.Marshal(result)
	if err != nil {
		c.log.Warn("Cache encode failed", zap.Error(err))
		return
	}
	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
	if err != nil {
		c.log.Warn("Cache write failed", zap.Error(err))
	}
}

type badgerLogger struct {
	l *zap.Logger
}

func (l badgerLogger) Errorf(msg string, args ...any) {
	l.l.Error(fmt.Sprintf(msg, args...))
}

func (l badgerLogger) Warningf(msg string, args ...any) {
	l.l.Warn(fmt.Sprintf(msg, args...))
}

func (l badgerLogger) Infof(msg string, args ...any) {
	l.l.Info(fmt.Sprintf(msg, args...))
}

func (l badgerLogger) Debugf(msg string, args ...any) {
	l.l.Debug(fmt.Sprintf(msg, args...))
}
