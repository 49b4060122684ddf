// Package bolt stores collected patterns in a bbolt database (embedded B+
// tree). Each run writes into its own bucket; patterns are buffered and
// committed in batches, and an aborted run deletes its bucket so a failed
// run leaves nothing behind.
//
// Value format (varints):
//
//	support: uvarint
//	count:   uvarint
//	items:   [count]× varint
package bolt

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/hupe1980/fimgo/model"
	"github.com/hupe1980/fimgo/sink"
)

// DefaultBatchSize is the number of patterns committed per transaction.
const DefaultBatchSize = 4096

// ErrNoRun is returned when reading a run that was never committed.
var ErrNoRun = errors.New("bolt: run not found")

// Collector implements sink.Collector backed by bbolt.
type Collector struct {
	db        *bolt.DB
	bucket    []byte
	batchSize int

	mu     sync.Mutex
	batch  [][]byte
	n      int64
	err    error
	closed bool
}

// Open opens (or creates) the database at path and starts a fresh run.
// A previous run with the same name is replaced.
func Open(path, run string) (*Collector, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}

	c := &Collector{db: db, bucket: []byte(run), batchSize: DefaultBatchSize}

	err = db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(c.bucket) != nil {
			if err := tx.DeleteBucket(c.bucket); err != nil {
				return err
			}
		}
		_, err := tx.CreateBucket(c.bucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bbolt create run %q: %w", run, err)
	}

	return c, nil
}

func (c *Collector) Collect(support int, pattern []int32) {
	v := encode(support, pattern)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.err != nil || c.closed {
		return
	}
	c.batch = append(c.batch, v)
	if len(c.batch) >= c.batchSize {
		c.err = c.flush()
	}
}

// flush commits the pending batch. Callers hold c.mu.
func (c *Collector) flush() error {
	if len(c.batch) == 0 {
		return nil
	}

	err := c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(c.bucket)
		for _, v := range c.batch {
			seq, err := b.NextSequence()
			if err != nil {
				return err
			}
			if err := b.Put(binary.BigEndian.AppendUint64(nil, seq), v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("bbolt commit: %w", err)
	}

	c.n += int64(len(c.batch))
	c.batch = c.batch[:0]

	return nil
}

// Close commits pending patterns and closes the database.
func (c *Collector) Close() (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return c.n, sink.ErrClosed
	}
	c.closed = true

	if c.err == nil {
		c.err = c.flush()
	}
	if err := c.db.Close(); err != nil && c.err == nil {
		c.err = err
	}

	return c.n, c.err
}

// Abort deletes the run and closes the database.
func (c *Collector) Abort() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.batch = nil

	err := c.db.Update(func(tx *bolt.Tx) error {
		return tx.DeleteBucket(c.bucket)
	})
	if cerr := c.db.Close(); err == nil {
		err = cerr
	}

	return err
}

// Read returns the patterns of a run in collection order.
func Read(path, run string) ([]model.Pattern, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	defer db.Close()

	var out []model.Pattern
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(run))
		if b == nil {
			return fmt.Errorf("%w: %q", ErrNoRun, run)
		}
		return b.ForEach(func(_, v []byte) error {
			p, err := decode(v)
			if err != nil {
				return err
			}
			out = append(out, p)
			return nil
		})
	})

	return out, err
}

func encode(support int, pattern []int32) []byte {
	v := make([]byte, 0, 2*binary.MaxVarintLen32+len(pattern)*binary.MaxVarintLen32)
	v = binary.AppendUvarint(v, uint64(support))
	v = binary.AppendUvarint(v, uint64(len(pattern)))
	for _, it := range pattern {
		v = binary.AppendVarint(v, int64(it))
	}
	return v
}

func decode(v []byte) (model.Pattern, error) {
	support, n := binary.Uvarint(v)
	if n <= 0 {
		return model.Pattern{}, errors.New("bolt: corrupt support")
	}
	v = v[n:]

	count, n := binary.Uvarint(v)
	if n <= 0 || count > uint64(len(v)) {
		return model.Pattern{}, errors.New("bolt: corrupt item count")
	}
	v = v[n:]

	p := model.Pattern{Support: int(support)}
	if count > 0 {
		p.Items = make([]int32, count)
	}
	for i := range p.Items {
		it, n := binary.Varint(v)
		if n <= 0 {
			return model.Pattern{}, errors.New("bolt: corrupt item")
		}
		p.Items[i] = int32(it)
		v = v[n:]
	}

	return p, nil
}
