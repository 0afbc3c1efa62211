// Package board implements the public board: the durable record of
// everything a dealing session publishes, so a member or auditor who joins
// late can still fetch and verify every distribution, decryption and
// reshare for an epoch. A later Put for the same epoch and member index
// replaces the earlier entry. It is backed by go.etcd.io/bbolt, the same
// embedded key-value store drand-drand uses for its beacon and DKG stores.
package board

import (
	"fmt"
	"os"
	"path"
	"strconv"
	"sync"

	bolt "go.etcd.io/bbolt"
	"golang.org/x/xerrors"

	"github.com/brorsson/dhpvss/wire"
)

// FileName is the name of the file the board writes to inside its folder.
const FileName = "dhpvss.board"

// OpenPerm is the permission used when creating the board file.
const OpenPerm = 0660

var (
	distributeBucket = []byte("distribute")
	decryptBucket    = []byte("decrypt")
	reshareBucket    = []byte("reshare")
)

// Board is the public board for all epochs: one top-level bucket per epoch number,
// with nested buckets for each of the three publishable message kinds,
// keyed by committee member index.
type Board struct {
	db *bolt.DB

	// mu guards the bucket-creation path: bbolt serializes writer
	// transactions on its own, but CreateBucketIfNotExists racing two
	// first-writers for the same new epoch can otherwise both observe a
	// missing bucket before either commits, so every Put path takes mu
	// before opening its Update transaction.
	mu sync.Mutex
}

// Open creates or opens the board file inside folder.
func Open(folder string) (*Board, error) {
	if err := os.MkdirAll(folder, 0750); err != nil {
		return nil, xerrors.Errorf("board: mkdir %s: %w", folder, err)
	}
	db, err := bolt.Open(path.Join(folder, FileName), OpenPerm, nil)
	if err != nil {
		return nil, xerrors.Errorf("board: open: %w", err)
	}
	return &Board{db: db}, nil
}

// Close releases the underlying file handle.
func (b *Board) Close() error {
	return b.db.Close()
}

func epochBucketName(epoch uint64) []byte {
	return []byte(strconv.FormatUint(epoch, 10))
}

func (b *Board) ensureBuckets(tx *bolt.Tx, epoch uint64) (*bolt.Bucket, error) {
	epochBkt, err := tx.CreateBucketIfNotExists(epochBucketName(epoch))
	if err != nil {
		return nil, err
	}
	for _, name := range [][]byte{distributeBucket, decryptBucket, reshareBucket} {
		if _, err := epochBkt.CreateBucketIfNotExists(name); err != nil {
			return nil, err
		}
	}
	return epochBkt, nil
}

func memberKey(memberIdx int) []byte {
	return []byte(fmt.Sprintf("%08d", memberIdx))
}

// PutDistribution publishes the dealer's distribution for an epoch. There
// is exactly one per epoch, stored under member index 0.
func (b *Board) PutDistribution(epoch uint64, d *wire.Distribution) error {
	payload, err := wire.Marshal(d)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.db.Update(func(tx *bolt.Tx) error {
		epochBkt, err := b.ensureBuckets(tx, epoch)
		if err != nil {
			return err
		}
		return epochBkt.Bucket(distributeBucket).Put(memberKey(0), payload)
	})
}

// GetDistribution fetches the published distribution for an epoch, if any.
func (b *Board) GetDistribution(epoch uint64) (*wire.Distribution, error) {
	var payload []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		epochBkt := tx.Bucket(epochBucketName(epoch))
		if epochBkt == nil {
			return xerrors.Errorf("board: no such epoch %d", epoch)
		}
		v := epochBkt.Bucket(distributeBucket).Get(memberKey(0))
		if v == nil {
			return xerrors.Errorf("board: no distribution published for epoch %d", epoch)
		}
		payload = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	var d wire.Distribution
	if err := wire.Unmarshal(payload, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// PutDecryptedShare publishes member memberIdx's decrypted share for an
// epoch.
func (b *Board) PutDecryptedShare(epoch uint64, memberIdx int, d *wire.DecryptedShare) error {
	payload, err := wire.Marshal(d)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.db.Update(func(tx *bolt.Tx) error {
		epochBkt, err := b.ensureBuckets(tx, epoch)
		if err != nil {
			return err
		}
		return epochBkt.Bucket(decryptBucket).Put(memberKey(memberIdx), payload)
	})
}

// GetDecryptedShares fetches every decrypted share published so far for an
// epoch, keyed by member index.
func (b *Board) GetDecryptedShares(epoch uint64) (map[int]*wire.DecryptedShare, error) {
	out := make(map[int]*wire.DecryptedShare)
	err := b.db.View(func(tx *bolt.Tx) error {
		epochBkt := tx.Bucket(epochBucketName(epoch))
		if epochBkt == nil {
			return nil
		}
		return epochBkt.Bucket(decryptBucket).ForEach(func(k, v []byte) error {
			idx, err := strconv.Atoi(string(k))
			if err != nil {
				return xerrors.Errorf("board: malformed member key %q: %w", k, err)
			}
			var d wire.DecryptedShare
			if err := wire.Unmarshal(v, &d); err != nil {
				return err
			}
			out[idx] = &d
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PutReshares publishes current-committee member memberIdx's reshare
// output for an epoch transition.
func (b *Board) PutReshares(epoch uint64, memberIdx int, r *wire.Reshares) error {
	payload, err := wire.Marshal(r)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.db.Update(func(tx *bolt.Tx) error {
		epochBkt, err := b.ensureBuckets(tx, epoch)
		if err != nil {
			return err
		}
		return epochBkt.Bucket(reshareBucket).Put(memberKey(memberIdx), payload)
	})
}

// GetReshares fetches every reshare output published so far for an epoch
// transition, keyed by current-committee member index.
func (b *Board) GetReshares(epoch uint64) (map[int]*wire.Reshares, error) {
	out := make(map[int]*wire.Reshares)
	err := b.db.View(func(tx *bolt.Tx) error {
		epochBkt := tx.Bucket(epochBucketName(epoch))
		if epochBkt == nil {
			return nil
		}
		return epochBkt.Bucket(reshareBucket).ForEach(func(k, v []byte) error {
			idx, err := strconv.Atoi(string(k))
			if err != nil {
				return xerrors.Errorf("board: malformed member key %q: %w", k, err)
			}
			var r wire.Reshares
			if err := wire.Unmarshal(v, &r); err != nil {
				return err
			}
			out[idx] = &r
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
