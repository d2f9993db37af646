package kummu

import (
	"os"
	"time"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"
)

var swapBucket = []byte("swap")

// boltDevice keeps swap segments in a bolt file. The bucket is recreated on
// open, so nothing survives from an earlier run.
type boltDevice struct {
	db *bolt.DB
}

func openBoltDevice(path string, mode os.FileMode, timeout time.Duration) (*boltDevice, error) {
	db, err := bolt.Open(path, mode, &bolt.Options{Timeout: timeout})
	if err != nil {
		return nil, errors.Wrapf(err, "open swap file %s", path)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(swapBucket) != nil {
			if err := tx.DeleteBucket(swapBucket); err != nil {
				return err
			}
		}
		_, err := tx.CreateBucket(swapBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "reset swap bucket")
	}
	return &boltDevice{db: db}, nil
}

func (d *boltDevice) ReadSegment(n int) ([]byte, error) {
	var data []byte
	err := d.db.View(func(tx *bolt.Tx) error {
		// v is only valid inside the transaction
		if v := tx.Bucket(swapBucket).Get(segmentKey(n)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	return data, err
}

func (d *boltDevice) WriteSegment(n int, data []byte) error {
	return d.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(swapBucket).Put(segmentKey(n), data)
	})
}

func segmentKey(n int) []byte { return []byte{byte(n)} }

func (d *boltDevice) Close() error {
	if err := d.db.Close(); err != nil {
		return errors.Wrap(err, "swap file closed")
	}
	return nil
}
