package relay

import (
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/speps/go-hashids/v2"
)

// ReferenceGenerator issues payment references of the form PREFIX-<unix ms>-<hash>.
// The hash encodes a per-process counter and a boot nonce, so two calls never collide
// even within the same millisecond.
type ReferenceGenerator struct {
	prefix string
	hd     *hashids.HashID
	nonce  int64
	seq    atomic.Int64
	now    func() time.Time
}

func NewReferenceGenerator(prefix, salt string) (*ReferenceGenerator, error) {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = 6

	h, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, fmt.Errorf("reference hashids: %w", err)
	}

	if prefix == "" {
		prefix = DefaultRefPrefix
	}

	return &ReferenceGenerator{
		prefix: prefix,
		hd:     h,
		nonce:  int64(uuid.New().ID()),
		now:    time.Now,
	}, nil
}

func (g *ReferenceGenerator) Next() string {
	n := g.seq.Add(1)

	suffix, err := g.hd.EncodeInt64([]int64{n, g.nonce})
	if err != nil {
		suffix = strconv.FormatInt(n, 36) + strconv.FormatInt(g.nonce, 36)
	}

	return fmt.Sprintf("%s-%d-%s", g.prefix, g.now().UnixMilli(), suffix)
}
