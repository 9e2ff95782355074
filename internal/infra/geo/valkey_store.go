package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"
)

// ValkeyStore keeps the last fix in a Valkey-compatible database so restarts
// and sibling processes reuse it.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "outfit"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

// Last implements PositionStore.
func (s *ValkeyStore) Last(ctx context.Context) (Fix, bool, error) {
	cmd := s.client.B().Get().Key(s.fixKey()).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return Fix{}, false, nil
		}
		return Fix{}, false, err
	}
	var fix Fix
	if err := json.Unmarshal([]byte(payload), &fix); err != nil {
		return Fix{}, false, err
	}
	return fix, true, nil
}

// Save implements PositionStore.
func (s *ValkeyStore) Save(ctx context.Context, fix Fix, ttl time.Duration) error {
	payload, err := json.Marshal(fix)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.fixKey()).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) fixKey() string {
	return fmt.Sprintf("%s:geo:last_fix", s.prefix)
}

var _ PositionStore = (*ValkeyStore)(nil)
