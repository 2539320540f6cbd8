package redis

import (
	"context"
	"fmt"
	"strconv"

	goredis "github.com/redis/go-redis/v9"

	"github.com/orangesnowtech/dxi-reactions/internal/domain"
)

// applyReactionScript atomically applies one mutation to a record hash:
// increment the incr field, decrement the decr field floored at zero, then
// read back every field of the deployment's kind set. Running it as one script
// removes the read-then-write race between concurrent sessions.
// ARGV: [1]=incr field ('' for none), [2]=decr field ('' for none), [3..]=all kind fields
var applyReactionScript = goredis.NewScript(`
local function count(field)
    return tonumber(redis.call('HGET', KEYS[1], field)) or 0
end
if ARGV[1] ~= '' then
    redis.call('HINCRBY', KEYS[1], ARGV[1], 1)
end
if ARGV[2] ~= '' then
    local v = count(ARGV[2]) - 1
    if v < 0 then v = 0 end
    redis.call('HSET', KEYS[1], ARGV[2], v)
end
local out = {}
for i = 3, #ARGV do
    out[#out + 1] = count(ARGV[i])
end
return out
`)

// ReactionStore keeps one hash per content item, fields keyed by reaction kind.
type ReactionStore struct {
	rdb *goredis.Client
}

func NewReactionStore(rdb *goredis.Client) *ReactionStore {
	return &ReactionStore{rdb: rdb}
}

func (s *ReactionStore) GetCounts(ctx context.Context, itemID string, variant domain.Variant) (domain.Counts, error) {
	kinds := variant.Kinds()
	fields := make([]string, len(kinds))
	for i, k := range kinds {
		fields[i] = string(k)
	}

	vals, err := s.rdb.HMGet(ctx, reactionKey(itemID), fields...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read reaction record: %w", err)
	}

	counts := domain.ZeroCounts(variant)
	for i, k := range kinds {
		if vals[i] == nil {
			continue
		}
		raw, ok := vals[i].(string)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			continue // corrupt field reads as zero
		}
		counts[k] = n
	}
	return counts, nil
}

func (s *ReactionStore) Apply(ctx context.Context, itemID string, incr, decr domain.Kind, variant domain.Variant) (domain.Counts, error) {
	kinds := variant.Kinds()
	argv := make([]any, 0, len(kinds)+2)
	argv = append(argv, string(incr), string(decr))
	for _, k := range kinds {
		argv = append(argv, string(k))
	}

	result, err := applyReactionScript.Run(ctx, s.rdb, []string{reactionKey(itemID)}, argv...).Slice()
	if err != nil {
		return nil, fmt.Errorf("apply reaction script failed: %w", err)
	}
	if len(result) != len(kinds) {
		return nil, fmt.Errorf("apply reaction script returned %d fields, want %d", len(result), len(kinds))
	}

	counts := domain.ZeroCounts(variant)
	for i, k := range kinds {
		n, ok := result[i].(int64)
		if !ok {
			return nil, fmt.Errorf("apply reaction script returned non-integer for %s: %v", k, result[i])
		}
		counts[k] = int(n)
	}
	return counts, nil
}

func (s *ReactionStore) Reset(ctx context.Context, itemID string) error {
	if err := s.rdb.Del(ctx, reactionKey(itemID)).Err(); err != nil {
		return fmt.Errorf("failed to reset reaction record: %w", err)
	}
	return nil
}

func reactionKey(itemID string) string {
	return "reactions:" + itemID
}
