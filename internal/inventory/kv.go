package inventory

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"time"

	"kit-allocator/internal/logging"
	"kit-allocator/internal/models"

	"github.com/nats-io/nats.go/jetstream"
)

var validKey = regexp.MustCompile(`^[-/_=a-zA-Z0-9]+(\.[-/_=a-zA-Z0-9]+)*$`)

// KVStore keeps one JSON document per asset in a JetStream KV bucket.
// The entry revision is the asset version, and writes go through
// KeyValue.Update with the expected revision.
//
// Employee claims live in a second bucket whose entries expire after
// DefaultClaimTTL.
type KVStore struct {
	kv     jetstream.KeyValue
	claims jetstream.KeyValue
	logger logging.Logger
	now    func() time.Time
}

var (
	_ Store           = (*KVStore)(nil)
	_ EmployeeClaimer = (*KVStore)(nil)
)

func NewKVStore(kv, claims jetstream.KeyValue, logger logging.Logger) *KVStore {
	return &KVStore{kv: kv, claims: claims, logger: logging.OrNop(logger), now: time.Now}
}

// OpenKVStore creates or opens the inventory bucket and its claims bucket
// (named bucket + "_claims") and wraps them.
func OpenKVStore(ctx context.Context, js jetstream.JetStream, bucket string, logger logging.Logger) (*KVStore, error) {
	kv, err := ensureBucket(ctx, js, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "starter kit inventory",
		History:     5,
	})
	if err != nil {
		return nil, fmt.Errorf("open inventory bucket %s: %w", bucket, err)
	}
	claims, err := ensureBucket(ctx, js, jetstream.KeyValueConfig{
		Bucket:      bucket + "_claims",
		Description: "in-progress allocations per employee",
		History:     1,
		TTL:         DefaultClaimTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("open claims bucket %s_claims: %w", bucket, err)
	}
	return NewKVStore(kv, claims, logger), nil
}

// ensureBucket creates the bucket or opens it. Several service instances
// may start at once, so a create that loses with ErrBucketExists falls back
// to opening the bucket.
func ensureBucket(ctx context.Context, js jetstream.JetStream, cfg jetstream.KeyValueConfig) (jetstream.KeyValue, error) {
	kv, err := js.CreateKeyValue(ctx, cfg)
	if errors.Is(err, jetstream.ErrBucketExists) {
		kv, err = js.KeyValue(ctx, cfg.Bucket)
	}
	return kv, err
}

// ClaimEmployee creates the employee's claim key. The key is the hex of the
// normalized id so any id is a valid KV key.
func (s *KVStore) ClaimEmployee(ctx context.Context, employeeID string) (func(context.Context) error, error) {
	key := hex.EncodeToString([]byte(claimKey(employeeID)))
	rev, err := s.claims.Create(ctx, key, []byte(newClaimToken(s.now())))
	if errors.Is(err, jetstream.ErrKeyExists) {
		return nil, fmt.Errorf("%w: %s", ErrEmployeeClaimed, employeeID)
	}
	if err != nil {
		return nil, fmt.Errorf("claim employee %s: %w", employeeID, err)
	}

	release := func(ctx context.Context) error {
		// LastRevision keeps an expired claim's owner from deleting a newer one.
		if err := s.claims.Delete(ctx, key, jetstream.LastRevision(rev)); err != nil {
			return fmt.Errorf("release employee %s: %w", employeeID, err)
		}
		return nil
	}
	return release, nil
}

func (s *KVStore) ListAssets(ctx context.Context) ([]models.Asset, error) {
	keys, err := s.kv.Keys(ctx)
	if errors.Is(err, jetstream.ErrNoKeysFound) {
		return []models.Asset{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list inventory keys: %w", err)
	}

	assets := make([]models.Asset, 0, len(keys))
	for _, key := range keys {
		a, err := s.GetAsset(ctx, key)
		if errors.Is(err, ErrAssetNotFound) {
			// deleted between Keys and Get
			continue
		}
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}

	sort.SliceStable(assets, func(i, j int) bool {
		if !assets[i].CreatedAt.Equal(assets[j].CreatedAt) {
			return assets[i].CreatedAt.Before(assets[j].CreatedAt)
		}
		return assets[i].ID < assets[j].ID
	})
	return assets, nil
}

func (s *KVStore) GetAsset(ctx context.Context, id string) (models.Asset, error) {
	if !validKey.MatchString(id) {
		return models.Asset{}, fmt.Errorf("%w: %s", ErrAssetNotFound, id)
	}

	entry, err := s.kv.Get(ctx, id)
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return models.Asset{}, fmt.Errorf("%w: %s", ErrAssetNotFound, id)
	}
	if err != nil {
		return models.Asset{}, fmt.Errorf("get asset %s: %w", id, err)
	}
	return s.decode(entry)
}

func (s *KVStore) CreateAsset(ctx context.Context, asset models.Asset) (models.Asset, error) {
	asset, err := prepareNew(asset)
	if err != nil {
		return models.Asset{}, err
	}
	if !validKey.MatchString(asset.ID) {
		return models.Asset{}, fmt.Errorf("%w: id %q is not a valid key", models.ErrInvalidAsset, asset.ID)
	}

	now := s.now().UTC()
	asset.CreatedAt = now
	asset.UpdatedAt = now

	data, err := json.Marshal(asset)
	if err != nil {
		return models.Asset{}, fmt.Errorf("encode asset %s: %w", asset.ID, err)
	}

	rev, err := s.kv.Create(ctx, asset.ID, data)
	if errors.Is(err, jetstream.ErrKeyExists) {
		return models.Asset{}, fmt.Errorf("%w: %s", ErrAssetExists, asset.ID)
	}
	if err != nil {
		return models.Asset{}, fmt.Errorf("create asset %s: %w", asset.ID, err)
	}
	asset.Version = rev
	return asset, nil
}

func (s *KVStore) UpdateAsset(ctx context.Context, id string, expectedVersion uint64, patch models.AssetPatch) (models.Asset, error) {
	current, err := s.GetAsset(ctx, id)
	if err != nil {
		return models.Asset{}, err
	}
	if current.Version != expectedVersion {
		return models.Asset{}, fmt.Errorf("%w: %s at version %d, expected %d", ErrVersionConflict, id, current.Version, expectedVersion)
	}

	next := patch.Apply(current)
	if err := next.Validate(); err != nil {
		return models.Asset{}, err
	}
	next.UpdatedAt = s.now().UTC()

	data, err := json.Marshal(next)
	if err != nil {
		return models.Asset{}, fmt.Errorf("encode asset %s: %w", id, err)
	}

	rev, err := s.kv.Update(ctx, id, data, expectedVersion)
	if isWrongLastSequence(err) {
		s.logger.Debug("inventory revision moved", "asset_id", id, "expected", expectedVersion)
		return models.Asset{}, fmt.Errorf("%w: %s changed after revision %d", ErrVersionConflict, id, expectedVersion)
	}
	if err != nil {
		return models.Asset{}, fmt.Errorf("update asset %s: %w", id, err)
	}
	next.Version = rev
	return next, nil
}

func (s *KVStore) decode(entry jetstream.KeyValueEntry) (models.Asset, error) {
	var a models.Asset
	if err := json.Unmarshal(entry.Value(), &a); err != nil {
		return models.Asset{}, fmt.Errorf("decode asset %s: %w", entry.Key(), err)
	}
	if err := checkEnums(a); err != nil {
		return models.Asset{}, err
	}
	a.ID = entry.Key()
	a.Version = entry.Revision()
	return a, nil
}

func isWrongLastSequence(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, jetstream.ErrKeyExists) {
		return true
	}
	var apiErr *jetstream.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode == jetstream.JSErrCodeStreamWrongLastSequence
}
