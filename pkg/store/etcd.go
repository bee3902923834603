package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
	"go.uber.org/zap"

	"github.com/bite-admin/bite/pkg/model"
)

// All bite keys live under /bite/v1/ to avoid collisions with other etcd
// tenants.
const keyPrefix = "/bite/v1"

func key(kind, id string) string {
	return fmt.Sprintf("%s/%s/%s", keyPrefix, kind, id)
}

func prefix(kind string) string {
	return fmt.Sprintf("%s/%s/", keyPrefix, kind)
}

// EtcdStore is an etcd-backed Store. Records are JSON values keyed by id.
// List orders records by the revision that created their key.
type EtcdStore struct {
	client    *clientv3.Client
	customers *etcdRecords[model.Customer]
	products  *etcdRecords[model.Product]
}

var _ Store = (*EtcdStore)(nil)

// NewEtcdStore dials the etcd cluster at endpoints. logger may be nil. The
// caller must call Close when finished.
func NewEtcdStore(endpoints []string, logger *zap.Logger) (*EtcdStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	client, err := clientv3.New(clientv3.Config{
		Endpoints:   endpoints,
		DialTimeout: 5 * time.Second,
		Logger:      logger.Named("etcd"),
	})
	if err != nil {
		return nil, fmt.Errorf("etcd dial: %w", err)
	}
	return &EtcdStore{
		client:    client,
		customers: &etcdRecords[model.Customer]{client: client},
		products:  &etcdRecords[model.Product]{client: client},
	}, nil
}

func (s *EtcdStore) Customers() RecordStore[model.Customer] { return s.customers }
func (s *EtcdStore) Products() RecordStore[model.Product]   { return s.products }

// Ping checks that at least one endpoint answers a status request.
func (s *EtcdStore) Ping(ctx context.Context) error {
	var lastErr error
	for _, ep := range s.client.Endpoints() {
		if _, err := s.client.Status(ctx, ep); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no etcd endpoints configured")
	}
	return fmt.Errorf("etcd status: %w", lastErr)
}

// Close releases the underlying etcd client connection.
func (s *EtcdStore) Close() error {
	return s.client.Close()
}

type etcdRecords[T model.Record] struct {
	client *clientv3.Client
}

func (s *etcdRecords[T]) kind() string {
	var zero T
	return zero.Kind() + "s"
}

func (s *etcdRecords[T]) List(ctx context.Context) ([]T, error) {
	pfx := prefix(s.kind())
	resp, err := s.client.Get(ctx, pfx, clientv3.WithPrefix())
	if err != nil {
		return nil, fmt.Errorf("etcd list %q: %w", pfx, err)
	}
	kvs := resp.Kvs
	sort.SliceStable(kvs, func(i, j int) bool { return kvs[i].CreateRevision < kvs[j].CreateRevision })

	out := make([]T, 0, len(kvs))
	for _, kv := range kvs {
		var item T
		if err := json.Unmarshal(kv.Value, &item); err != nil {
			return nil, fmt.Errorf("unmarshal %q: %w", string(kv.Key), err)
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *etcdRecords[T]) Get(ctx context.Context, id string) (T, error) {
	var out T
	k := key(s.kind(), id)
	resp, err := s.client.Get(ctx, k)
	if err != nil {
		return out, fmt.Errorf("etcd get %q: %w", k, err)
	}
	if len(resp.Kvs) == 0 {
		return out, notFound[T](id)
	}
	if err := json.Unmarshal(resp.Kvs[0].Value, &out); err != nil {
		return out, fmt.Errorf("unmarshal %q: %w", k, err)
	}
	return out, nil
}

// Create writes the record only if its key does not exist yet.
func (s *etcdRecords[T]) Create(ctx context.Context, record T) error {
	k := key(s.kind(), record.RecordID())
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	resp, err := s.client.Txn(ctx).
		If(clientv3.Compare(clientv3.Version(k), "=", 0)).
		Then(clientv3.OpPut(k, string(data))).
		Commit()
	if err != nil {
		return fmt.Errorf("etcd txn create %q: %w", k, err)
	}
	if !resp.Succeeded {
		return alreadyExists[T](record.RecordID())
	}
	return nil
}

// Update overwrites the record only if its key exists.
func (s *etcdRecords[T]) Update(ctx context.Context, record T) error {
	k := key(s.kind(), record.RecordID())
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	resp, err := s.client.Txn(ctx).
		If(clientv3.Compare(clientv3.Version(k), ">", 0)).
		Then(clientv3.OpPut(k, string(data))).
		Commit()
	if err != nil {
		return fmt.Errorf("etcd txn update %q: %w", k, err)
	}
	if !resp.Succeeded {
		return notFound[T](record.RecordID())
	}
	return nil
}

func (s *etcdRecords[T]) Delete(ctx context.Context, id string) error {
	k := key(s.kind(), id)
	resp, err := s.client.Delete(ctx, k)
	if err != nil {
		return fmt.Errorf("etcd delete %q: %w", k, err)
	}
	if resp.Deleted == 0 {
		return notFound[T](id)
	}
	return nil
}
