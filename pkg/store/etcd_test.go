package store

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestEtcdStore is an integration test. It requires a running etcd cluster:
//
//	BITE_TEST_ETCD=http://localhost:2379 go test ./pkg/store/...
func TestEtcdStore(t *testing.T) {
	addr := os.Getenv("BITE_TEST_ETCD")
	if addr == "" {
		t.Skip("set BITE_TEST_ETCD=http://localhost:2379 to run etcd integration tests")
	}

	s, err := NewEtcdStore(strings.Split(addr, ","), zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Ping(context.Background()))
	t.Run("Customers", func(t *testing.T) { testCustomerStore(t, s.Customers()) })
	t.Run("Products", func(t *testing.T) { testProductStore(t, s.Products()) })
}

func TestEtcdKeys(t *testing.T) {
	require.Equal(t, "/bite/v1/customers/c-1", key("customers", "c-1"))
	require.Equal(t, "/bite/v1/products/", prefix("products"))
}
