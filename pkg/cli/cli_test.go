package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bite-admin/bite/pkg/api"
	"github.com/bite-admin/bite/pkg/model"
)

var (
	fixedNow   = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	configPath string
)

// setupTest injects a fresh mock client and writes a config file with the
// given page size. It returns the client so tests can inspect or break it.
func setupTest(t *testing.T, pageSize int) *api.MockClient {
	t.Helper()
	client := api.NewMockClient()
	SetClient(client)
	SetFormatter(nil)
	now = func() time.Time { return fixedNow }
	stdin = strings.NewReader("")
	resetFlags(rootCmd)

	configPath = filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("page_size: "+strconv.Itoa(pageSize)+"\n"), 0o600))

	t.Cleanup(func() {
		SetClient(nil)
		now = time.Now
		stdin = os.Stdin
	})
	return client
}

// resetFlags restores every flag to its default. cobra keeps flag values in
// package variables across Execute calls.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func executeCommand(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	root := RootCmd()
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(append([]string{"--config", configPath}, args...))
	err := root.Execute()
	resetFlags(root)
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	setupTest(t, 10)
	out, err := executeCommand("version")
	require.NoError(t, err)
	assert.Contains(t, out, "bitectl version")
	assert.Contains(t, out, "API server: bite-api v0.1.0 (mock)")
}

func TestVersionFormats(t *testing.T) {
	setupTest(t, 10)

	out, err := executeCommand("version", "-o", "json")
	require.NoError(t, err)
	var info versionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, bitectlVersion, info.Client)
	assert.Equal(t, "bite-api v0.1.0 (mock)", info.Server)
	assert.NotEmpty(t, info.Go)

	out, err = executeCommand("version", "--client")
	require.NoError(t, err)
	assert.Contains(t, out, "bitectl version "+bitectlVersion)
	assert.NotContains(t, out, "API server:")
}

func TestCustomerList(t *testing.T) {
	setupTest(t, 10)
	out, err := executeCommand("customer", "list")
	require.NoError(t, err)
	for _, name := range []string{"Ayse Yilmaz", "Mehmet Demir", "Elif Kaya"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Page 1 of 1 (3 total)")
}

func TestCustomerListFilters(t *testing.T) {
	setupTest(t, 10)

	out, err := executeCommand("customer", "list", "--gender", "male")
	require.NoError(t, err)
	assert.Contains(t, out, "Mehmet Demir")
	assert.NotContains(t, out, "Ayse Yilmaz")

	out, err = executeCommand("customers", "list", "--name", "AY", "-o", "json")
	require.NoError(t, err)
	var got []model.Customer
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Ayse Yilmaz", got[0].Name)
	assert.Equal(t, "Elif Kaya", got[1].Name)
}

func TestCustomerListPaging(t *testing.T) {
	setupTest(t, 2)

	out, err := executeCommand("customer", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "Mehmet Demir")
	assert.Contains(t, out, "Page 1 of 2 (3 total)")

	out, err = executeCommand("customer", "list", "--page", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Mehmet Demir")
	assert.NotContains(t, out, "Elif Kaya")
	assert.Contains(t, out, "Page 2 of 2 (3 total)")

	out, err = executeCommand("customer", "list", "--page", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "Page 2 of 2")
}

func TestCustomerGet(t *testing.T) {
	setupTest(t, 10)

	out, err := executeCommand("customer", "get", "cust-002")
	require.NoError(t, err)
	assert.Contains(t, out, "mehmet@example.com")

	out, err = executeCommand("customer", "get", "cust-001", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "name: Ayse Yilmaz")
}

func TestCustomerGetNotFound(t *testing.T) {
	setupTest(t, 10)
	_, err := executeCommand("customer", "get", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get customer")
	assert.Contains(t, err.Error(), "status code 404")
}

func TestCustomerCreate(t *testing.T) {
	setupTest(t, 10)

	out, err := executeCommand("customer", "create", "--name", "Zeynep Aksoy", "--email", "zeynep@example.com", "-o", "json")
	require.NoError(t, err)
	var created model.Customer
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, model.Timestamp(fixedNow), created.CreatedAt)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	out, err = executeCommand("customer", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Zeynep Aksoy")
}

func TestCustomerCreateValidation(t *testing.T) {
	setupTest(t, 10)

	_, err := executeCommand("customer", "create", "--name", "X", "--email", "not-an-email")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid address")

	_, err = executeCommand("customer", "create", "--name", "X")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestCustomerCreateDryRun(t *testing.T) {
	client := setupTest(t, 10)

	out, err := executeCommand("customer", "create", "--name", "Zeynep", "--email", "z@example.com", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "[dry-run] Would create customer")

	all, err := client.Customers().List(t.Context(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCustomerUpdate(t *testing.T) {
	setupTest(t, 10)

	out, err := executeCommand("customer", "update", "cust-002", "--phone", "+90 555 010 0002", "-o", "json")
	require.NoError(t, err)
	var updated model.Customer
	require.NoError(t, json.Unmarshal([]byte(out), &updated))
	assert.Equal(t, "cust-002", updated.ID)
	assert.Equal(t, "+90 555 010 0002", updated.Phone)
	assert.Equal(t, "Mehmet Demir", updated.Name)
	assert.Equal(t, model.Timestamp(fixedNow), updated.UpdatedAt)

	out, err = executeCommand("customer", "get", "cust-002")
	require.NoError(t, err)
	assert.Contains(t, out, "+90 555 010 0002")
}

func TestCustomerUpdateClearsPhone(t *testing.T) {
	setupTest(t, 10)

	out, err := executeCommand("customer", "update", "cust-001", "--phone", "", "-o", "json")
	require.NoError(t, err)
	var updated model.Customer
	require.NoError(t, json.Unmarshal([]byte(out), &updated))
	assert.Empty(t, updated.Phone)
	assert.Equal(t, "female", updated.Gender)

	out, err = executeCommand("customer", "get", "cust-001")
	require.NoError(t, err)
	assert.NotContains(t, out, "+90 555 010 0001")
}

func TestCustomerUpdateNotFound(t *testing.T) {
	setupTest(t, 10)
	_, err := executeCommand("customer", "update", "nope", "--name", "X")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get customer")
}

func TestCustomerDelete(t *testing.T) {
	setupTest(t, 10)

	out, err := executeCommand("customer", "delete", "cust-003", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Customer cust-003 deleted.")

	out, err = executeCommand("customer", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "Elif Kaya")
}

func TestCustomerDeletePrompt(t *testing.T) {
	client := setupTest(t, 10)

	stdin = strings.NewReader("n\n")
	out, err := executeCommand("customer", "delete", "cust-001")
	require.NoError(t, err)
	assert.Contains(t, out, "Delete customer cust-001? [y/N]")
	assert.Contains(t, out, "Aborted.")
	_, err = client.Customers().Get(t.Context(), "cust-001")
	require.NoError(t, err)

	stdin = strings.NewReader("y\n")
	out, err = executeCommand("customer", "delete", "cust-001")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted.")
	_, err = client.Customers().Get(t.Context(), "cust-001")
	require.Error(t, err)
}

func TestCustomerDeleteDryRun(t *testing.T) {
	client := setupTest(t, 10)

	out, err := executeCommand("customer", "delete", "cust-001", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "[dry-run] Would delete customer cust-001")
	_, err = client.Customers().Get(t.Context(), "cust-001")
	require.NoError(t, err)
}

func TestCustomerStats(t *testing.T) {
	setupTest(t, 10)

	out, err := executeCommand("customer", "stats", "cust-001", "-o", "json")
	require.NoError(t, err)
	var stats model.CustomerStats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, "Active", stats.Status)
	assert.True(t, stats.ContactComplete)
	// 2024-01-05T09:30Z to 2024-06-01T00:00Z.
	assert.Equal(t, 147, stats.DaysSinceCreated)
}

func TestBackendFailure(t *testing.T) {
	client := setupTest(t, 10)
	client.FailWith(errors.New("backend down"))

	_, err := executeCommand("customer", "list")
	require.Error(t, err)
	assert.Equal(t, "failed to list customers: backend down", err.Error())

	_, err = executeCommand("product", "delete", "prod-001", "--yes")
	require.Error(t, err)
	assert.Equal(t, "failed to delete product: backend down", err.Error())
}

func TestProductListFilters(t *testing.T) {
	setupTest(t, 10)

	out, err := executeCommand("product", "list", "--category", "books")
	require.NoError(t, err)
	assert.Contains(t, out, "Go Programming Book")
	assert.NotContains(t, out, "Wireless Mouse")

	out, err = executeCommand("product", "list", "--search", "ERGONOMIC")
	require.NoError(t, err)
	assert.Contains(t, out, "Wireless Mouse")
	assert.Contains(t, out, "24.99")
	assert.NotContains(t, out, "Linen Shirt")
}

func TestProductCreate(t *testing.T) {
	setupTest(t, 10)

	out, err := executeCommand("product", "create",
		"--name", "Desk Lamp", "--price", "19.90", "--category", "home", "--stock", "5", "-o", "json")
	require.NoError(t, err)
	var created model.Product
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 19.9, created.Price)
	assert.Equal(t, 0, created.TotalSold)

	_, err = executeCommand("product", "create", "--name", "Desk Lamp")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")

	_, err = executeCommand("product", "create", "--name", "Lamp", "--price", "-1", "--category", "home", "--stock", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "price must be non-negative")
}

func TestProductUpdate(t *testing.T) {
	setupTest(t, 10)

	out, err := executeCommand("product", "update", "prod-001", "--stock", "0", "--total-sold", "400", "-o", "json")
	require.NoError(t, err)
	var updated model.Product
	require.NoError(t, json.Unmarshal([]byte(out), &updated))
	assert.Equal(t, 0, updated.Stock)
	assert.Equal(t, 400, updated.TotalSold)
	assert.Equal(t, "Wireless Mouse", updated.Name)

	out, err = executeCommand("product", "update", "prod-002", "--price", "10", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "[dry-run] Would update product prod-002")
}

func TestProductDeleteAndStats(t *testing.T) {
	setupTest(t, 10)

	out, err := executeCommand("product", "stats", "prod-001")
	require.NoError(t, err)
	assert.Contains(t, out, "totalRevenue:")
	assert.Contains(t, out, "8496.6")
	assert.Contains(t, out, "2998.8")

	out, err = executeCommand("product", "delete", "prod-001", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Product prod-001 deleted.")

	_, err = executeCommand("product", "stats", "prod-001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get product")
}

func TestCompletion(t *testing.T) {
	setupTest(t, 10)
	out, err := executeCommand("completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "bitectl")

	out, err = executeCommand("completion", "zsh")
	require.NoError(t, err)
	assert.Contains(t, out, "#compdef bitectl")
}
