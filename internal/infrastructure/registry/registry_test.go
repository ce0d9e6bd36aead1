package registry_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rcarvalho-pb/payment_routing-go/internal/domain/method"
	"github.com/rcarvalho-pb/payment_routing-go/internal/infrastructure/registry"
)

func TestNewDefault_ContainsEveryBuiltinMethod(t *testing.T) {
	reg := registry.NewDefault()

	expected := []method.Method{
		method.BankTransfer, method.Card, method.Crypto, method.MobileMoney,
	}
	require.Equal(t, expected, reg.Methods(), "methods must list in stable sorted order")
}

func TestNewDefault_CardProfile(t *testing.T) {
	reg := registry.NewDefault()

	p, err := reg.Profile(method.Card)
	require.NoError(t, err)

	require.True(t, p.Fees.Fixed.Equal(decimal.RequireFromString("0.30")))
	require.True(t, p.Fees.Percent.Equal(decimal.RequireFromString("2.9")))
	require.Equal(t, 5*time.Second, p.Speed.Nominal)
	require.True(t, p.Limits.Max.Equal(decimal.RequireFromString("50000")))
}

func TestProfile_UnknownMethod(t *testing.T) {
	reg := registry.NewDefault()

	_, err := reg.Profile("carrier_pigeon")
	require.ErrorIs(t, err, method.ErrMethodNotFound)
}

func TestNewStatic_LastProfileWinsOnDuplicate(t *testing.T) {
	reg := registry.NewStatic([]method.MethodProfile{
		{Method: method.Card, Fees: method.FeeModel{Fixed: decimal.RequireFromString("1")}},
		{Method: method.Card, Fees: method.FeeModel{Fixed: decimal.RequireFromString("2")}},
	})

	require.Len(t, reg.Methods(), 1)

	p, err := reg.Profile(method.Card)
	require.NoError(t, err)
	require.True(t, p.Fees.Fixed.Equal(decimal.RequireFromString("2")))
}

func writeRegistryFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "methods.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile_ParsesProfiles(t *testing.T) {
	path := writeRegistryFile(t, `
methods:
  - method: card
    fees:
      fixed: "0.25"
      percent: "2.5"
    speed:
      nominal: 3s
      min: 1s
      max: 20s
    limits:
      min: "0.50"
      max: "10000"
  - method: mobile_money
    fees:
      percent: "1.5"
    speed:
      nominal: 30s
    limits:
      min: "0.10"
      max: "5000"
    countries: [KE, NG]
    currencies: [KES, NGN]
`)

	reg, err := registry.LoadFile(path)
	require.NoError(t, err)

	require.Equal(t, []method.Method{method.Card, method.MobileMoney}, reg.Methods())

	card, err := reg.Profile(method.Card)
	require.NoError(t, err)
	require.True(t, card.Fees.Fixed.Equal(decimal.RequireFromString("0.25")))
	require.Equal(t, 3*time.Second, card.Speed.Nominal)

	momo, err := reg.Profile(method.MobileMoney)
	require.NoError(t, err)
	require.Equal(t, []string{"KE", "NG"}, momo.Countries)
	require.True(t, momo.Fees.Fixed.IsZero(), "omitted fee fields default to zero")
}

func TestLoadFile_RejectsMissingMethodName(t *testing.T) {
	path := writeRegistryFile(t, `
methods:
  - fees:
      fixed: "0.25"
`)

	_, err := registry.LoadFile(path)
	require.ErrorContains(t, err, "method identifier is required")
}

func TestLoadFile_RejectsBadAmount(t *testing.T) {
	path := writeRegistryFile(t, `
methods:
  - method: card
    fees:
      fixed: "not-a-number"
`)

	_, err := registry.LoadFile(path)
	require.ErrorContains(t, err, "fees.fixed")
}

func TestLoadFile_RejectsBadDuration(t *testing.T) {
	path := writeRegistryFile(t, `
methods:
  - method: card
    speed:
      nominal: "fast"
`)

	_, err := registry.LoadFile(path)
	require.ErrorContains(t, err, "speed.nominal")
}

func TestLoadFile_RejectsEmptyFile(t *testing.T) {
	path := writeRegistryFile(t, "methods: []\n")

	_, err := registry.LoadFile(path)
	require.ErrorContains(t, err, "defines no methods")
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := registry.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
