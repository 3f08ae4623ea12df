package config

import (
	"os"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestLookupKnownHost(t *testing.T) {
	c := qt.New(t)
	cfg, err := Lookup("disperser-testnet-holesky.eigenda.xyz")
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.ChainID, qt.Equals, uint64(17000))
	c.Assert(cfg.PricePerSymbol, qt.Equals, uint64(447_000_000_000))
	c.Assert(cfg.MinNumSymbols, qt.Equals, uint64(4096))
}

func TestLookupUnknownHost(t *testing.T) {
	c := qt.New(t)
	_, err := Lookup("not-a-real-disperser.example.com")
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestFromEnvRequiresPrivateKey(t *testing.T) {
	c := qt.New(t)
	c.Setenv("EIGENDA_DISPERSER_HOST", "")
	c.Setenv("EIGENDA_PRIVATE_KEY", "")
	c.Setenv("EIGENDA_USE_SECURE_GRPC", "")
	os.Unsetenv("EIGENDA_PRIVATE_KEY")

	_, err := FromEnv()
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestFromEnvDefaultsAndOverrides(t *testing.T) {
	c := qt.New(t)
	c.Setenv("EIGENDA_PRIVATE_KEY", "deadbeef")
	c.Setenv("EIGENDA_DISPERSER_HOST", "disperser.eigenda.xyz")
	c.Setenv("EIGENDA_DISPERSER_PORT", "")
	c.Setenv("EIGENDA_USE_SECURE_GRPC", "false")

	cfg, err := FromEnv()
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.PrivateKeyHex, qt.Equals, "deadbeef")
	c.Assert(cfg.DisperserHost, qt.Equals, "disperser.eigenda.xyz")
	c.Assert(cfg.DisperserPort, qt.Equals, 443)
	c.Assert(cfg.UseSecureGRPC, qt.IsFalse)
	c.Assert(cfg.Network.ChainID, qt.Equals, uint64(1))
}

func TestFromEnvPortDrivesSecureDefault(t *testing.T) {
	c := qt.New(t)
	c.Setenv("EIGENDA_PRIVATE_KEY", "deadbeef")
	c.Setenv("EIGENDA_DISPERSER_HOST", "")
	c.Setenv("EIGENDA_USE_SECURE_GRPC", "")
	c.Setenv("EIGENDA_DISPERSER_PORT", "8080")

	cfg, err := FromEnv()
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.DisperserPort, qt.Equals, 8080)
	c.Assert(cfg.UseSecureGRPC, qt.IsFalse)

	c.Setenv("EIGENDA_DISPERSER_PORT", "443")
	cfg, err = FromEnv()
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.UseSecureGRPC, qt.IsTrue)

	c.Setenv("EIGENDA_DISPERSER_PORT", "not-a-port")
	_, err = FromEnv()
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestFromEnvRejectsInvalidBool(t *testing.T) {
	c := qt.New(t)
	c.Setenv("EIGENDA_PRIVATE_KEY", "deadbeef")
	c.Setenv("EIGENDA_USE_SECURE_GRPC", "not-a-bool")

	_, err := FromEnv()
	c.Assert(err, qt.Not(qt.IsNil))
}
