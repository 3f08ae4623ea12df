// Package config holds the compiled-in, per-network constants the client
// needs to reach a disperser and interpret its payment terms. There is no
// dynamic configuration: adding a network means adding a table row.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// NetworkConfig is everything a dispersal client needs to know about one
// deployment of the service beyond the user's own private key.
type NetworkConfig struct {
	ChainID                  uint64
	DisperserPort            int
	PaymentVaultAddress      string
	PricePerSymbol           uint64
	MinNumSymbols            uint64
	ReservationPeriodSeconds uint32
}

// DefaultDisperserHost is used when no host is configured anywhere.
const DefaultDisperserHost = "disperser-testnet-holesky.eigenda.xyz"

// Networks maps a disperser host to its network configuration. Values
// are compiled in and not fetched at runtime. Every PaymentVaultAddress
// in the table is the zero address.
var Networks = map[string]NetworkConfig{
	"disperser-testnet-holesky.eigenda.xyz": {
		ChainID:                  17000,
		DisperserPort:            443,
		PaymentVaultAddress:      "0x0000000000000000000000000000000000000000",
		PricePerSymbol:           447_000_000_000,
		MinNumSymbols:            4096,
		ReservationPeriodSeconds: 300,
	},
	"disperser.eigenda.xyz": {
		ChainID:                  1,
		DisperserPort:            443,
		PaymentVaultAddress:      "0x0000000000000000000000000000000000000000",
		PricePerSymbol:           447_000_000_000,
		MinNumSymbols:            4096,
		ReservationPeriodSeconds: 300,
	},
}

// Lookup returns the compiled-in configuration for a disperser host.
func Lookup(host string) (NetworkConfig, error) {
	cfg, ok := Networks[host]
	if !ok {
		return NetworkConfig{}, fmt.Errorf("config: no network configuration for disperser host %q", host)
	}
	return cfg, nil
}

// ClientConfig is the full set of values a cmd/disperse-style entry point
// assembles from the environment before constructing a client.
type ClientConfig struct {
	PrivateKeyHex string
	DisperserHost string
	DisperserPort int
	UseSecureGRPC bool
	Network       NetworkConfig
}

// FromEnv reads EIGENDA_PRIVATE_KEY, EIGENDA_DISPERSER_HOST,
// EIGENDA_DISPERSER_PORT and EIGENDA_USE_SECURE_GRPC, falling back to the
// Holesky testnet disperser when unset. The transport defaults to secure
// exactly when the effective port is 443; EIGENDA_USE_SECURE_GRPC
// overrides that in either direction.
func FromEnv() (ClientConfig, error) {
	host := os.Getenv("EIGENDA_DISPERSER_HOST")
	if host == "" {
		host = DefaultDisperserHost
	}
	network, err := Lookup(host)
	if err != nil {
		return ClientConfig{}, err
	}

	port := network.DisperserPort
	if v := os.Getenv("EIGENDA_DISPERSER_PORT"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 || parsed > 65535 {
			return ClientConfig{}, fmt.Errorf("config: invalid EIGENDA_DISPERSER_PORT value %q", v)
		}
		port = parsed
	}

	secure := port == 443
	if v := os.Getenv("EIGENDA_USE_SECURE_GRPC"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return ClientConfig{}, fmt.Errorf("config: invalid EIGENDA_USE_SECURE_GRPC value %q: %w", v, err)
		}
		secure = parsed
	}

	privKey := os.Getenv("EIGENDA_PRIVATE_KEY")
	if privKey == "" {
		return ClientConfig{}, fmt.Errorf("config: EIGENDA_PRIVATE_KEY is required")
	}

	return ClientConfig{
		PrivateKeyHex: privKey,
		DisperserHost: host,
		DisperserPort: port,
		UseSecureGRPC: secure,
		Network:       network,
	}, nil
}
