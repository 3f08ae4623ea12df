// Command disperse encodes a payload, negotiates payment, and submits it
// to an EigenDA-compatible disperser. The payload comes from stdin or,
// with --random-size, from a locally generated random buffer.
package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"
	"google.golang.org/grpc"

	"github.com/Layr-Labs/eigenda-client-go/client"
	"github.com/Layr-Labs/eigenda-client-go/config"
	"github.com/Layr-Labs/eigenda-client-go/crypto/signer"
	"github.com/Layr-Labs/eigenda-client-go/grpcdisperser"
	"github.com/Layr-Labs/eigenda-client-go/log"
)

const defaultTimeout = 30 * time.Second

func main() {
	host := pflag.String("host", "", "Disperser host (defaults to EIGENDA_DISPERSER_HOST or the Holesky testnet disperser)")
	privKey := pflag.String("privkey", "", "Hex-encoded secp256k1 private key (defaults to EIGENDA_PRIVATE_KEY)")
	quorumsFlag := pflag.IntSlice("quorums", []int{0}, "Quorum numbers to disperse to")
	perQuorum := pflag.Bool("per-quorum", false, "Account reservations per quorum instead of with one shared reservation")
	randomSize := pflag.Int("random-size", 0, "Disperse a random payload of this size instead of reading stdin")
	logLevel := pflag.String("log-level", "info", "Log level (debug|info|warn|error)")
	timeout := pflag.Duration("timeout", defaultTimeout, "Per-RPC deadline")

	pflag.Parse()
	log.Init(*logLevel, "stdout", nil)

	cfg, err := resolveConfig(*host, *privKey)
	if err != nil {
		log.Fatalf("resolve config: %v", err)
	}

	quorums := make([]uint8, len(*quorumsFlag))
	for i, q := range *quorumsFlag {
		quorums[i] = uint8(q)
	}

	s, err := signer.NewFromHex(cfg.PrivateKeyHex)
	if err != nil {
		log.Fatalf("load signer: %v", err)
	}
	log.Infow("disperse client starting", "account", s.AccountID().Hex(), "disperser", cfg.DisperserHost)

	conn, err := grpcdisperser.Dial(grpcdisperser.DialConfig{
		Host:   cfg.DisperserHost,
		Port:   cfg.DisperserPort,
		UseTLS: cfg.UseSecureGRPC,
	})
	if err != nil {
		log.Fatalf("dial disperser: %v", err)
	}
	defer conn.Close()

	disperserClient := newDisperserClient(conn)

	payload, err := buildPayload(*randomSize)
	if err != nil {
		log.Fatalf("build payload: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	a, err := client.BootstrapAccountant(ctx, disperserClient, s, *perQuorum)
	if err != nil {
		log.Fatalf("bootstrap accountant: %v", err)
	}

	cl := client.New(disperserClient, s, a)

	status, err := cl.Disperse(ctx, payload, quorums, 0)
	if err != nil {
		log.Fatalf("disperse: %v", err)
	}
	log.Infow("blob dispersed", "blob_key", fmt.Sprintf("%x", status.BlobKey), "status", status.State.String())
}

// resolveConfig layers CLI flags over the environment-derived defaults:
// either source may supply the private key and disperser host, with the
// flag winning when both are set.
func resolveConfig(hostFlag, privKeyFlag string) (config.ClientConfig, error) {
	host := hostFlag
	if host == "" {
		host = os.Getenv("EIGENDA_DISPERSER_HOST")
	}
	if host == "" {
		host = config.DefaultDisperserHost
	}
	network, err := config.Lookup(host)
	if err != nil {
		return config.ClientConfig{}, err
	}

	cfg := config.ClientConfig{
		DisperserHost: host,
		DisperserPort: network.DisperserPort,
		UseSecureGRPC: network.DisperserPort == 443,
		Network:       network,
		PrivateKeyHex: privKeyFlag,
	}
	if cfg.PrivateKeyHex == "" {
		cfg.PrivateKeyHex = os.Getenv("EIGENDA_PRIVATE_KEY")
	}
	if cfg.PrivateKeyHex == "" {
		return config.ClientConfig{}, fmt.Errorf("no private key: pass --privkey or set EIGENDA_PRIVATE_KEY")
	}
	return cfg, nil
}

func buildPayload(randomSize int) ([]byte, error) {
	if randomSize > 0 {
		buf := make([]byte, randomSize)
		if _, err := rand.Read(buf); err != nil {
			return nil, err
		}
		return buf, nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty payload on stdin; pass --random-size for a quick smoke test")
	}
	return data, nil
}

// newDisperserClient is the integration seam a production build replaces
// with a wrapper around the generated disperser protobuf client over
// conn; this module does not vendor the generated stubs.
var newDisperserClient = func(conn *grpc.ClientConn) grpcdisperser.DisperserClient {
	panic("disperse: no DisperserClient wired to the dialed connection")
}
