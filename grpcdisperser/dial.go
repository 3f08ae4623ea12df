package grpcdisperser

import (
	"crypto/tls"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
)

// DialConfig configures the one piece of transport this package owns
// directly: the gRPC channel a DisperserClient/RetrieverClient
// implementation runs its RPCs over.
type DialConfig struct {
	Host             string
	Port             int
	UseTLS           bool
	KeepAlive        time.Duration
	KeepAliveTimeout time.Duration
}

// Dial opens a gRPC channel to host:port, using TLS transport credentials
// unless UseTLS is false (local/test disperser instances typically run
// without TLS). The returned connection is shared across the disperser
// and retriever clients built on top of it.
func Dial(cfg DialConfig) (*grpc.ClientConn, error) {
	var creds credentials.TransportCredentials
	if cfg.UseTLS {
		creds = credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})
	} else {
		creds = insecure.NewCredentials()
	}

	keepAlive := cfg.KeepAlive
	if keepAlive <= 0 {
		keepAlive = 20 * time.Second
	}
	keepAliveTimeout := cfg.KeepAliveTimeout
	if keepAliveTimeout <= 0 {
		keepAliveTimeout = 10 * time.Second
	}

	target := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	conn, err := grpc.NewClient(target,
		grpc.WithTransportCredentials(creds),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                keepAlive,
			Timeout:             keepAliveTimeout,
			PermitWithoutStream: true,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("grpcdisperser: dial %s: %w", target, err)
	}
	return conn, nil
}
