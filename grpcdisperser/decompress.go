package grpcdisperser

import (
	"fmt"

	"github.com/Layr-Labs/eigenda-client-go/crypto/curve"
)

func decompressG1(b []byte) (*curve.G1, error) {
	g1, err := curve.DecompressG1(b)
	if err != nil {
		return nil, fmt.Errorf("grpcdisperser: decompress G1 commitment: %w", err)
	}
	return g1, nil
}

func decompressG2(b []byte) (*curve.G2, error) {
	g2, err := curve.DecompressG2(b)
	if err != nil {
		return nil, fmt.Errorf("grpcdisperser: decompress G2 point: %w", err)
	}
	return g2, nil
}
