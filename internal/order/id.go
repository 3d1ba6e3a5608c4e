package order

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

const (
	IDPrefix   = "ORD-"
	idLength   = 6
	idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// NewID draws idLength characters uniformly from idAlphabet.
func NewID() (string, error) {
	return newIDFrom(rand.Reader)
}

func newIDFrom(r io.Reader) (string, error) {
	alphabetSize := big.NewInt(int64(len(idAlphabet)))
	buf := make([]byte, idLength)
	for i := range buf {
		n, err := rand.Int(r, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("generate order id: %w", err)
		}
		buf[i] = idAlphabet[n.Int64()]
	}
	return IDPrefix + string(buf), nil
}
