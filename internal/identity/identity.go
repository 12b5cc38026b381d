package identity

import (
	"errors"
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"
)

// Identity is an address together with the key that signs for it.
type Identity struct {
	key solana.PrivateKey
}

func Generate() Identity {
	return Identity{key: solana.NewWallet().PrivateKey}
}

func FromPrivateKey(key solana.PrivateKey) (Identity, error) {
	if len(key) != 64 {
		return Identity{}, fmt.Errorf("private key is %d bytes, want 64", len(key))
	}
	return Identity{key: key}, nil
}

func FromBase58(secret string) (Identity, error) {
	key, err := solana.PrivateKeyFromBase58(secret)
	if err != nil {
		return Identity{}, fmt.Errorf("decode private key: %w", err)
	}
	return FromPrivateKey(key)
}

// FromKeygenFile reads a solana-keygen JSON keypair.
func FromKeygenFile(path string) (Identity, error) {
	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return Identity{}, fmt.Errorf("read keypair %s: %w", path, err)
	}
	return FromPrivateKey(key)
}

// FromEnv loads .env if present and reads a base58 key from the named variable.
// ok is false when the variable is unset.
func FromEnv(name string) (id Identity, ok bool, err error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Identity{}, false, fmt.Errorf("load .env: %w", err)
	}
	secret := os.Getenv(name)
	if secret == "" {
		return Identity{}, false, nil
	}
	id, err = FromBase58(secret)
	if err != nil {
		return Identity{}, false, fmt.Errorf("%s: %w", name, err)
	}
	return id, true, nil
}

func (i Identity) Address() solana.PublicKey {
	return i.key.PublicKey()
}

func (i Identity) PrivateKey() solana.PrivateKey {
	return i.key
}

func (i Identity) IsZero() bool {
	return len(i.key) == 0
}

func (i Identity) String() string {
	if i.IsZero() {
		return "<none>"
	}
	return i.Address().String()
}
