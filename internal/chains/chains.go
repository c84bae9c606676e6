// Light-weight format checks for submitted transactions. Chain and asset
// stay free-form strings; only chains we recognize get their addresses
// sanity-checked, everything else passes through untouched.
package chains

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	solana "github.com/gagliardetto/solana-go"
	"github.com/xssnick/tonutils-go/address"
)

// EVM chains the checkout page is known to submit from
var evmChains = map[string]bool{
	"ethereum": true,
	"polygon":  true,
	"base":     true,
	"optimism": true,
	"arbitrum": true,
}

func IsEVM(chain string) bool {
	return evmChains[strings.ToLower(chain)]
}

// ValidateAddress rejects addresses that cannot possibly exist on a
// recognized chain. Unknown chains are accepted as-is.
func ValidateAddress(chain, addr string) error {
	switch {
	case IsEVM(chain):
		if !common.IsHexAddress(addr) {
			return fmt.Errorf("invalid %s address: %s", chain, addr)
		}
	case strings.EqualFold(chain, "solana"):
		if _, err := solana.PublicKeyFromBase58(addr); err != nil {
			return fmt.Errorf("invalid solana address: %s", addr)
		}
	case strings.EqualFold(chain, "ton"):
		if _, err := address.ParseAddr(addr); err != nil {
			return fmt.Errorf("invalid ton address: %s", addr)
		}
	}
	return nil
}

// ValidateTxHash is deliberately loose: hashes are only required to look
// plausible for EVM chains, since resubmission protection comes from the
// database unique index, not the format.
func ValidateTxHash(chain, hash string) error {
	if hash == "" {
		return fmt.Errorf("empty tx hash")
	}
	if IsEVM(chain) && !strings.HasPrefix(hash, "0x") {
		return fmt.Errorf("invalid %s tx hash: %s", chain, hash)
	}
	return nil
}
