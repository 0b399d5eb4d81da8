package staking

import (
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"

	stakeerr "github.com/mrz1836/stakeflow/pkg/errors"
)

// Token selects one side of a deployment's contract pair.
type Token string

// Tokens of a deployment.
const (
	TokenPrincipal Token = "principal" // the staked asset, e.g. NIBI
	TokenReceipt   Token = "receipt"   // the liquid-staking derivative, e.g. stNIBI
)

// ParseToken accepts "principal" or "receipt" in any case.
func ParseToken(s string) (Token, error) {
	switch Token(strings.ToLower(strings.TrimSpace(s))) {
	case TokenPrincipal:
		return TokenPrincipal, nil
	case TokenReceipt:
		return TokenReceipt, nil
	default:
		return "", stakeerr.WithDetails(stakeerr.ErrInvalidInput, map[string]string{
			"token": s,
		})
	}
}

// EncodedCall is a contract call ready for an external wallet to submit.
type EncodedCall struct {
	To    string        `json:"to"`
	Value string        `json:"value"` // base units of the native asset, "0" when none is sent
	Data  hexutil.Bytes `json:"data"`
}
