// Package rules implements the curated collection rule engine: per-collection
// eligibility predicates and display/creation template generators.
//
// A BoundRule is built from a CollectionRecord snapshot and is pure and
// synchronous; construction performs no I/O and evaluation is safe from any
// number of callers.
package rules

import (
	"math"
	"strconv"
	"strings"

	emblem "github.com/EmblemCompany/emblem-vault-sdk-sub000"
)

// MessageFunc receives a human-readable rejection reason. It is called at
// most once per evaluation, and only on branches that define a message.
// Ineligibility is always communicated via the boolean result, never by the
// callback.
type MessageFunc func(message string)

// BoundRule binds a collection record to its eligibility predicates and
// template generators. The record is snapshotted by value at construction;
// mutating the source record afterwards has no effect on the rule.
type BoundRule struct {
	emblem.CollectionRecord
}

// GenerateTemplate compiles a collection record into a bound rule.
func GenerateTemplate(record emblem.CollectionRecord) *BoundRule {
	return &BoundRule{CollectionRecord: record}
}

// ContractFor returns the collection's contract address on the given chain,
// or "" when none is configured.
func (r *BoundRule) ContractFor(chainID int64) string {
	return r.Contracts[emblem.ChainIDString(chainID)]
}

// LoadingImage returns the first configured loading image, or "".
func (r *BoundRule) LoadingImage() string {
	if len(r.LoadingImages) == 0 {
		return ""
	}
	return r.LoadingImages[0]
}

// PlaceholderImage returns the first configured placeholder image, or "".
func (r *BoundRule) PlaceholderImage() string {
	if len(r.PlaceholderImages) == 0 {
		return ""
	}
	return r.PlaceholderImages[0]
}

// Allowed decides whether a vault holding the given balances qualifies for
// this collection.
//
// Branch order is part of the contract: exact-name special cases are checked
// before the generic vaultCollectionType categories, and the
// project-matches-name fallback runs last. Collections whose names coincide
// with a category flag would otherwise change eligibility.
func (r *BoundRule) Allowed(data []emblem.Balance, msg MessageFunc) bool {
	// Embels qualifies unconditionally, even with no balance data.
	if r.Name == "Embels" {
		return true
	}
	if len(data) == 0 {
		return false
	}
	first := data[0]

	switch {
	case r.Name == "EmblemOpen":
		// Open vaults accept any non-empty contents.
		return true

	case r.Name == "Bells":
		ok := first.Name == "Bel" && first.Balance > 0 && isWholeNumber(first.Balance)
		if !ok {
			emit(msg, "vault must hold a positive whole-number Bel balance")
		}
		return ok

	case r.Name == "Cursed Ordinal":
		return first.ContentType != "application/json" &&
			first.Coin == "cursedordinalsbtc" &&
			isCursedOrdinalName(first.Name)

	case r.Name == "BitcoinOrdinals":
		filtered := r.FilterNativeBalances(data)
		return len(filtered) > 0 && strings.EqualFold(filtered[0].Coin, r.CollectionChain)

	case r.Name == "Ethscription":
		// Coin match is case-sensitive here, unlike the chain comparisons.
		return first.Coin == "ethscription"

	case r.BalanceQty != nil && *r.BalanceQty > 0:
		want := formatQuantity(*r.BalanceQty) + " " + r.Name
		ok := first.Balance == *r.BalanceQty && first.Name == want
		if !ok {
			emit(msg, "vault must hold exactly "+want)
		}
		return ok

	case r.Name == "Stamps":
		return strings.Contains(strings.ToLower(first.Name), "stamp") &&
			first.Project != "" &&
			r.isNativeAsset(first.Coin) &&
			(strings.EqualFold(first.Project, r.Name) || strings.EqualFold(first.Project, "stampunks"))

	case r.Name == "Namecoin":
		return r.isNativeAsset(first.Coin)

	case r.Name == "COVAL Timelock":
		return isTimelockTier(sumNamed(data, "Circuits of Value"))

	case r.VaultCollectionType == "protocol":
		return strings.EqualFold(first.Coin, r.CollectionChain)

	case r.VaultCollectionType == "collection":
		return strings.EqualFold(first.Coin, r.CollectionChain) && first.Project == r.Name

	default:
		if info, ok := emblem.LookupAsset(first.Name); ok {
			return strings.EqualFold(info.ProjectName, r.Name) &&
				first.Project == r.Name &&
				first.Balance == 1
		}
		filtered := r.FilterNativeBalances(data)
		ok := len(filtered) > 0 && filtered[0].Project == r.Name
		if !ok {
			emit(msg, "vault contents do not qualify for "+r.Name)
		}
		return ok
	}
}

// AllowedJump decides whether a vault may migrate into this collection.
// Claimed vaults and the retired Rinkeby collection never migrate. Multiple
// remaining balances are only acceptable for protocol-type collections when
// every balance sits on the collection chain; otherwise the single filtered
// balance set is evaluated through Allowed.
func (r *BoundRule) AllowedJump(o emblem.Ownership) bool {
	if o.Status == "claimed" || r.Name == "Rinkeby" {
		return false
	}

	filtered := r.FilterNativeBalances(o.Balances)
	if len(filtered) > 1 {
		if r.VaultCollectionType != "protocol" {
			return false
		}
		for _, b := range filtered {
			if !strings.EqualFold(b.Coin, r.CollectionChain) {
				return false
			}
		}
		return true
	}

	return r.Allowed(filtered, nil)
}

// FilterNativeBalances returns the balances whose name is not one of the
// collection's native assets. A "*" wildcard passes everything through.
// Filtering is idempotent.
func (r *BoundRule) FilterNativeBalances(data []emblem.Balance) []emblem.Balance {
	if r.isWildcardNative() {
		return data
	}
	filtered := make([]emblem.Balance, 0, len(data))
	for _, b := range data {
		if !containsString(r.NativeAssets, b.Name) {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

func (r *BoundRule) isWildcardNative() bool {
	return containsString(r.NativeAssets, "*")
}

func (r *BoundRule) isNativeAsset(coin string) bool {
	return containsString(r.NativeAssets, coin)
}

// emit reports a rejection reason when a callback is present.
func emit(msg MessageFunc, message string) {
	if msg != nil {
		msg(message)
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func isWholeNumber(f float64) bool {
	return f == math.Trunc(f)
}

// isCursedOrdinalName matches the "Cursed Ordinal <negative-number>" grammar:
// exactly three space-separated tokens, the last parsing as a negative number.
func isCursedOrdinalName(name string) bool {
	parts := strings.Split(name, " ")
	if len(parts) != 3 || parts[0] != "Cursed" || parts[1] != "Ordinal" {
		return false
	}
	n, err := strconv.ParseFloat(parts[2], 64)
	return err == nil && n < 0
}

// sumNamed totals the balances carrying the given asset name.
func sumNamed(data []emblem.Balance, name string) float64 {
	var sum float64
	for _, b := range data {
		if b.Name == name {
			sum += b.Balance
		}
	}
	return sum
}

// isTimelockTier reports whether a COVAL sum sits on a recognized timelock tier.
func isTimelockTier(sum float64) bool {
	return sum == 5000 || sum == 50000 || sum == 500000
}

// formatQuantity renders a balance quantity the way the collection metadata
// embeds it in asset names (no trailing zeros).
func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
