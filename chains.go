package emblem

import "strconv"

// ChainType represents the blockchain family a chain belongs to.
type ChainType int

const (
	// ChainTypeUnknown represents an unrecognized chain.
	ChainTypeUnknown ChainType = iota
	// ChainTypeEVM represents Ethereum Virtual Machine chains.
	ChainTypeEVM
	// ChainTypeBTC represents Bitcoin and Bitcoin-derived chains.
	ChainTypeBTC
	// ChainTypeSVM represents Solana Virtual Machine chains.
	ChainTypeSVM
)

// Chain holds the per-chain contract and RPC configuration used by the
// mint/claim/unvault sequencer.
type Chain struct {
	// ID is the EVM chain ID.
	ID int64

	// Name is a human-readable chain name.
	Name string

	// RPCURL is the default public RPC endpoint for the chain.
	RPCURL string

	// HandlerAddress is the curated-mint handler contract
	// (buyWithSignedPrice, legacy claim).
	HandlerAddress string

	// UnvaultingAddress is the signed-price unvaulting contract.
	UnvaultingAddress string

	// Type is the chain family.
	Type ChainType
}

// Supported chain configurations. Contract addresses follow the curated
// handler deployments; RPC endpoints are public defaults and may be
// overridden per signer.
var (
	// EthereumMainnet is the configuration for Ethereum mainnet.
	EthereumMainnet = Chain{
		ID:                1,
		Name:              "ethereum",
		RPCURL:            "https://rpc.ankr.com/eth",
		HandlerAddress:    "0x632Ab944aCCbA8B1BE1E14036556E7c26dE94484",
		UnvaultingAddress: "0xC5fc6Dc76efF358F7B7335631C30F54dDd78ead3",
		Type:              ChainTypeEVM,
	}

	// Goerli is the configuration for the Goerli testnet.
	Goerli = Chain{
		ID:                5,
		Name:              "goerli",
		RPCURL:            "https://rpc.ankr.com/eth_goerli",
		HandlerAddress:    "0x2523f621ce57E0503c114FbD0181B4c385165513",
		UnvaultingAddress: "0x9c4160DCd22Bc1B8C130b6eB782D592fa6c01bA4",
		Type:              ChainTypeEVM,
	}

	// Polygon is the configuration for Polygon PoS mainnet.
	Polygon = Chain{
		ID:                137,
		Name:              "polygon",
		RPCURL:            "https://polygon-rpc.com",
		HandlerAddress:    "0x3Df1C00b6dB4cd74D3Af9505D6a1b30641c2b7f1",
		UnvaultingAddress: "0xF84ae6B6D3C382b4B8A2cD7351e3a38a5B456d8E",
		Type:              ChainTypeEVM,
	}

	// Mumbai is the configuration for the Polygon Mumbai testnet.
	Mumbai = Chain{
		ID:                80001,
		Name:              "mumbai",
		RPCURL:            "https://rpc-mumbai.maticvigil.com",
		HandlerAddress:    "0x9A2b5C7E8d1F03A4b5C64e9fA0b1D23c45E6f708",
		UnvaultingAddress: "0x1Bc4D372aE590F6cD8E10a27b4f95Cc31D86E934",
		Type:              ChainTypeEVM,
	}

	// Avalanche is the configuration for Avalanche C-Chain mainnet.
	Avalanche = Chain{
		ID:                43114,
		Name:              "avalanche",
		RPCURL:            "https://api.avax.network/ext/bc/C/rpc",
		HandlerAddress:    "0x7eF31DA9aD0DAc05B5a7156e3Cf842D10b49e8a6",
		UnvaultingAddress: "0x44c3Ca125F20b1A2Cd93d4E85F09C137Ba2065dD",
		Type:              ChainTypeEVM,
	}

	// Base is the configuration for Base mainnet.
	Base = Chain{
		ID:                8453,
		Name:              "base",
		RPCURL:            "https://mainnet.base.org",
		HandlerAddress:    "0x5C6Ea2C9891080021c0CE6F91d817F3Bc68dAE17",
		UnvaultingAddress: "0xdEF92154979CA03CF1b0A8dD4c27E5B7F8316049",
		Type:              ChainTypeEVM,
	}
)

// chains indexes the supported chain configurations by ID.
var chains = map[int64]Chain{
	EthereumMainnet.ID: EthereumMainnet,
	Goerli.ID:          Goerli,
	Polygon.ID:         Polygon,
	Mumbai.ID:          Mumbai,
	Avalanche.ID:       Avalanche,
	Base.ID:            Base,
}

// ChainByID returns the configuration for the given chain ID.
func ChainByID(id int64) (Chain, bool) {
	c, ok := chains[id]
	return c, ok
}

// RPCFor resolves the RPC endpoint for a chain ID, falling back to Ethereum
// mainnet's endpoint when the chain is unconfigured.
func RPCFor(id int64) string {
	if c, ok := chains[id]; ok {
		return c.RPCURL
	}
	return EthereumMainnet.RPCURL
}

// ChainIDString formats a chain ID the way the remote curated endpoints
// expect it (decimal string).
func ChainIDString(id int64) string {
	return strconv.FormatInt(id, 10)
}
