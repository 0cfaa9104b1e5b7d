package emblem

// AssetInfo describes a hardcoded asset in the registry: the project it
// belongs to and how to present it.
type AssetInfo struct {
	ProjectName string
	Series      int
	Order       int
	Image       string
	Video       string
}

// assetRegistry is the merged hardcoded asset mapping, loaded once at
// process start and read-only thereafter. Keys are unique per asset name;
// an asset name never maps to two different projects.
var assetRegistry = map[string]AssetInfo{
	// Rare Pepe (Counterparty)
	"RAREPEPE":     {ProjectName: "Rare Pepe", Series: 1, Order: 1, Image: "https://static.emblemvault.io/rarepepe/RAREPEPE.jpg"},
	"FREEDOMKEK":   {ProjectName: "Rare Pepe", Series: 1, Order: 2, Image: "https://static.emblemvault.io/rarepepe/FREEDOMKEK.jpg"},
	"PEPENOPOULOS": {ProjectName: "Rare Pepe", Series: 2, Order: 16, Image: "https://static.emblemvault.io/rarepepe/PEPENOPOULOS.jpg"},
	"PEPEFLOWERS":  {ProjectName: "Rare Pepe", Series: 4, Order: 29, Image: "https://static.emblemvault.io/rarepepe/PEPEFLOWERS.jpg"},
	"NAKAMOTOCARD": {ProjectName: "Rare Pepe", Series: 1, Order: 9, Image: "https://static.emblemvault.io/rarepepe/NAKAMOTOCARD.jpg"},
	"VAPORPEPE":    {ProjectName: "Rare Pepe", Series: 9, Order: 3, Image: "https://static.emblemvault.io/rarepepe/VAPORPEPE.gif", Video: "https://static.emblemvault.io/rarepepe/VAPORPEPE.mp4"},
	"PEPEBALT":     {ProjectName: "Rare Pepe", Series: 12, Order: 44, Image: "https://static.emblemvault.io/rarepepe/PEPEBALT.jpg"},

	// Fake Rares (Counterparty)
	"FAKEASF":    {ProjectName: "Fake Rares", Series: 1, Order: 1, Image: "https://static.emblemvault.io/fakerares/FAKEASF.jpg"},
	"WARFARE":    {ProjectName: "Fake Rares", Series: 2, Order: 18, Image: "https://static.emblemvault.io/fakerares/WARFARE.jpg"},
	"FAKEWHALE":  {ProjectName: "Fake Rares", Series: 3, Order: 7, Image: "https://static.emblemvault.io/fakerares/FAKEWHALE.gif", Video: "https://static.emblemvault.io/fakerares/FAKEWHALE.mp4"},
	"LAFAKEWORA": {ProjectName: "Fake Rares", Series: 5, Order: 31, Image: "https://static.emblemvault.io/fakerares/LAFAKEWORA.jpg"},

	// Dank Rares (Counterparty)
	"DANKDIRECTIVE": {ProjectName: "Dank Rares", Series: 1, Order: 4, Image: "https://static.emblemvault.io/dankrares/DANKDIRECTIVE.jpg"},
	"DANKMOON":      {ProjectName: "Dank Rares", Series: 2, Order: 12, Image: "https://static.emblemvault.io/dankrares/DANKMOON.jpg"},

	// Spells of Genesis (Counterparty)
	"FDCARD":      {ProjectName: "Spells of Genesis", Series: 1, Order: 1, Image: "https://static.emblemvault.io/sog/FDCARD.jpg"},
	"SATOSHICARD": {ProjectName: "Spells of Genesis", Series: 1, Order: 5, Image: "https://static.emblemvault.io/sog/SATOSHICARD.jpg"},
	"DROPLISTER":  {ProjectName: "Spells of Genesis", Series: 2, Order: 21, Image: "https://static.emblemvault.io/sog/DROPLISTER.jpg"},

	// Age of Chains (Counterparty)
	"BITCOINANGEL": {ProjectName: "Age of Chains", Series: 1, Order: 2, Image: "https://static.emblemvault.io/aoc/BITCOINANGEL.jpg"},
	"SAFEHAVEN":    {ProjectName: "Age of Chains", Series: 1, Order: 14, Image: "https://static.emblemvault.io/aoc/SAFEHAVEN.jpg"},

	// Bitcorn Crops (Counterparty)
	"CROPHARVEST": {ProjectName: "Bitcorn Crops", Series: 1, Order: 3, Image: "https://static.emblemvault.io/bitcorn/CROPHARVEST.jpg"},

	// Memory Chain (Counterparty)
	"MEMORYANGEL": {ProjectName: "Memory Chain", Series: 1, Order: 6, Image: "https://static.emblemvault.io/memorychain/MEMORYANGEL.jpg"},

	// Oasis Mining (Dogeparty)
	"DOGEPARTYCARD": {ProjectName: "Dogeparty", Series: 1, Order: 1, Image: "https://static.emblemvault.io/dogeparty/DOGEPARTYCARD.jpg"},
}

// LookupAsset returns the registry entry for an asset name.
func LookupAsset(name string) (AssetInfo, bool) {
	info, ok := assetRegistry[name]
	return info, ok
}
