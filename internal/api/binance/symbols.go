package binance

// Symbols maps the governance-forum protocol names the post store uses to the
// Binance trading pairs their tokens trade under. Protocols missing here (or
// delisted) simply end up without a price series, which the impact stage
// treats as a normal skip.
var Symbols = map[string]string{
	"pankcakeswap": "CAKEUSDT",
	"balancer":     "BALUSDT",
	"aave":         "AAVEUSDT",
	"arbitrum":     "ARBUSDT",
	"apecoin":      "APEUSDT",
	"sushi":        "SUSHIUSDT",
	"curve":        "CRVUSDT",
	"uniswap":      "UNIUSDT",
	"venus":        "XVSUSDT",
	"badger":       "BADGERUSDT",
	"optimism":     "OPUSDT",
	"quickswap":    "QUICKUSDT",
	"synapse":      "SYNUSDT",
	"pendle":       "PENDLEUSDT",
	"0xprotocol":   "ZRXUSDT",
	"lido":         "LDOUSDT",
	"compound":     "COMPUSDT",
	"starknet":     "STRKUSDT",
	"etherfi":      "ETHFIUSDT",
	"immutablex":   "IMXUSDT",
	"renzo":        "REZUSDT",
}
