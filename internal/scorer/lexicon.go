package scorer

// Lexicon holds the keyword tables the scorer matches against. The tables
// are injectable so deployments can tune them without code changes.
type Lexicon struct {
	Bullish []string
	Bearish []string

	Critical []string
	High     []string
	Medium   []string

	// ReliableSources are substring-matched against the source name and
	// grant a confidence bonus.
	ReliableSources []string

	// Tickers is the recognized asset vocabulary. Aliases maps full names
	// to their canonical ticker.
	Tickers []string
	Aliases map[string]string

	// Relevance gates whether a text is worth scoring at all.
	Relevance []string
}

// DefaultLexicon returns the built-in crypto keyword tables.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Bullish: []string{
			"bullish", "moon", "pump", "surge", "rally", "breakout", "adoption",
			"partnership", "approval", "institutional", "etf", "upgrade", "launch",
			"positive", "growth", "increase", "rise", "gain", "profit", "buy",
		},
		Bearish: []string{
			"bearish", "crash", "dump", "drop", "fall", "decline", "sell-off",
			"regulation", "ban", "hack", "exploit", "lawsuit", "investigation",
			"negative", "loss", "decrease", "fear", "panic", "sell", "short",
		},
		Critical: []string{"hack", "exploit", "ban", "regulation", "lawsuit", "sec", "crash"},
		High:     []string{"partnership", "adoption", "etf", "institutional", "upgrade", "launch"},
		Medium:   []string{"analysis", "prediction", "trend", "market", "price"},
		ReliableSources: []string{"coindesk", "cointelegraph", "reuters", "bloomberg"},
		Tickers: []string{
			"BTC", "ETH", "SOL", "ADA", "DOT", "LINK", "MATIC", "AVAX", "ATOM",
			"XRP", "LTC", "BCH", "ETC", "DOGE", "SHIB", "UNI", "AAVE", "COMP",
		},
		Aliases: map[string]string{
			"BITCOIN":   "BTC",
			"ETHEREUM":  "ETH",
			"SOLANA":    "SOL",
			"CARDANO":   "ADA",
			"POLKADOT":  "DOT",
			"CHAINLINK": "LINK",
		},
		Relevance: []string{
			"bitcoin", "btc", "ethereum", "eth", "crypto", "cryptocurrency", "blockchain",
			"defi", "nft", "altcoin", "trading", "exchange", "wallet", "mining",
			"solana", "cardano", "polkadot", "chainlink", "binance", "coinbase",
		},
	}
}
