package match

// BuildConceptMap returns the static synonym table: canonical concept key
// to member tokens. Families are disjoint; a token belongs to at most one
// concept. The table is a fixed heuristic, not a semantic model.
func BuildConceptMap() map[string][]string {
	return map[string][]string{
		// Hardware
		"processor": {"processor", "processors", "cpu", "chip", "chipset", "core", "cores", "ghz", "silicon"},
		"memory":    {"memory", "ram", "ddr4", "ddr5"},
		"storage":   {"storage", "ssd", "nvme", "hdd", "drive", "disk", "capacity"},
		"display":   {"display", "screen", "panel", "resolution", "retina", "oled", "ips", "inch", "nits"},
		"graphics":  {"graphics", "gpu", "geforce", "radeon", "rtx", "gtx"},
		"battery":   {"battery", "batteries", "charge", "charging", "mah"},
		"weight":    {"weight", "lightweight", "light", "slim", "thin", "portable", "compact"},
		"keyboard":  {"keyboard", "keys", "backlit", "trackpad", "touchpad"},
		"ports":     {"ports", "usb", "hdmi", "thunderbolt", "wifi", "bluetooth", "connectivity"},

		// Digital services
		"speed":    {"speed", "fast", "faster", "quick", "rapid", "instant", "snappy", "performance", "powerful"},
		"quality":  {"quality", "premium", "crisp", "reliable", "solid"},
		"playback": {"streaming", "stream", "streams", "watch", "watching", "playback", "video", "videos"},
		"offline":  {"download", "downloads", "offline"},
		"content":  {"content", "library", "catalog", "titles", "shows", "movies", "originals"},
		"devices":  {"devices", "device", "simultaneous", "screens", "multi-device"},

		// Casino
		"bonus":      {"bonus", "bonuses", "welcome", "match", "reward", "rewards", "promo", "promotion", "promotions"},
		"freespins":  {"freespins", "free-spins", "spins", "spin"},
		"deposit":    {"deposit", "deposits"},
		"withdrawal": {"withdrawal", "withdrawals", "payout", "payouts", "cashout", "cash-out"},
		"games":      {"games", "game", "slots", "slot", "roulette", "blackjack", "poker", "jackpot", "jackpots", "dealer"},
		"payments":   {"payment", "payments", "paypal", "visa", "mastercard", "crypto", "bitcoin", "skrill", "neteller"},
		"support":    {"support", "help", "chat", "service", "assistance"},
		"security":   {"security", "secure", "license", "licensed", "regulated", "safe", "trusted", "encryption"},

		// Sports betting
		"odds":    {"odds", "lines", "spreads", "boost", "boosted", "enhanced"},
		"betting": {"betting", "bets", "bet", "wager", "wagering", "stake", "stakes", "parlay"},
		"markets": {"markets", "market", "sports", "leagues", "football", "basketball", "tennis", "soccer"},
		"live":    {"live", "in-play", "inplay", "real-time", "realtime"},

		// Software / SaaS
		"trial":        {"trial", "demo", "freemium"},
		"seats":        {"seats", "users", "members", "team", "teams", "collaborators"},
		"integrations": {"integrations", "integration", "api", "apis", "apps", "plugins", "webhooks"},
		"analytics":    {"analytics", "reports", "reporting", "insights", "dashboard", "dashboards", "metrics", "tracking"},
		"cloud":        {"cloud", "sync", "backup", "backups", "hosted", "online"},

		// Subscription / pricing
		"price":        {"price", "prices", "pricing", "cost", "costs", "monthly", "annual", "subscription", "plan", "plans", "affordable", "cheap"},
		"cancellation": {"cancel", "cancellation", "refund", "refunds", "money-back", "guarantee"},
		"ads":          {"ads", "ad-free", "adfree", "advertising", "commercials"},
	}
}

// Resolver maps tokens to their canonical concept. Tokens outside the
// table resolve to themselves and still participate in matching as
// literal keywords.
type Resolver struct {
	byToken map[string]string
}

// NewResolver builds a Resolver from the static concept table.
func NewResolver() *Resolver {
	concepts := BuildConceptMap()
	byToken := make(map[string]string, len(concepts)*6)
	for concept, members := range concepts {
		for _, m := range members {
			byToken[m] = concept
		}
	}
	return &Resolver{byToken: byToken}
}

// Concept resolves a single token.
func (r *Resolver) Concept(token string) string {
	if c, ok := r.byToken[token]; ok {
		return c
	}
	return token
}

// Normalize resolves every token and deduplicates the result, preserving
// first-occurrence order.
func (r *Resolver) Normalize(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		c := r.Concept(tok)
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
