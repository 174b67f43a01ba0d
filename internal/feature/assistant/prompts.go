package assistant

const (
	ContextJewelry  = "jewelry"
	ContextClothing = "clothing"
)

const jewelryPrompt = `You are Glimmr's AI jewelry assistant. Provide helpful responses on jewelry, ` +
	`recommending earrings based on face shape, style, or ethnic outfits (e.g., sarees, lehengas). ` +
	`Suggest products from our collection. Be friendly and knowledgeable about jewelry trends and styling.`

const clothingPrompt = `You are Glimmr's AI fashion assistant specializing in clothing recommendations. ` +
	`You help users find the perfect outfits for different occasions, body types, and styles. ` +
	`Provide helpful fashion advice, styling tips, and outfit suggestions. ` +
	`Be friendly, knowledgeable, and specific in your recommendations.`

const stylistPrompt = `You are a professional fashion stylist. Provide detailed, practical clothing ` +
	`recommendations with specific styling advice.`

const stylistRequest = `Provide detailed clothing recommendations for:
Occasion: %s
Body Type: %s
Style Preference: %s
Budget: %s

Give specific outfit suggestions, styling tips, and color recommendations.`

// Sampling settings per endpoint.
const (
	chatMaxTokens      = 500
	chatTemperature    = 0.7
	stylistMaxTokens   = 800
	stylistTemperature = 0.8
	suggestionLimit    = 3
)

var (
	// any of these substrings turns on jewelry suggestions
	jewelryTriggers = []string{"recommend", "earring"}
	// whole words that double as earring subcategories
	jewelryStyles = map[string]bool{
		"studs": true, "jhumkas": true, "hoops": true, "drops": true,
		"chandeliers": true, "traditional": true, "modern": true,
	}
	clothingWords = map[string]bool{
		"dress": true, "saree": true, "lehenga": true, "kurta": true,
		"top": true, "blouse": true, "pants": true, "skirt": true,
	}
	clothingPairingTags = []string{"ethnic", "traditional", "modern"}
)
