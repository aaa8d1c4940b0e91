package lexicon

import "rural-assist/internal/models"

type sentimentSpec struct {
	positive     []string
	negative     []string
	neutral      []string
	intensifiers []string
	negators     []string
}

// Multi-word entries are kept for completeness; the token scan only ever
// sees single tokens.
var sentimentSpecs = map[models.Language]sentimentSpec{
	models.LanguageEnglish: {
		positive: []string{
			"good", "great", "excellent", "amazing", "wonderful", "fantastic", "awesome",
			"helpful", "useful", "effective", "satisfied", "happy", "pleased", "impressed",
			"outstanding", "brilliant", "superb", "marvelous", "terrific", "fabulous",
			"appreciate", "grateful", "thankful", "commend", "praise", "recommend",
			"love", "like", "enjoy", "admire", "respect", "support", "approve",
		},
		negative: []string{
			"bad", "terrible", "awful", "horrible", "disgusting", "pathetic", "useless",
			"disappointed", "frustrated", "angry", "upset", "annoyed", "irritated",
			"dissatisfied", "unhappy", "displeased", "concerned", "worried", "troubled",
			"hate", "dislike", "despise", "condemn", "criticize", "complain", "oppose",
			"poor", "worst", "failure", "problem", "issue", "corrupt", "incompetent",
		},
		neutral: []string{
			"okay", "fine", "average", "normal", "standard", "typical", "regular",
			"moderate", "fair", "reasonable", "acceptable", "adequate", "sufficient",
		},
		intensifiers: []string{"very", "extremely", "really", "quite", "absolutely", "completely", "totally"},
		negators:     []string{"not", "no", "never", "nothing", "nobody", "nowhere", "neither", "nor"},
	},
	models.LanguageHindi: {
		positive: []string{
			"अच्छा", "बहुत अच्छा", "उत्कृष्ट", "शानदार", "बेहतरीन", "प्रभावी", "उपयोगी",
			"खुश", "संतुष्ट", "प्रसन्न", "धन्यवाद", "आभारी", "सराहना", "समर्थन",
			"पसंद", "प्रेम", "सम्मान", "तारीफ", "प्रशंसा", "बधाई", "काम का",
		},
		negative: []string{
			"बुरा", "गलत", "खराब", "भयानक", "निराश", "परेशान", "गुस्सा", "चिंतित",
			"असंतुष्ट", "नाखुश", "शिकायत", "समस्या", "परेशानी", "विरोध", "नापसंद",
			"घृणा", "आपत्ति", "दुखी", "कष्ट", "तकलीफ", "भ्रष्ट", "अक्षम",
		},
		neutral:      []string{"ठीक", "सामान्य", "औसत", "साधारण", "मध्यम", "उचित", "स्वीकार्य"},
		intensifiers: []string{"बहुत", "अत्यधिक", "काफी", "पूरी तरह", "बिल्कुल", "सच में"},
		negators:     []string{"नहीं", "न", "कभी नहीं", "कुछ नहीं", "कोई नहीं"},
	},
	models.LanguageTelugu: {
		positive: []string{
			"మంచి", "చాలా మంచి", "అద్భుతం", "అమోఘం", "అందం", "సంతోషం", "ఆనందం",
			"కృతజ్ఞత", "ధన్యవాదాలు", "మెచ్చుకోవాలి", "మద్దతు", "ఇష్టం", "ప్రేమ",
		},
		negative: []string{
			"చెడు", "దారుణం", "భయంకరం", "నిరాశ", "కోపం", "దుఃఖం", "సమస్య",
			"ఇబ్బంది", "వ్యతిరేకత", "అసంతృప్తి", "ఫిర్యాదు", "ఇష్టం లేదు",
		},
		neutral:      []string{"సరే", "సాధారణం", "మధ్యమం", "ఆమోదయోగ్యం", "సరిపోతుంది"},
		intensifiers: []string{"చాలా", "అత్యంత", "పూర్తిగా", "నిజంగా", "మరీ"},
		negators:     []string{"లేదు", "కాదు", "ఎప్పుడూ లేదు", "ఏమీ లేదు"},
	},
}

// Context categories for phrase-level sentiment.
const (
	ContextWorkPerformance = "work_performance"
	ContextServiceQuality  = "service_quality"
	ContextAccessibility   = "accessibility"
)

type contextSpec struct {
	category string
	positive []string
	negative []string
}

var contextSpecs = []contextSpec{
	{
		category: ContextWorkPerformance,
		positive: []string{"doing good work", "working well", "effective work", "good job"},
		negative: []string{"not working", "poor work", "ineffective", "bad job"},
	},
	{
		category: ContextServiceQuality,
		positive: []string{"good service", "helpful service", "quick response", "efficient"},
		negative: []string{"poor service", "slow response", "unhelpful", "inefficient"},
	},
	{
		category: ContextAccessibility,
		positive: []string{"easily accessible", "available", "reachable", "approachable"},
		negative: []string{"not accessible", "unavailable", "unreachable", "difficult to reach"},
	},
}

// romanizedHindiFunctionWords flag Hindi written in Latin script.
var romanizedHindiFunctionWords = []string{"hai", "hain", "ka", "ki", "ke", "mein", "aur", "yeh", "woh"}
