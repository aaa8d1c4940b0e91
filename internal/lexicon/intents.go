package lexicon

import "rural-assist/internal/models"

// Boundary fragments for patterns that must work on Indic script, where RE2's
// ASCII \b never fires. wordStart consumes the preceding separator, so it may
// only lead a pattern segment; wordEnd may only close a pattern.
const (
	wordStart = `(?:^|[^\p{L}\p{M}\p{N}_])`
	wordEnd   = `(?:$|[^\p{L}\p{M}\p{N}_])`
)

type intentEntry struct {
	name        models.IntentName
	description string
	keywords    []string
	patterns    []string
	entities    []string
	summary     string // listing text for user-facing intents
	examples    []string
}

// intentVocab is in declaration order; earlier intents win ties.
var intentVocab = []intentEntry{
	{
		name:        models.IntentSurveyMLA,
		description: "Find information about your local MLA",
		keywords:    []string{"mla", "विधायक", "member legislative assembly", "local representative", "assembly member"},
		patterns: []string{
			wordStart + `(who is|what is|tell me about|find|search).*(mla|विधायक|member legislative assembly)` + wordEnd,
			wordStart + `(mla|विधायक).*(name|information|details|contact)` + wordEnd,
			wordStart + `(my|our|local).*(mla|विधायक|representative)` + wordEnd,
		},
		entities: []string{models.EntityLocation, "constituency"},
		summary:  "Ask about MLA information",
		examples: []string{"Who is my MLA?", "Tell me about my local MLA"},
	},
	{
		name:        models.IntentSurveyMP,
		description: "Find information about your Member of Parliament",
		keywords:    []string{"mp", "सांसद", "member parliament", "parliament member", "lok sabha"},
		patterns: []string{
			wordStart + `(who is|what is|tell me about|find|search).*(mp|सांसद|member parliament)` + wordEnd,
			wordStart + `(mp|सांसद).*(name|information|details|contact)` + wordEnd,
			wordStart + `(my|our|local).*(mp|सांसद|parliament member)` + wordEnd,
		},
		entities: []string{models.EntityLocation, "constituency"},
		summary:  "Ask about MP information",
		examples: []string{"Who is my MP?", "Tell me about my Member of Parliament"},
	},
	{
		name:        models.IntentOpinionMLA,
		description: "Share feedback about your MLA's performance",
		keywords:    []string{"opinion", "feedback", "review", "satisfaction", "performance", "work", "राय"},
		patterns: []string{
			wordStart + `(opinion|feedback|review|satisfaction).*(mla|विधायक)` + wordEnd,
			wordStart + `(mla|विधायक).*(work|performance|good|bad|excellent|poor)` + wordEnd,
			wordStart + `(how is|what do you think).*(mla|विधायक)` + wordEnd,
		},
		entities: []string{"sentiment", models.EntityRepresentativeName},
	},
	{
		name:        models.IntentOpinionMP,
		description: "Share feedback about your MP's performance",
		keywords:    []string{"opinion", "feedback", "review", "satisfaction", "performance", "work", "राय"},
		patterns: []string{
			wordStart + `(opinion|feedback|review|satisfaction).*(mp|सांसद)` + wordEnd,
			wordStart + `(mp|सांसद).*(work|performance|good|bad|excellent|poor)` + wordEnd,
			wordStart + `(how is|what do you think).*(mp|सांसद)` + wordEnd,
		},
		entities: []string{"sentiment", models.EntityRepresentativeName},
	},
	{
		name:        models.IntentSchemeInfo,
		description: "Get information about government schemes",
		keywords:    []string{"scheme", "yojana", "योजना", "pmay", "housing", "awas", "आवास", "benefit", "subsidy"},
		patterns: []string{
			wordStart + `(what is|tell me about|information about|details of).*(scheme|yojana|योजना)` + wordEnd,
			wordStart + `(pmay|pradhan mantri awas yojana|housing scheme|आवास योजना)` + wordEnd,
			wordStart + `(government scheme|सरकारी योजना|benefit|subsidy|लाभ)` + wordEnd,
			wordStart + `(how to apply|eligibility|documents required).*(scheme|yojana)` + wordEnd,
		},
		entities: []string{models.EntitySchemeName},
		summary:  "Get information about government schemes",
		examples: []string{"What is PMAY scheme?", "Tell me about housing scheme"},
	},
	{
		name:        models.IntentPHCLocation,
		description: "Find nearby health facilities and hospitals",
		keywords:    []string{"hospital", "health", "phc", "doctor", "medical", "clinic", "अस्पताल", "स्वास्थ्य"},
		patterns: []string{
			wordStart + `(find|search|locate|where is).*(hospital|health center|phc|clinic|अस्पताल)` + wordEnd,
			wordStart + `(nearest|nearby|closest).*(hospital|health|medical|doctor|अस्पताल)` + wordEnd,
			wordStart + `(health facility|medical facility|primary health center)` + wordEnd,
			wordStart + `(emergency|ambulance|108)` + wordEnd,
		},
		entities: []string{models.EntityLocation, models.EntityFacilityType},
		summary:  "Find nearby health facilities",
		examples: []string{"Find hospitals near me", "Where is the nearest PHC?"},
	},
	{
		name:        models.IntentCommodityPrice,
		description: "Check current commodity prices in mandis",
		keywords:    []string{"price", "rate", "cost", "mandi", "market", "wheat", "rice", "dal", "कीमत", "दाम", "मंडी"},
		patterns: []string{
			wordStart + `(price|rate|cost|कीमत|दाम).*(wheat|rice|dal|onion|potato|गेहूं|चावल|दाल)` + wordEnd,
			wordStart + `(mandi|market|मंडी).*(price|rate|भाव)` + wordEnd,
			wordStart + `(current|today|latest).*(price|rate|कीमत)` + wordEnd,
			wordStart + `(commodity|crop|फसल).*(price|market|मंडी)` + wordEnd,
		},
		entities: []string{models.EntityCommodityName, models.EntityLocation, "market_name"},
		summary:  "Get current commodity prices",
		examples: []string{"What is wheat price today?", "Current rice prices in mandi"},
	},
	{
		name:        models.IntentPincodeHelp,
		description: "Get information about pincodes and locations",
		keywords:    []string{"pincode", "postal code", "zip code", "pin", "पिन कोड", "district", "village"},
		patterns: []string{
			wordStart + `(pincode|postal code|pin code|पिन कोड).*(information|details|find)` + wordEnd,
			wordStart + `(which district|what district).*(pincode|pin|पिन)` + wordEnd,
			wordStart + `(village|district|state).*(pincode|pin code)` + wordEnd,
			`(?:^|[^0-9])[0-9]{6}[^0-9](?:.*[^\p{L}\p{M}\p{N}_])?(information|details|location)` + wordEnd,
		},
		entities: []string{models.EntityPincode, models.EntityLocation},
		summary:  "Get pincode information",
		examples: []string{"Information about pincode 110001", "Which district is 560001?"},
	},
	{
		name:        models.IntentGeneralFAQ,
		description: "General questions about government services",
		keywords:    []string{"how to", "apply", "documents", "process", "procedure", "कैसे", "आवेदन", "दस्तावेज"},
		patterns: []string{
			wordStart + `(how to|कैसे).*(apply|आवेदन|register|get)` + wordEnd,
			wordStart + `(documents|papers|दस्तावेज).*(required|needed|चाहिए)` + wordEnd,
			wordStart + `(process|procedure|प्रक्रिया|steps)` + wordEnd,
			wordStart + `(ration card|voter id|pan card|aadhaar|राशन कार्ड)` + wordEnd,
		},
		entities: []string{"document_type", "service_type"},
		summary:  "General questions and FAQ",
		examples: []string{"How to apply for ration card?", "What documents needed for Aadhaar?"},
	},
	{
		name:        models.IntentFallback,
		description: "Get help and support",
		keywords:    []string{"help", "support", "contact", "complaint", "problem", "मदद", "सहायता"},
		patterns: []string{
			wordStart + `(help|support|assistance|मदद|सहायता)` + wordEnd,
			wordStart + `(complaint|problem|issue|समस्या|शिकायत)` + wordEnd,
			wordStart + `(contact|call|phone|संपर्क)` + wordEnd,
		},
	},
}
