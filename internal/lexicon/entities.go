package lexicon

import "rural-assist/internal/models"

// Generic extractors, applied to the original text case-insensitively.
var entityPatternSpecs = []struct {
	key     string
	pattern string
}{
	{models.EntityPincode, `(?:^|[^0-9])([0-9]{6})(?:[^0-9]|$)`},
	{models.EntityPhone, `(?:^|[^0-9-])([0-9]{10}|[0-9]{3}-[0-9]{3}-[0-9]{4})(?:[^0-9-]|$)`},
	{models.EntityLocation, `(?i)` + wordStart + `(delhi|mumbai|bangalore|chennai|kolkata|hyderabad|pune|ahmedabad|jaipur|lucknow)` + wordEnd},
	{models.EntityCommodity, `(?i)` + wordStart + `(wheat|rice|dal|onion|potato|tomato|sugar|oil|गेहूं|चावल|दाल|प्याज|आलू)` + wordEnd},
	{models.EntityScheme, `(?i)` + wordStart + `(pmay|jan aushadhi|ayushman bharat|kisan|pradhan mantri|आवास योजना)` + wordEnd},
}

// representativeNamePatterns match Title-Case names in the original text.
var representativeNamePatterns = []string{
	`(?:^|[^\p{L}])([A-Z][a-z]+ [A-Z][a-z]+)(?:$|[^\p{L}])`,
	`(?:^|[^\p{L}])([A-Z][a-z]+ [A-Z]\. [A-Z][a-z]+)(?:$|[^\p{L}])`,
}

// Intent-specific vocabularies, in priority order. The first substring hit wins.
var (
	schemeKeywords    = []string{"pmay", "awas", "housing", "jan aushadhi", "ayushman", "kisan"}
	commodityKeywords = []string{"wheat", "rice", "dal", "onion", "potato", "tomato", "sugar"}
	facilityKeywords  = []string{"hospital", "phc", "clinic", "health center"}
)

var requiredEntities = map[models.IntentName][]string{
	models.IntentSurveyMLA:      {models.EntityLocation},
	models.IntentSurveyMP:       {models.EntityLocation},
	models.IntentOpinionMLA:     {models.EntityRepresentativeName},
	models.IntentOpinionMP:      {models.EntityRepresentativeName},
	models.IntentPHCLocation:    {models.EntityLocation},
	models.IntentCommodityPrice: {models.EntityCommodityName},
	models.IntentPincodeHelp:    {models.EntityPincode},
}
