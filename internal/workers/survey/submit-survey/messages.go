// internal/workers/survey/submit-survey/messages.go
package submitsurvey

import (
	"strings"

	"rural-assist/internal/models"
)

type surveyText struct {
	intro     string
	thanks    string
	mla       string
	mp        string
	questions map[string]string
}

const (
	questionMLAName      = "mla_name"
	questionMPName       = "mp_name"
	questionMLAOpinion   = "mla_opinion"
	questionMPOpinion    = "mp_opinion"
	questionSatisfaction = "satisfaction"
)

var surveyTexts = map[models.Language]surveyText{
	models.LanguageEnglish: {
		intro:  "Namaste! I would like to conduct a short survey about your local representatives. This will help improve government services. Your responses are confidential. Would you like to participate?",
		thanks: "Thank you for participating in the survey! Your feedback about {mla} (MLA) and {mp} (MP) has been recorded. This information will help improve government services in your area.",
		mla:    "your MLA",
		mp:     "your MP",
		questions: map[string]string{
			questionMLAName:      "What is the name of your MLA (Member of Legislative Assembly)?",
			questionMPName:       "What is the name of your MP (Member of Parliament)?",
			questionMLAOpinion:   "Please share your opinion about your MLA's work (optional):",
			questionMPOpinion:    "Please share your opinion about your MP's work (optional):",
			questionSatisfaction: "On a scale of 1-10, how satisfied are you with your local representatives?",
		},
	},
	models.LanguageHindi: {
		intro:  "नमस्ते! मैं आपके स्थानीय प्रतिनिधियों के बारे में एक छोटा सर्वेक्षण करना चाहूंगा। इससे सरकारी सेवाओं में सुधार होगा। आपके उत्तर गोपनीय हैं। क्या आप भाग लेना चाहेंगे?",
		thanks: "सर्वेक्षण में भाग लेने के लिए धन्यवाद! {mla} (विधायक) और {mp} (सांसद) के बारे में आपकी प्रतिक्रिया दर्ज की गई है। यह जानकारी आपके क्षेत्र में सरकारी सेवाओं को बेहतर बनाने में मदद करेगी।",
		mla:    "आपके विधायक",
		mp:     "आपके सांसद",
		questions: map[string]string{
			questionMLAName:      "आपके विधायक (MLA) का नाम क्या है?",
			questionMPName:       "आपके सांसद (MP) का नाम क्या है?",
			questionMLAOpinion:   "कृपया अपने विधायक के काम के बारे में अपनी राय साझा करें (वैकल्पिक):",
			questionMPOpinion:    "कृपया अपने सांसद के काम के बारे में अपनी राय साझा करें (वैकल्पिक):",
			questionSatisfaction: "1-10 के पैमाने पर, आप अपने स्थानीय प्रतिनिधियों से कितने संतुष्ट हैं?",
		},
	},
	models.LanguageTelugu: {
		intro:  "నమస్కారం! మీ స్థానిక ప్రతినిధుల గురించి ఒక చిన్న సర్వే చేయాలని అనుకుంటున్నాను. ఇది ప్రభుత్వ సేవలను మెరుగుపరచడంలో సహాయపడుతుంది. మీ సమాధానాలు గోప్యంగా ఉంటాయి. మీరు పాల్గొనాలని అనుకుంటున్నారా?",
		thanks: "సర్వేలో పాల్గొన్నందుకు ధన్యవాదాలు! {mla} (MLA) మరియు {mp} (MP) గురించి మీ అభిప్రాయం నమోదు చేయబడింది. ఈ సమాచారం మీ ప్రాంతంలో ప్రభుత్వ సేవలను మెరుగుపరచడంలో సహాయపడుతుంది.",
		mla:    "మీ MLA",
		mp:     "మీ MP",
		questions: map[string]string{
			questionMLAName:      "మీ MLA (శాసనసభ సభ్యుడు) పేరు ఏమిటి?",
			questionMPName:       "మీ MP (పార్లమెంట్ సభ్యుడు) పేరు ఏమిటి?",
			questionMLAOpinion:   "దయచేసి మీ MLA పని గురించి మీ అభిప్రాయం పంచుకోండి (ఐచ్ఛికం):",
			questionMPOpinion:    "దయచేసి మీ MP పని గురించి మీ అభిప్రాయం పంచుకోండి (ఐచ్ఛికం):",
			questionSatisfaction: "1-10 స్కేల్‌లో, మీ స్థానిక ప్రతినిధులతో మీరు ఎంత సంతృప్తిగా ఉన్నారు?",
		},
	},
}

var nextSteps = []string{
	"Your feedback has been recorded",
	"You can now ask questions about government services",
	"Type 'help' to see what I can assist you with",
}

func textFor(lang models.Language) surveyText {
	if t, ok := surveyTexts[lang]; ok {
		return t
	}
	return surveyTexts[models.LanguageEnglish]
}

// Start returns the localized survey introduction and its five steps.
func Start(input StartInput) models.SurveyIntro {
	lang := models.NormalizeLanguage(input.Language)
	t := textFor(lang)

	return models.SurveyIntro{
		Message:  t.intro,
		Language: lang,
		Channel:  models.NormalizeChannel(input.Channel),
		Steps: []models.SurveyStep{
			{Step: 1, Question: t.questions[questionMLAName], Type: "text", Required: true},
			{Step: 2, Question: t.questions[questionMPName], Type: "text", Required: true},
			{Step: 3, Question: t.questions[questionMLAOpinion], Type: "text", Required: false},
			{Step: 4, Question: t.questions[questionMPOpinion], Type: "text", Required: false},
			{Step: 5, Question: t.questions[questionSatisfaction], Type: "rating", Scale: "1-10", Required: true},
		},
	}
}

// thankYou names the representatives, falling back to a generic phrase
// when a name was not given.
func thankYou(lang models.Language, mlaName, mpName string) string {
	t := textFor(lang)
	mla := strings.TrimSpace(mlaName)
	if mla == "" {
		mla = t.mla
	}
	mp := strings.TrimSpace(mpName)
	if mp == "" {
		mp = t.mp
	}
	return strings.NewReplacer("{mla}", mla, "{mp}", mp).Replace(t.thanks)
}
