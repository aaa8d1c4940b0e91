// internal/models/language.go
package models

import "strings"

// Language is one of the closed set of supported response languages.
type Language string

const (
	LanguageEnglish Language = "english"
	LanguageHindi   Language = "hindi"
	LanguageTelugu  Language = "telugu"
)

// SupportedLanguages lists languages in their canonical order.
var SupportedLanguages = []Language{LanguageEnglish, LanguageHindi, LanguageTelugu}

// NormalizeLanguage maps an arbitrary code to a supported language.
// Unknown codes fall back to english.
func NormalizeLanguage(code string) Language {
	switch Language(strings.ToLower(strings.TrimSpace(code))) {
	case LanguageHindi:
		return LanguageHindi
	case LanguageTelugu:
		return LanguageTelugu
	default:
		return LanguageEnglish
	}
}

// Channel identifies how a citizen reached the bot.
type Channel string

const (
	ChannelWeb      Channel = "web"
	ChannelSMS      Channel = "sms"
	ChannelVoice    Channel = "voice"
	ChannelWhatsApp Channel = "whatsapp"
)

// NormalizeChannel defaults unknown channels to web.
func NormalizeChannel(code string) Channel {
	switch Channel(strings.ToLower(strings.TrimSpace(code))) {
	case ChannelSMS:
		return ChannelSMS
	case ChannelVoice:
		return ChannelVoice
	case ChannelWhatsApp:
		return ChannelWhatsApp
	default:
		return ChannelWeb
	}
}
