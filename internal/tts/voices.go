package tts

import (
	"fmt"
	"sort"
)

// SupportedLanguages maps language codes to display names.
var SupportedLanguages = map[string]string{
	"en":    "English",
	"zh-TW": "Traditional Chinese",
	"zh-CN": "Simplified Chinese",
	"ja":    "Japanese",
	"ko":    "Korean",
	"fr":    "French",
	"de":    "German",
	"es":    "Spanish",
	"it":    "Italian",
	"ru":    "Russian",
	"pt":    "Portuguese",
	"th":    "Thai",
	"vi":    "Vietnamese",
}

// EdgeVoices lists neural voices per language; the first entry is the
// default for that language.
var EdgeVoices = map[string][]string{
	"zh-TW": {"zh-TW-HsiaoChenNeural", "zh-TW-YunJheNeural", "zh-TW-HsiaoYuNeural"},
	"zh-CN": {"zh-CN-XiaoxiaoNeural", "zh-CN-YunxiNeural", "zh-CN-YunyangNeural"},
	"en":    {"en-US-AriaNeural", "en-US-GuyNeural", "en-GB-SoniaNeural"},
	"ja":    {"ja-JP-NanamiNeural", "ja-JP-KeitaNeural"},
	"ko":    {"ko-KR-SoonBokNeural", "ko-KR-InJoonNeural"},
	"fr":    {"fr-FR-DeniseNeural", "fr-FR-HenriNeural"},
	"de":    {"de-DE-KatjaNeural", "de-DE-ConradNeural"},
	"es":    {"es-ES-AlvaroNeural", "es-ES-ElviraNeural"},
	"it":    {"it-IT-ElsaNeural", "it-IT-DiegoNeural"},
	"ru":    {"ru-RU-SvetlanaNeural", "ru-RU-DmitryNeural"},
	"pt":    {"pt-BR-FranciscaNeural", "pt-BR-AntonioNeural"},
	"th":    {"th-TH-PremwadeeNeural", "th-TH-NiwatNeural"},
	"vi":    {"vi-VN-HoaiMyNeural", "vi-VN-NamMinhNeural"},
}

const fallbackVoice = "en-US-AriaNeural"

// DefaultVoice picks the default voice for a language, falling back to
// English when the language has no voice table entry.
func DefaultVoice(lang string) string {
	if voices, ok := EdgeVoices[lang]; ok && len(voices) > 0 {
		return voices[0]
	}
	return fallbackVoice
}

// IsSupportedLanguage reports whether lang is in the recognized table.
// Unrecognized languages are a warning, not an error: the backend may
// still handle them.
func IsSupportedLanguage(lang string) bool {
	_, ok := SupportedLanguages[lang]
	return ok
}

// ListLanguages печатает таблицу поддерживаемых языков.
func ListLanguages() {
	fmt.Println("Поддерживаемые языки:")
	for _, code := range sortedKeys(SupportedLanguages) {
		fmt.Printf("  %-6s %s\n", code, SupportedLanguages[code])
	}
}

// ListVoices печатает доступные голоса Edge TTS по языкам.
func ListVoices() {
	fmt.Println("Голоса Edge TTS по языкам:")
	codes := make([]string, 0, len(EdgeVoices))
	for code := range EdgeVoices {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		fmt.Printf("\n%s (%s):\n", code, SupportedLanguages[code])
		for _, voice := range EdgeVoices[code] {
			fmt.Printf("  - %s\n", voice)
		}
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
