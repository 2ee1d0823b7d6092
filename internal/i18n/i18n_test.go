package i18n

import (
	"strings"
	"testing"
)

func TestMessagesComplete(t *testing.T) {
	for id := range messagesEN {
		if _, ok := messagesZH[id]; !ok {
			t.Errorf("message %q has no Chinese translation", id)
		}
	}
	for id := range messagesZH {
		if _, ok := messagesEN[id]; !ok {
			t.Errorf("message %q has no English text", id)
		}
	}
}

func TestFormatVerbsMatch(t *testing.T) {
	count := func(s string) int { return strings.Count(s, "%") - 2*strings.Count(s, "%%") }
	for id, en := range messagesEN {
		zh, ok := messagesZH[id]
		if !ok {
			continue
		}
		if count(en) != count(zh) {
			t.Errorf("message %q: expected %d format verbs in Chinese text, got %d", id, count(en), count(zh))
		}
	}
}

func TestTranslate(t *testing.T) {
	defer SetLanguage(LangEnglish)

	SetLanguage(LangEnglish)
	if got := T(ErrUnsupportedExpr, "template literal"); got != "unsupported expression: template literal" {
		t.Errorf("expected English message, got %q", got)
	}

	SetLanguageFromString("zh-cn")
	if GetLanguage() != LangChinese {
		t.Fatalf("expected Chinese, got %s", GetLanguage())
	}
	if got := T(ErrUnexpectedChar, '#'); got != "意外的字符 '#'" {
		t.Errorf("expected Chinese message, got %q", got)
	}

	if got := T("no.such.id"); got != "no.such.id" {
		t.Errorf("expected raw id for unknown message, got %q", got)
	}
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		input string
		lang  Language
		ok    bool
	}{
		{"zh", LangChinese, true},
		{"zh-CN", LangChinese, true},
		{"zh_TW.UTF-8", LangChinese, true},
		{"zh-Hans", LangChinese, true},
		{" Chinese ", LangChinese, true},
		{"en", LangEnglish, true},
		{"en_US.UTF-8", LangEnglish, true},
		{"C", LangEnglish, true},
		{"fr_FR", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		lang, ok := ParseLanguage(tt.input)
		if lang != tt.lang || ok != tt.ok {
			t.Errorf("ParseLanguage(%q): expected %q %v, got %q %v", tt.input, tt.lang, tt.ok, lang, ok)
		}
	}

	defer SetLanguage(LangEnglish)
	SetLanguageFromString("fr")
	if GetLanguage() != LangEnglish {
		t.Errorf("expected unknown language to fall back to English, got %s", GetLanguage())
	}
}
