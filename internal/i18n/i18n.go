package i18n

import (
	"fmt"
	"strings"
	"sync"
)

// Language 语言类型
type Language string

const (
	LangEnglish Language = "en"
	LangChinese Language = "zh"
)

// 全局语言设置
var (
	currentLang Language = LangEnglish
	mu          sync.RWMutex
)

// SetLanguage 设置当前语言
func SetLanguage(lang Language) {
	mu.Lock()
	defer mu.Unlock()
	currentLang = lang
}

// ParseLanguage 解析语言标识
//
// 接受 --lang 和环境变量中的写法：zh、zh-CN、zh_TW.UTF-8、zh-Hans、
// en_US.UTF-8、chinese 等，大小写不敏感。无法识别时返回 false。
func ParseLanguage(s string) (Language, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	// 去掉编码和修饰后缀：zh_CN.UTF-8、de_DE@euro
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	primary := s
	if i := strings.IndexAny(s, "-_"); i >= 0 {
		primary = s[:i]
	}

	switch primary {
	case "zh", "chinese":
		return LangChinese, true
	case "en", "english", "c", "posix":
		return LangEnglish, true
	}
	return "", false
}

// SetLanguageFromString 从字符串设置语言，无法识别时使用英文
func SetLanguageFromString(lang string) {
	l, ok := ParseLanguage(lang)
	if !ok {
		l = LangEnglish
	}
	SetLanguage(l)
}

// GetLanguage 获取当前语言
func GetLanguage() Language {
	mu.RLock()
	defer mu.RUnlock()
	return currentLang
}

// T 翻译消息（支持格式化参数）
//
// 当前语言缺少的消息回退到英文，都找不到时返回原始 ID。
func T(msgID string, args ...interface{}) string {
	messages := messagesEN
	if GetLanguage() == LangChinese {
		messages = messagesZH
	}

	msg, ok := messages[msgID]
	if !ok {
		if msg, ok = messagesEN[msgID]; !ok {
			return msgID
		}
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}
