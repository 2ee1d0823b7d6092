package errors

import (
	"strings"

	"github.com/tangzhangming/tsrs/internal/i18n"
)

// ============================================================================
// 修复建议生成器
// ============================================================================

// SuggestionGenerator 修复建议生成器
type SuggestionGenerator struct{}

// NewSuggestionGenerator 创建修复建议生成器
func NewSuggestionGenerator() *SuggestionGenerator {
	return &SuggestionGenerator{}
}

// GetSuggestions 根据错误码和上下文获取修复建议
//
// 上下文键 construct 为语法结构名。
func (g *SuggestionGenerator) GetSuggestions(code string, context map[string]interface{}) []string {
	switch code {
	case T0002:
		return g.unsupportedStmtSuggestions(context)
	case T0006:
		return []string{i18n.T(i18n.HintRewriteAsMethodCall)}
	case T0007:
		return []string{i18n.T(i18n.HintUseIdentTarget)}
	case T0100:
		return []string{i18n.T(i18n.HintSplitElseArm)}
	case T0101, E0012:
		return []string{i18n.T(i18n.HintAddInitializer)}
	case T0103:
		return []string{i18n.T(i18n.HintMoveToStatement)}

	case D0001, D0003:
		return []string{i18n.T(i18n.HintCheckPath)}
	case D0002:
		return []string{i18n.T(i18n.HintCreateDir)}
	case D0005:
		return []string{i18n.T(i18n.HintRunInit)}
	}
	return nil
}

func (g *SuggestionGenerator) unsupportedStmtSuggestions(context map[string]interface{}) []string {
	construct, _ := context["construct"].(string)
	switch {
	case strings.HasPrefix(construct, "switch"):
		return []string{i18n.T(i18n.HintUseIfChain)}
	case strings.HasPrefix(construct, "for-in"), strings.HasPrefix(construct, "for-of"):
		return []string{i18n.T(i18n.HintUseWhileLoop)}
	}
	return nil
}

// ============================================================================
// 相似名称查找
// ============================================================================

// FindSimilar 查找编辑距离不超过 maxDistance 的最相似名称
func FindSimilar(name string, candidates []string, maxDistance int) string {
	bestMatch := ""
	bestDistance := maxDistance + 1

	for _, candidate := range candidates {
		distance := levenshteinDistance(name, candidate)
		if distance < bestDistance {
			bestDistance = distance
			bestMatch = candidate
		}
	}

	if bestDistance <= maxDistance {
		return bestMatch
	}
	return ""
}

// levenshteinDistance 计算 Levenshtein 编辑距离（忽略大小写）
func levenshteinDistance(s1, s2 string) int {
	s1 = strings.ToLower(s1)
	s2 = strings.ToLower(s2)
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	// 只保留上一行
	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(s2)]
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}

// ============================================================================
// 全局实例
// ============================================================================

var defaultSuggestionGenerator = NewSuggestionGenerator()

// GetSuggestions 使用默认生成器获取建议
func GetSuggestions(code string, context map[string]interface{}) []string {
	return defaultSuggestionGenerator.GetSuggestions(code, context)
}
