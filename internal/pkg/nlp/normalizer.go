package nlp

import (
	"regexp"
	"sort"

	"github.com/equiscribe/scribego/internal/pkg/consent"
	"github.com/pkg/errors"
)

//CulturalNormalizer rewrites culturally specific expressions into clinical phrasing.
//The goal is not to erase cultural language but to make implicit clinical
//meaning explicit for downstream models. The original text stays untouched
//at the application layer
type CulturalNormalizer struct {
	rules Rules
}

//NewCulturalNormalizer creates CulturalNormalizer instance
func NewCulturalNormalizer(rules Rules) (*CulturalNormalizer, error) {
	if rules == nil {
		return nil, errors.New("No rules provided")
	}
	return &CulturalNormalizer{rules: rules}, nil
}

//Normalize applies the cultural phrase table when consent allows it
func (n *CulturalNormalizer) Normalize(text string, cc *consent.Context) string {
	if text == "" {
		return text
	}
	if cc != nil && !cc.CulturalAIAllowed {
		return text
	}
	return replacePhrases(text, n.rules.Cultural())
}

//IndigenousNormalizer adds parallel clinical phrasing for spiritual or
//experiential expressions without pathologizing them
type IndigenousNormalizer struct {
	rules Rules
}

//NewIndigenousNormalizer creates IndigenousNormalizer instance
func NewIndigenousNormalizer(rules Rules) (*IndigenousNormalizer, error) {
	if rules == nil {
		return nil, errors.New("No rules provided")
	}
	return &IndigenousNormalizer{rules: rules}, nil
}

//Normalize applies the indigenous phrase table when consent allows it
func (n *IndigenousNormalizer) Normalize(text string, cc *consent.Context) string {
	if text == "" {
		return text
	}
	if cc != nil && !cc.CulturalAIAllowed {
		return text
	}
	return replacePhrases(text, n.rules.Indigenous())
}

//replacePhrases does case insensitive phrase replacement in a fixed order
func replacePhrases(text string, rules map[string]string) string {
	phrases := make([]string, 0, len(rules))
	for p := range rules {
		phrases = append(phrases, p)
	}
	sort.Strings(phrases)
	res := text
	for _, p := range phrases {
		re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(p))
		res = re.ReplaceAllLiteralString(res, rules[p])
	}
	return res
}
