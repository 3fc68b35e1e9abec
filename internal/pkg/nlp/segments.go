package nlp

import (
	"strings"
	"unicode"

	"github.com/equiscribe/scribego/internal/pkg/domain"
)

//Segments splits a transcript into sentence segments.
//Every segment is labeled CLINICAL_CORE for now, the function is mainly a
//schema hook for future relevance models
func Segments(transcript string) []domain.TranscriptSegment {
	if transcript == "" {
		return nil
	}
	var res []domain.TranscriptSegment
	for _, s := range splitSentences(transcript) {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		res = append(res, domain.TranscriptSegment{
			Text:      s,
			Relevance: domain.RelevanceClinicalCore,
		})
	}
	return res
}

//FillEmotion labels segments without an emotion as NEUTRAL
func FillEmotion(segments []domain.TranscriptSegment) []domain.TranscriptSegment {
	for i := range segments {
		if segments[i].Emotion == "" {
			segments[i].Emotion = domain.EmotionNeutral
		}
	}
	return segments
}

//splitSentences breaks text after terminal punctuation followed by space
func splitSentences(text string) []string {
	var res []string
	var sb strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		sb.WriteRune(runes[i])
		if isTerminal(runes[i]) && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			res = append(res, sb.String())
			sb.Reset()
			for i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
				i++
			}
		}
	}
	if sb.Len() > 0 {
		res = append(res, sb.String())
	}
	return res
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
