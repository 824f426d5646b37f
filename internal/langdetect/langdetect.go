// Package langdetect decides whether a chat message should be spoken.
// Only Japanese text is read aloud; everything else is ignored.
package langdetect

import "github.com/pemistahl/lingua-go"

// Detector classifies message text by language. Safe for concurrent use.
type Detector struct {
	detector lingua.LanguageDetector
}

// New builds a detector restricted to Japanese and English. Restricting the
// candidate set keeps short messages from being misclassified as one of the
// many languages the bot will never see.
func New() *Detector {
	d := lingua.NewLanguageDetectorBuilder().
		FromLanguages(lingua.Japanese, lingua.English).
		Build()
	return &Detector{detector: d}
}

// IsJapanese reports whether text is most likely Japanese. Text with no
// detectable language (emoji, URLs, digits) is not Japanese.
func (d *Detector) IsJapanese(text string) bool {
	lang, ok := d.detector.DetectLanguageOf(text)
	return ok && lang == lingua.Japanese
}
