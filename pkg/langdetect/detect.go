// Package langdetect resolves code-fence info strings and raw code content to
// canonical fence language names, using go-enry's alias table and classifier.
// The render layer uses it to put language-… classes on code blocks.
package langdetect

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

const langText = "text"

// classifierCandidates bounds the classifier to languages that commonly show
// up in reviewed documents.
//
//nolint:gochecknoglobals // static candidate list
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// FromInfo normalizes a fence info string ("go", "golang", "py linenums") to
// a canonical language name. Unknown names are lowercased and passed through;
// an empty info string maps to "text".
func FromInfo(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return langText
	}
	if lang, ok := enry.GetLanguageByAlias(fields[0]); ok {
		return normalize(lang)
	}
	// Fence tags are often file extensions ("py", "rs") rather than
	// linguist aliases.
	if lang, ok := enry.GetLanguageByExtension("x." + fields[0]); ok {
		return normalize(lang)
	}
	return strings.ToLower(fields[0])
}

// Detect guesses the language of bare code content. Shebangs win; otherwise
// the classifier picks among common candidates. Returns "text" when nothing
// is confident.
func Detect(content []byte) string {
	if len(content) == 0 {
		return langText
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return langText
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
