package sentiment

import (
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
)

var (
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

// VADERScorer scores text with govader after stripping markup, so that video
// descriptions and comments full of links score like prose.
type VADERScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVADERScorer() *VADERScorer {
	return &VADERScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VADERScorer) Compound(text string) float64 {
	plain := PlainText(text)
	if plain == "" {
		return 0
	}
	return v.analyzer.PolarityScores(plain).Compound
}

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // keep only the link text
	input = urlPattern.ReplaceAllString(input, "")
	return strings.Join(strings.Fields(input), " ")
}

// PlainText renders markdown-ish input down to its text content with links removed.
func PlainText(input string) string {
	root := blackfriday.New(blackfriday.WithNoExtensions()).Parse([]byte(input))

	var b strings.Builder
	root.Walk(func(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		if !entering {
			return blackfriday.GoToNext
		}
		switch node.Type {
		case blackfriday.Text, blackfriday.Code, blackfriday.CodeBlock:
			b.Write(node.Literal)
			b.WriteByte(' ')
		}
		return blackfriday.GoToNext
	})

	return RemoveLinks(b.String())
}
