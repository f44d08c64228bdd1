package text

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Origin is the archive a paper is published in.
type Origin string

const (
	OriginJStage Origin = "jstage"
	OriginArXiv  Origin = "arxiv"
)

// Paper is an openly licensed research paper that can be read in full.
type Paper struct {
	ID       string
	Title    string
	Authors  []string
	Year     int
	Origin   Origin
	URL      string
	Abstract string
	License  string
}

// Source returns the paper as a loadable source.
func (p Paper) Source() Source {
	return Source{
		ID:          p.ID,
		Name:        p.Title,
		Kind:        KindPaper,
		Location:    p.URL,
		Description: p.Abstract,
	}
}

// Byline joins the authors and year for listings.
func (p Paper) Byline() string {
	if len(p.Authors) == 0 {
		return fmt.Sprintf("%d", p.Year)
	}
	return fmt.Sprintf("%s (%d)", strings.Join(p.Authors, ", "), p.Year)
}

var papers = []Paper{
	{
		ID:       "paper-1",
		Title:    "日本社会におけるコロナ禍の興味関心度のデジタルデータ分析",
		Year:     2024,
		Origin:   OriginJStage,
		URL:      "https://www.jstage.jst.go.jp/article/bdajcs/13/1/13_31/_article/-char/ja/",
		Abstract: "デジタルデータを活用して日本社会におけるコロナ禍の関心度を分析",
		License:  "CC BY",
	},
	{
		ID:       "paper-2",
		Title:    "Attention Is All You Need",
		Authors:  []string{"Ashish Vaswani", "Noam Shazeer", "Niki Parmar", "Jakob Uszkoreit"},
		Year:     2017,
		Origin:   OriginArXiv,
		URL:      "https://ar5iv.labs.arxiv.org/html/1706.03762",
		Abstract: "The Transformer, a sequence model based solely on attention",
		License:  "arXiv",
	},
	{
		ID:       "paper-3",
		Title:    "BERT: Pre-training of Deep Bidirectional Transformers for Language Understanding",
		Authors:  []string{"Jacob Devlin", "Ming-Wei Chang", "Kenton Lee", "Kristina Toutanova"},
		Year:     2018,
		Origin:   OriginArXiv,
		URL:      "https://ar5iv.labs.arxiv.org/html/1810.04805",
		Abstract: "Bidirectional pre-training of language representations",
		License:  "arXiv",
	},
}

// Papers returns the bundled paper catalog.
func Papers() []Paper {
	return lo.Map(papers, func(p Paper, _ int) Paper {
		p.Authors = append([]string(nil), p.Authors...)
		return p
	})
}

// SearchPapers returns papers whose title or an author contains keyword,
// case-insensitively. An empty keyword matches everything and an empty
// origin matches every archive.
func SearchPapers(keyword string, origin Origin) []Paper {
	needle := strings.ToLower(strings.TrimSpace(keyword))
	return lo.Filter(Papers(), func(p Paper, _ int) bool {
		if origin != "" && p.Origin != origin {
			return false
		}
		if needle == "" || strings.Contains(strings.ToLower(p.Title), needle) {
			return true
		}
		return lo.ContainsBy(p.Authors, func(a string) bool {
			return strings.Contains(strings.ToLower(a), needle)
		})
	})
}

// FindPaper looks up a paper by id.
func FindPaper(id string) (Paper, bool) {
	return lo.Find(papers, func(p Paper) bool {
		return p.ID == id
	})
}

// ParseOrigin validates an archive name. Empty and "all" mean every archive.
func ParseOrigin(s string) (Origin, error) {
	switch o := Origin(strings.ToLower(strings.TrimSpace(s))); o {
	case "", "all":
		return "", nil
	case OriginJStage, OriginArXiv:
		return o, nil
	default:
		return "", fmt.Errorf("unknown origin %q (jstage, arxiv or all)", s)
	}
}
