package text

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// ErrEmptyText is returned when a source yields no readable text.
var ErrEmptyText = errors.New("empty text content")

const maxBodyBytes = 8 << 20

//go:embed samples/*.txt
var samples embed.FS

var (
	rubyWithBar = regexp.MustCompile(`｜《[^》]+》`)
	ruby        = regexp.MustCompile(`《[^》]+》`)
	annotation  = regexp.MustCompile(`［＃[^］]+］`)
	spaces      = regexp.MustCompile(`\s+`)
)

// Loader resolves sources to content.
type Loader struct {
	// Dir is searched for local sources before the bundled samples.
	Dir       string
	Client    *http.Client
	ChunkSize int
}

// NewLoader returns a loader reading local texts from dir.
func NewLoader(dir string) *Loader {
	return &Loader{
		Dir:       dir,
		Client:    &http.Client{Timeout: 30 * time.Second},
		ChunkSize: DefaultChunkSize,
	}
}

// Load reads the source and splits it into words and chunks.
func (l *Loader) Load(ctx context.Context, src Source) (Content, error) {
	var (
		body  string
		title = src.Name
		err   error
	)
	switch src.Kind {
	case KindLocal:
		body, err = l.readLocal(src.Location)
	case KindPaper:
		if src.Location == "" {
			return Content{}, fmt.Errorf("paper %s has no full text", src.ID)
		}
		body, _, err = l.fetch(ctx, src.Location)
	case KindURL, KindAozora:
		var pageTitle string
		body, pageTitle, err = l.fetch(ctx, src.Location)
		if pageTitle != "" {
			title = pageTitle
		}
	case KindCustom:
		body = src.Location
	default:
		return Content{}, fmt.Errorf("unknown source kind %q", src.Kind)
	}
	if err != nil {
		return Content{}, err
	}
	body = StripAnnotations(body)
	if strings.TrimSpace(body) == "" {
		return Content{}, ErrEmptyText
	}
	return Content{
		ID:     src.ID,
		Title:  title,
		Text:   body,
		Words:  SplitWords(body),
		Chunks: SplitChunks(body, l.ChunkSize),
	}, nil
}

// StripAnnotations removes Aozora Bunko ruby and editorial markup.
func StripAnnotations(s string) string {
	s = rubyWithBar.ReplaceAllString(s, "")
	s = ruby.ReplaceAllString(s, "")
	s = annotation.ReplaceAllString(s, "")
	return strings.ReplaceAll(s, "｜", "")
}

func (l *Loader) readLocal(name string) (string, error) {
	candidates := []string{name}
	if !filepath.IsAbs(name) && l.Dir != "" {
		candidates = append(candidates, filepath.Join(l.Dir, name))
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err == nil {
			return decodeBytes(data)
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to read text %s: %w", path, err)
		}
	}
	data, err := samples.ReadFile("samples/" + filepath.Base(name))
	if err != nil {
		return "", fmt.Errorf("failed to load local file: %s", name)
	}
	return string(data), nil
}

// decodeBytes returns UTF-8 input unchanged and decodes anything else as
// Shift_JIS.
func decodeBytes(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	out, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("failed to decode Shift_JIS: %w", err)
	}
	return string(out), nil
}

func (l *Loader) fetch(ctx context.Context, url string) (string, string, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", "", fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("failed to fetch text from %s: %w", url, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			// Best-effort close; the body has been read.
			_ = cerr
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("failed to fetch text from %s: HTTP %d", url, resp.StatusCode)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", "", fmt.Errorf("failed to read response: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "html") {
		if strings.Contains(strings.ToLower(contentType), "charset") {
			r, err := charset.NewReader(bytes.NewReader(raw), contentType)
			if err != nil {
				return "", "", fmt.Errorf("failed to decode response: %w", err)
			}
			out, err := io.ReadAll(r)
			if err != nil {
				return "", "", fmt.Errorf("failed to decode response: %w", err)
			}
			return string(out), "", nil
		}
		body, err := decodeBytes(raw)
		return body, "", err
	}

	r, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return "", "", fmt.Errorf("failed to decode response: %w", err)
	}
	body, title, err := ExtractHTML(r)
	return body, title, err
}

// ExtractHTML returns the visible text of the page's main element, the
// Aozora .main_text block or the body, in that order of preference, along
// with the page title. Ruby readings are skipped.
func ExtractHTML(r io.Reader) (string, string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse html: %w", err)
	}
	root := findNode(doc, func(n *html.Node) bool {
		return n.DataAtom == atom.Main
	})
	if root == nil {
		root = findNode(doc, func(n *html.Node) bool {
			return hasClass(n, "main_text")
		})
	}
	if root == nil {
		root = findNode(doc, func(n *html.Node) bool {
			return n.DataAtom == atom.Body
		})
	}
	var title string
	if t := findNode(doc, func(n *html.Node) bool { return n.DataAtom == atom.Title }); t != nil {
		title = collapse(nodeText(t))
	}
	if root == nil {
		return "", title, nil
	}
	return collapse(nodeText(root)), title, nil
}

func findNode(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, match); found != nil {
			return found
		}
	}
	return nil
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Rt, atom.Rp:
				return
			case atom.Br, atom.P, atom.Div:
				b.WriteByte(' ')
			}
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func collapse(s string) string {
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}
