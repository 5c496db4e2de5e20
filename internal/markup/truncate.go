package markup

import (
	"bytes"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// Ellipsis 是截断后追加的标记。
const Ellipsis = "…"

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// TruncateWordsHTML 保留 HTML 中的前 n 个词，并补齐截断处仍未闭合的标签。
// 词是不含空白与尖括号的连续字符；词数不超过 n 时原样返回。
func TruncateWordsHTML(s string, n int) string {
	if n <= 0 {
		return ""
	}

	var (
		out      bytes.Buffer
		stack    []string
		words    int
		cut      = -1
		cutStack []string
	)

	z := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return s
		}
		base := out.Len()
		out.Write(z.Raw())

		switch tt {
		case html.TextToken:
			text := out.String()[base:]
			inWord := false
			for i, r := range text {
				if unicode.IsSpace(r) {
					inWord = false
					continue
				}
				if inWord {
					continue
				}
				inWord = true
				words++
				if words == n+1 {
					return closeTags(out.String()[:cut], cutStack)
				}
				if words == n {
					cut = base + wordEnd(text, i)
					cutStack = append([]string(nil), stack...)
				}
			}
		case html.StartTagToken:
			name, _ := z.TagName()
			if tag := string(name); !voidElements[tag] {
				stack = append(stack, tag)
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			stack = popTag(stack, string(name))
		}
	}
}

func wordEnd(text string, start int) int {
	for i, r := range text[start:] {
		if unicode.IsSpace(r) {
			return start + i
		}
	}
	return len(text)
}

func popTag(stack []string, name string) []string {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == name {
			return stack[:i]
		}
	}
	return stack
}

func closeTags(prefix string, open []string) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(Ellipsis)
	for i := len(open) - 1; i >= 0; i-- {
		b.WriteString("</")
		b.WriteString(open[i])
		b.WriteString(">")
	}
	return b.String()
}
