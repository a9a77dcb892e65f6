package codegen

import "strings"

// HtmlToMarkdown is a naive HTML-to-Markdown converter: Smithy
// documentation traits are authored as a small, fixed subset of HTML, and
// doc comments in emitted source want Markdown. Unrecognized tags are
// stripped but their text content is kept.
//
// Understood tags: <p>, <ul>, <ol>, <li>, <a href="...">, <b>/<strong>,
// <i>/<em>, <code>.
func HtmlToMarkdown(html string) string {
	var out strings.Builder
	i := 0
	n := len(html)
	listDepth := 0
	var pendingHref string
	for i < n {
		if html[i] != '<' {
			out.WriteByte(html[i])
			i++
			continue
		}
		end := strings.IndexByte(html[i:], '>')
		if end < 0 {
			out.WriteString(html[i:])
			break
		}
		tag := html[i+1 : i+end]
		i += end + 1
		closing := strings.HasPrefix(tag, "/")
		name, attrs := splitTag(strings.TrimPrefix(tag, "/"))
		switch strings.ToLower(name) {
		case "p":
			// no markup; paragraphs are implicit line breaks in the source text
		case "ul", "ol":
			if !closing {
				listDepth++
			} else if listDepth > 0 {
				listDepth--
			}
		case "li":
			if !closing {
				out.WriteString("- ")
			} else {
				out.WriteString("\n")
			}
		case "b", "strong":
			out.WriteString("**")
		case "i", "em":
			out.WriteString("*")
		case "code":
			out.WriteString("`")
		case "a":
			if !closing {
				pendingHref = attrs["href"]
				out.WriteString("[")
			} else {
				out.WriteString("](" + pendingHref + ")")
			}
		default:
			// unknown tag: drop the markup, keep surrounding text as-is
		}
	}
	return out.String()
}

func splitTag(tag string) (name string, attrs map[string]string) {
	tag = strings.TrimSpace(tag)
	attrs = map[string]string{}
	sp := strings.IndexAny(tag, " \t")
	if sp < 0 {
		return tag, attrs
	}
	name = tag[:sp]
	rest := tag[sp+1:]
	for _, part := range strings.Fields(rest) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		key := kv[0]
		val := strings.Trim(kv[1], `"'`)
		attrs[key] = val
	}
	return name, attrs
}
