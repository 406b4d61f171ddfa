package stylesheet

import "strings"

// parse turns stylesheet source into class -> property map. Pseudo-state
// selectors like ".btn:hover" store their declarations under the plain
// class with the state appended to each property key, so "color" becomes
// "color:hover" and the cascade's state probe finds it.
func parse(source string) map[string]map[string]string {
	out := make(map[string]map[string]string)

	for _, rule := range strings.Split(stripComments(source), "}") {
		open := strings.Index(rule, "{")
		if open < 0 {
			continue
		}
		selectors := rule[:open]
		props := parseBody(rule[open+1:])
		if len(props) == 0 {
			continue
		}

		for _, sel := range strings.Split(selectors, ",") {
			class, state, ok := parseSelector(sel)
			if !ok {
				continue
			}
			dst, exists := out[class]
			if !exists {
				dst = make(map[string]string, len(props))
				out[class] = dst
			}
			for k, v := range props {
				if state != "" {
					k = k + ":" + state
				}
				dst[k] = v
			}
		}
	}
	return out
}

// parseSelector handles ".class", "class" and ".class:state". Unknown
// pseudo-states invalidate the selector.
func parseSelector(sel string) (class, state string, ok bool) {
	sel = strings.TrimSpace(sel)
	sel = strings.TrimPrefix(sel, ".")
	if sel == "" {
		return "", "", false
	}
	if i := strings.Index(sel, ":"); i >= 0 {
		class = strings.TrimSpace(sel[:i])
		state = strings.TrimSpace(sel[i+1:])
		if class == "" || !pseudoStates[state] {
			return "", "", false
		}
		return class, state, true
	}
	return sel, "", true
}

// parseBody splits "color: #fff; padding: 4" into a property map. The last
// value for a repeated property wins.
func parseBody(body string) map[string]string {
	props := make(map[string]string)
	for _, decl := range strings.Split(body, ";") {
		i := strings.Index(decl, ":")
		if i < 0 {
			continue
		}
		k := strings.TrimSpace(decl[:i])
		v := strings.TrimSpace(decl[i+1:])
		if k == "" || v == "" {
			continue
		}
		props[k] = v
	}
	return props
}

func stripComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for {
		start := strings.Index(s, "/*")
		if start < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:start])
		end := strings.Index(s[start+2:], "*/")
		if end < 0 {
			// Unterminated comment swallows the rest.
			return b.String()
		}
		s = s[start+2+end+2:]
	}
}
