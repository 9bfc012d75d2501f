package equation

import (
	"strings"
	"unicode"
)

// symbols maps argument-less LaTeX commands to equation script keywords
var symbols = map[string]string{
	"times": "times", "div": "DIV", "pm": "+-", "mp": "-+", "cdot": "cdot",
	"le": "<=", "leq": "<=", "ge": ">=", "geq": ">=", "neq": "!=", "ne": "!=",
	"approx": "approx", "equiv": "equiv", "sim": "sim", "simeq": "simeq",
	"infty": "inf", "to": "->", "rightarrow": "->", "leftarrow": "<-",
	"Rightarrow": "=>", "Leftarrow": "<=", "leftrightarrow": "<->",
	"Leftrightarrow": "<=>", "cdots": "cdots", "ldots": "ldots", "dots": "cdots",
	"vdots": "vdots", "ddots": "ddots", "angle": "angle", "triangle": "triangle",
	"circ": "circ", "degree": "DEG", "perp": "bot", "parallel": "parallel",
	"in": "in", "notin": "notin", "subset": "subset", "supset": "supset",
	"subseteq": "subseteq", "supseteq": "supseteq", "cup": "cup", "cap": "cap",
	"emptyset": "emptyset", "forall": "forall", "exists": "exists",
	"therefore": "therefore", "because": "because", "prime": "prime",
	"sum": "sum", "prod": "prod", "int": "int", "iint": "dint", "oint": "oint",
	"lim": "lim", "log": "log", "ln": "ln", "sin": "sin", "cos": "cos",
	"tan": "tan", "sec": "sec", "csc": "csc", "cot": "cot", "max": "max",
	"min": "min", "partial": "partial", "nabla": "nabla", "cdotp": "cdot",
	"lbrace": "lbrace", "rbrace": "rbrace", "{": "lbrace", "}": "rbrace",
	"%": "%", "&": "&", "#": "#", "_": "_", "|": "||",
	",": "`", ";": "~", ":": "~", "!": "", " ": "~", "quad": "~~", "qquad": "~~~~",
	"left": "LEFT", "right": "RIGHT",
}

// wrappers maps one-argument LaTeX commands to prefix keywords
var wrappers = map[string]string{
	"overline": "overline", "bar": "bar", "vec": "vec", "hat": "hat",
	"dot": "dot", "ddot": "ddot", "tilde": "tilde", "underline": "under",
	"mathrm": "rm", "mathbf": "bold", "mathit": "it", "boldsymbol": "bold",
	"operatorname": "rm", "overrightarrow": "dyad", "widehat": "hat",
}

// environments maps matrix-like environments to their keywords
var environments = map[string]string{
	"cases": "cases", "matrix": "matrix", "pmatrix": "pmatrix",
	"bmatrix": "bmatrix", "vmatrix": "dmatrix", "array": "matrix",
	"aligned": "", "align": "", "align*": "", "gathered": "",
}

// Translate converts LaTeX math notation into equation script. Unknown
// commands are passed through without their backslash.
func Translate(latex string) string {
	s := strings.TrimSpace(latex)
	s = trimDelimiters(s)
	p := &parser{src: []rune(s)}
	return collapseSpaces(p.sequence(0))
}

func trimDelimiters(s string) string {
	for _, d := range [][2]string{{"$$", "$$"}, {`\[`, `\]`}, {`\(`, `\)`}, {"$", "$"}} {
		if len(s) >= len(d[0])+len(d[1]) && strings.HasPrefix(s, d[0]) && strings.HasSuffix(s, d[1]) {
			return strings.TrimSpace(s[len(d[0]) : len(s)-len(d[1])])
		}
	}
	return s
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

type parser struct {
	src []rune
	pos int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

// sequence translates until the closing rune (0 for end of input)
func (p *parser) sequence(closing rune) string {
	var b strings.Builder
	for !p.eof() {
		r := p.peek()
		if closing != 0 && r == closing {
			p.pos++
			break
		}
		switch {
		case r == '\\':
			p.pos++
			cmd := p.command()
			if cmd == "end" {
				p.group()
				return b.String()
			}
			b.WriteString(p.translateCommand(cmd))
		case r == '{':
			p.pos++
			b.WriteString("{" + p.sequence('}') + "}")
		case r == '^' || r == '_':
			p.pos++
			b.WriteString(string(r) + p.argument())
		case r == '\n' || r == '\t':
			p.pos++
			b.WriteRune(' ')
		default:
			p.pos++
			b.WriteRune(r)
		}
	}
	return b.String()
}

// command reads a command name after a backslash
func (p *parser) command() string {
	if p.eof() {
		return ""
	}
	start := p.pos
	if !unicode.IsLetter(p.peek()) {
		p.pos++
		return string(p.src[start:p.pos])
	}
	for !p.eof() && unicode.IsLetter(p.peek()) {
		p.pos++
	}
	if !p.eof() && p.peek() == '*' {
		p.pos++
	}
	return string(p.src[start:p.pos])
}

// argument reads one braced group or a single token and returns it braced
func (p *parser) argument() string {
	p.skipSpaces()
	if p.eof() {
		return "{}"
	}
	switch r := p.peek(); r {
	case '{':
		p.pos++
		return "{" + p.sequence('}') + "}"
	case '\\':
		p.pos++
		return "{" + p.translateCommand(p.command()) + "}"
	default:
		p.pos++
		return "{" + string(r) + "}"
	}
}

// group reads a raw braced group without translation
func (p *parser) group() string {
	p.skipSpaces()
	if p.peek() != '{' {
		return ""
	}
	p.pos++
	start := p.pos
	depth := 1
	for !p.eof() {
		switch p.src[p.pos] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				s := string(p.src[start:p.pos])
				p.pos++
				return s
			}
		}
		p.pos++
	}
	return string(p.src[start:])
}

// optional reads a [..] argument when present
func (p *parser) optional() (string, bool) {
	p.skipSpaces()
	if p.peek() != '[' {
		return "", false
	}
	p.pos++
	return p.sequence(']'), true
}

func (p *parser) skipSpaces() {
	for !p.eof() && p.peek() == ' ' {
		p.pos++
	}
}

func (p *parser) translateCommand(cmd string) string {
	switch cmd {
	case "frac", "dfrac", "tfrac", "cfrac":
		num := p.argument()
		den := p.argument()
		return " " + num + " over " + den + " "
	case "sqrt":
		if n, ok := p.optional(); ok {
			return " root {" + n + "} of " + p.argument() + " "
		}
		return " sqrt " + p.argument() + " "
	case "text", "textrm", "mbox":
		return `"` + p.group() + `"`
	case "begin":
		return p.environment(p.group())
	case "\\":
		return " # "
	case "binom":
		top := p.argument()
		bottom := p.argument()
		return " LEFT ( matrix{" + top + " # " + bottom + "} RIGHT ) "
	}
	if kw, ok := wrappers[cmd]; ok {
		return " " + kw + p.argument() + " "
	}
	if kw, ok := symbols[cmd]; ok {
		return " " + kw + " "
	}
	if greek, ok := greekName(cmd); ok {
		return " " + greek + " "
	}
	return " " + cmd + " "
}

func (p *parser) environment(name string) string {
	kw, ok := environments[name]
	if name == "array" {
		p.group()
	}
	body := p.sequence(0)
	if !ok || kw == "" {
		return " " + body + " "
	}
	return " " + kw + "{" + body + "} "
}

var greek = map[string]bool{
	"alpha": true, "beta": true, "gamma": true, "delta": true, "epsilon": true,
	"varepsilon": true, "zeta": true, "eta": true, "theta": true, "vartheta": true,
	"iota": true, "kappa": true, "lambda": true, "mu": true, "nu": true, "xi": true,
	"pi": true, "rho": true, "sigma": true, "tau": true, "upsilon": true,
	"phi": true, "varphi": true, "chi": true, "psi": true, "omega": true,
}

// greekName returns the equation keyword for a Greek letter command.
// Capitalized commands map to upper-case keywords.
func greekName(cmd string) (string, bool) {
	lower := strings.ToLower(cmd)
	if !greek[lower] {
		return "", false
	}
	if cmd != lower {
		return strings.ToUpper(lower), true
	}
	return lower, true
}
