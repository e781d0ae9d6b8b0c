package cmake

import (
	"strings"

	"github.com/rios0rios0/fetchbump/internal/domain/entities"
)

const (
	declareCommand = "fetchcontent_declare"
	urlKeyword     = "URL"
	hashKeyword    = "URL_HASH"
	minGroups      = 2
	maxGroups      = 4
)

// archiveSuffixes are the URL endings accepted as a downloadable archive.
var archiveSuffixes = []string{".tar.gz", ".tgz", ".tar.bz2", ".tar.xz", ".zip"} //nolint:gochecknoglobals // read-only table

// invocation is one command call with its arguments already unquoted.
type invocation struct {
	name string
	args []string
	line int
}

// lexer walks CMake source and yields command invocations. It understands
// line comments, bracket comments, quoted and bracket arguments, escapes and
// nested parentheses, which is enough to never run past the closing paren of
// a call.
type lexer struct {
	src  string
	pos  int
	line int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1}
}

// next returns the next command invocation, or false at end of input.
func (l *lexer) next() (invocation, bool) {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '#':
			l.skipComment()
		case c == '"':
			l.readQuoted()
		case isIdentStart(c):
			start, line := l.pos, l.line
			for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
				l.pos++
			}
			if start > 0 && isIdentPart(l.src[start-1]) {
				continue
			}
			name := l.src[start:l.pos]
			l.skipBlanks()
			if l.pos >= len(l.src) || l.src[l.pos] != '(' {
				continue
			}
			l.pos++
			args, closed := l.readArguments()
			if !closed {
				return invocation{}, false
			}
			return invocation{name: name, args: args, line: line}, true
		default:
			l.advance()
		}
	}
	return invocation{}, false
}

// readArguments consumes everything up to the paren that closes the call.
func (l *lexer) readArguments() ([]string, bool) {
	var args []string
	depth := 1
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance()
		case c == '#':
			l.skipComment()
		case c == '"':
			args = append(args, l.readQuoted())
		case c == '[' && l.bracketLevel() >= 0:
			args = append(args, l.readBracket())
		case c == '(':
			depth++
			l.advance()
		case c == ')':
			depth--
			l.advance()
			if depth == 0 {
				return args, true
			}
		default:
			args = append(args, l.readUnquoted())
		}
	}
	return args, false
}

func (l *lexer) readUnquoted() string {
	var sb strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '(' || c == ')' || c == '"' || c == '#' {
			break
		}
		if c == '\\' && l.pos+1 < len(l.src) {
			sb.WriteByte(c)
			l.advance()
			c = l.src[l.pos]
		}
		sb.WriteByte(c)
		l.advance()
	}
	return sb.String()
}

// readQuoted expects the cursor on the opening quote.
func (l *lexer) readQuoted() string {
	l.advance()
	var sb strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '"' {
			l.advance()
			break
		}
		if c == '\\' && l.pos+1 < len(l.src) {
			sb.WriteByte(c)
			l.advance()
			c = l.src[l.pos]
		}
		sb.WriteByte(c)
		l.advance()
	}
	return sb.String()
}

// bracketLevel returns the number of '=' in an opening bracket "[==[" at the
// cursor, or -1 if the cursor is not on one.
func (l *lexer) bracketLevel() int {
	i := l.pos + 1
	for i < len(l.src) && l.src[i] == '=' {
		i++
	}
	if i < len(l.src) && l.src[i] == '[' {
		return i - l.pos - 1
	}
	return -1
}

// readBracket expects the cursor on an opening bracket.
func (l *lexer) readBracket() string {
	level := l.bracketLevel()
	closing := "]" + strings.Repeat("=", level) + "]"
	for range level + 2 {
		l.advance()
	}
	end := strings.Index(l.src[l.pos:], closing)
	if end < 0 {
		content := l.src[l.pos:]
		l.skipTo(len(l.src))
		return content
	}
	content := l.src[l.pos : l.pos+end]
	l.skipTo(l.pos + end + len(closing))
	return content
}

func (l *lexer) skipComment() {
	l.advance()
	if l.pos < len(l.src) && l.src[l.pos] == '[' && l.bracketLevel() >= 0 {
		l.readBracket()
		return
	}
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.pos++
	}
}

func (l *lexer) skipBlanks() {
	for l.pos < len(l.src) && (l.src[l.pos] == ' ' || l.src[l.pos] == '\t') {
		l.pos++
	}
}

func (l *lexer) skipTo(target int) {
	for l.pos < target {
		l.advance()
	}
}

func (l *lexer) advance() {
	if l.src[l.pos] == '\n' {
		l.line++
	}
	l.pos++
}

// ExtractDeclarations returns every FetchContent_Declare call in content that
// names a dependency and downloads an archive URL with a version in it.
// Calls without such a URL are not declarations and are left out.
func ExtractDeclarations(content, filePath string) []entities.Declaration {
	var decls []entities.Declaration
	lex := newLexer(content)
	for {
		call, ok := lex.next()
		if !ok {
			break
		}
		if !strings.EqualFold(call.name, declareCommand) {
			continue
		}
		decl, found := toDeclaration(call)
		if !found {
			continue
		}
		decl.FilePath = filePath
		decls = append(decls, decl)
	}
	return decls
}

func toDeclaration(call invocation) (entities.Declaration, bool) {
	if len(call.args) < 3 || call.args[0] == "" { //nolint:mnd // name, URL keyword, URL value
		return entities.Declaration{}, false
	}

	decl := entities.Declaration{Name: call.args[0], Line: call.line}
	for i := 1; i < len(call.args)-1; i++ {
		switch call.args[i] {
		case urlKeyword:
			if decl.URL == "" {
				decl.URL = call.args[i+1]
			}
		case hashKeyword:
			decl.Hash = call.args[i+1]
		}
	}

	if decl.URL == "" || !hasArchiveSuffix(decl.URL) {
		return entities.Declaration{}, false
	}

	version, found := FindVersion(decl.URL)
	if !found {
		return entities.Declaration{}, false
	}
	decl.Version = version
	return decl, true
}

// FindVersion returns the first version token in the release part of the
// path of rawURL: an optional "v" followed by two to four dot-separated
// numeric groups. Tokens glued to further version digits are passed over,
// as the replacement would refuse them.
func FindVersion(rawURL string) (string, bool) {
	_, path := entities.SplitURLPath(rawURL)
	for i := entities.ReleaseOffset(path); i < len(path); i++ {
		if !isDigit(path[i]) || (i > 0 && isDigit(path[i-1])) {
			continue
		}
		end, groups := i, 0
		for groups < maxGroups {
			j := end
			if groups > 0 {
				if j >= len(path) || path[j] != '.' || j+1 >= len(path) || !isDigit(path[j+1]) {
					break
				}
				j++
			}
			for j < len(path) && isDigit(path[j]) {
				j++
			}
			end = j
			groups++
		}
		if groups < minGroups || !entities.IsCleanVersionToken(path, i, end) {
			continue
		}
		start := i
		if i > 0 && path[i-1] == 'v' {
			start = i - 1
		}
		return path[start:end], true
	}
	return "", false
}

func hasArchiveSuffix(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, suffix := range archiveSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
