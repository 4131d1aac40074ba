package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Split separates YAML frontmatter (`---` delimited) from the Markdown body.
//
// If the document does not start with a YAML frontmatter delimiter, had is
// false and body is the full input. Both LF and CRLF documents are accepted;
// the detected newline is returned so rewriters can preserve it.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, newline string, err error) {
	newline = detectNewline(content)

	open := []byte("---" + newline)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, newline, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		// Empty frontmatter block.
		return []byte{}, content[start+len(open):], true, newline, nil
	}

	closeSeq := []byte(newline + "---" + newline)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		return nil, nil, false, newline, ErrMissingClosingDelimiter
	}

	end := start + idx + len(newline)
	bodyStart := start + idx + len(closeSeq)
	return content[start:end], content[bodyStart:], true, newline, nil
}

// Join reassembles a document from raw frontmatter and body.
//
// If had is false, Join returns body as-is.
func Join(frontmatter []byte, body []byte, had bool, newline string) []byte {
	if !had {
		return body
	}
	if newline == "" {
		newline = "\n"
	}

	delim := []byte("---" + newline)
	out := make([]byte, 0, 2*len(delim)+len(frontmatter)+len(body))
	out = append(out, delim...)
	out = append(out, frontmatter...)
	out = append(out, delim...)
	out = append(out, body...)
	return out
}

// ParseYAML parses raw YAML frontmatter (without --- delimiters) into a map.
func ParseYAML(frontmatter []byte) (map[string]any, error) {
	if len(frontmatter) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(frontmatter, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// Decode parses raw YAML frontmatter into a typed struct.
func Decode(frontmatter []byte, out any) error {
	if len(frontmatter) == 0 {
		return nil
	}
	return yaml.Unmarshal(frontmatter, out)
}

func detectNewline(content []byte) string {
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '\r' && content[i+1] == '\n' {
			return "\r\n"
		}
		if content[i] == '\n' {
			return "\n"
		}
	}
	return "\n"
}
