// Package xmlcodec reads and writes records using the fixed
// <records><record>...</record></records> layout. Lists are encoded as a
// run of <item> children under the field element.
package xmlcodec

import (
	"encoding/xml"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/mcncl/dataconv/internal/errors"
	"golang.org/x/net/html/charset"
)

// node is a format-neutral view of one element: its local name, its
// character data, and its child elements. Attributes, comments and
// processing instructions are dropped.
type node struct {
	name     string
	text     strings.Builder
	children []*node
}

func (n *node) isLeaf() bool {
	return len(n.children) == 0
}

// readTree decodes the whole document into a node tree and returns its root.
func readTree(r io.Reader) (*node, error) {
	src := &sourceReader{r: r}
	decoder := xml.NewDecoder(src)
	decoder.Strict = true
	decoder.CharsetReader = charset.NewReaderLabel

	var (
		root  *node
		stack []*node
	)
	for {
		token, err := decoder.Token()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, decodeError(err, src.err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			n := &node{name: t.Name.Local}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.NewFormatError(
						fmt.Sprintf("multiple root elements: <%s> follows <%s>", n.name, root.name),
						errors.ErrInvalidXML,
					)
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			} else if strings.TrimSpace(string(t)) != "" {
				return nil, errors.NewFormatError("text outside the root element", errors.ErrInvalidXML)
			}
		}
	}

	if root == nil {
		return nil, errors.NewFormatError("document has no root element", errors.ErrEmptyInput)
	}
	if len(stack) > 0 {
		return nil, errors.NewFormatError(
			fmt.Sprintf("element <%s> is not closed", stack[len(stack)-1].name),
			errors.ErrInvalidXML,
		)
	}
	return root, nil
}

// sourceReader remembers the first failure of the underlying reader so that
// decoder errors can be told apart from I/O errors.
type sourceReader struct {
	r   io.Reader
	err error
}

func (s *sourceReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil && err != io.EOF && s.err == nil {
		s.err = err
	}
	return n, err
}

func decodeError(err, readErr error) error {
	var syntaxErr *xml.SyntaxError
	if stderrors.As(err, &syntaxErr) {
		return errors.NewFormatError(
			fmt.Sprintf("XML syntax error on line %d: %s", syntaxErr.Line, syntaxErr.Msg),
			errors.ErrInvalidXML,
		)
	}
	if readErr != nil {
		return errors.NewIOError("failed to read XML input", readErr)
	}
	return errors.NewFormatError(fmt.Sprintf("invalid XML: %v", err), errors.ErrInvalidXML)
}
