package xmlutils

import (
	"fmt"
	"io"

	"gopkg.in/xmlpath.v2"
)

// ParseXML parses r and returns the XML root node.
func ParseXML(r io.Reader) (*xmlpath.Node, error) {
	root, err := xmlpath.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	return root, nil
}

func compile(xpath string) (*xmlpath.Path, error) {
	path, err := xmlpath.Compile(xpath)
	if err != nil {
		return nil, fmt.Errorf("failed to compile XPath %q: %w", xpath, err)
	}
	return path, nil
}

// ExtractFromXML returns the string value of every node matching xpath, in
// document order.
func ExtractFromXML(root *xmlpath.Node, xpath string) ([]string, error) {
	path, err := compile(xpath)
	if err != nil {
		return nil, err
	}

	var values []string
	for iter := path.Iter(root); iter.Next(); {
		values = append(values, iter.Node().String())
	}
	return values, nil
}

// CountNodes returns how many nodes match xpath.
func CountNodes(root *xmlpath.Node, xpath string) (int, error) {
	path, err := compile(xpath)
	if err != nil {
		return 0, err
	}

	n := 0
	for iter := path.Iter(root); iter.Next(); {
		n++
	}
	return n, nil
}

// FirstValue returns the first value matching xpath, or "" when nothing matches.
func FirstValue(root *xmlpath.Node, xpath string) (string, error) {
	path, err := compile(xpath)
	if err != nil {
		return "", err
	}
	v, _ := path.String(root)
	return v, nil
}

// GetOrEmpty returns values[i], or "" when i is out of range.
func GetOrEmpty(values []string, i int) string {
	if i >= 0 && i < len(values) {
		return values[i]
	}
	return ""
}
