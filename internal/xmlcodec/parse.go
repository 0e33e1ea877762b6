package xmlcodec

import (
	"bytes"
	"io"
	"strings"

	"github.com/mcncl/dataconv/internal/errors"
	"github.com/mcncl/dataconv/internal/models"
)

// Element names of the wire layout.
const (
	RootElement   = "records"
	RecordElement = "record"
	ItemElement   = "item"
)

// Parse reads an XML document and converts it into records.
//
// A <records> root yields one record per <record> child. Any other root
// that has <record> children is read the same way. Otherwise the root
// element itself is the single record and each of its children is a field.
func Parse(reader io.Reader) ([]*models.Record, error) {
	root, err := readTree(reader)
	if err != nil {
		return nil, err
	}
	return recordsFromTree(root), nil
}

// ParseString parses XML from a string
func ParseString(xmlString string) ([]*models.Record, error) {
	if strings.TrimSpace(xmlString) == "" {
		return nil, errors.NewFormatError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}
	return Parse(strings.NewReader(xmlString))
}

// ParseBytes parses a complete XML document held in memory.
func ParseBytes(data []byte) ([]*models.Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.NewFormatError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}
	return Parse(bytes.NewReader(data))
}

func recordsFromTree(root *node) []*models.Record {
	if root.name == RootElement && root.isLeaf() {
		return []*models.Record{}
	}

	var recordNodes []*node
	for _, child := range root.children {
		if child.name == RecordElement {
			recordNodes = append(recordNodes, child)
		}
	}
	if len(recordNodes) == 0 {
		return []*models.Record{recordFromNode(root)}
	}

	records := make([]*models.Record, 0, len(recordNodes))
	for _, n := range recordNodes {
		records = append(records, recordFromNode(n))
	}
	return records
}

func recordFromNode(n *node) *models.Record {
	record := models.NewRecord()
	groupChildren(n, record.Set)
	return record
}

// nodeValue converts an element into a value in a single pass: leaves go
// through text inference, an element whose children are all <item> becomes
// a List, and any other element becomes a Map.
func nodeValue(n *node) models.Value {
	if n.isLeaf() {
		return inferText(n.text.String())
	}
	if isItemList(n) {
		list := make(models.List, 0, len(n.children))
		for _, child := range n.children {
			list = append(list, nodeValue(child))
		}
		return list
	}
	m := models.NewMap()
	groupChildren(n, m.Set)
	return m
}

func isItemList(n *node) bool {
	for _, child := range n.children {
		if child.name != ItemElement {
			return false
		}
	}
	return len(n.children) > 0
}

// groupChildren emits one entry per distinct child name, in first-seen
// order. Repeated siblings with the same name are collected into a List.
func groupChildren(n *node, set func(string, models.Value)) {
	order := make([]string, 0, len(n.children))
	groups := make(map[string][]*node, len(n.children))
	for _, child := range n.children {
		if _, seen := groups[child.name]; !seen {
			order = append(order, child.name)
		}
		groups[child.name] = append(groups[child.name], child)
	}

	for _, name := range order {
		nodes := groups[name]
		if len(nodes) == 1 {
			set(name, nodeValue(nodes[0]))
			continue
		}
		list := make(models.List, 0, len(nodes))
		for _, child := range nodes {
			list = append(list, nodeValue(child))
		}
		set(name, list)
	}
}
