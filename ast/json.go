package ast

import (
	"bytes"
	"encoding/json"
)

// MarshalJSON encodes the tree rooted at n as JSON. Every object carries
// "kind", "start" and "end" followed by the node's fields in source order;
// list fields become arrays, modifiers become true.
func MarshalJSON(n Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeNode(&buf, n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeNode(buf *bytes.Buffer, n Node) error {
	b := n.NodeBase()
	buf.WriteString(`{"kind":`)
	if err := encodeValue(buf, n.Kind()); err != nil {
		return err
	}
	buf.WriteString(`,"start":`)
	if err := encodeValue(buf, b.Start); err != nil {
		return err
	}
	buf.WriteString(`,"end":`)
	if err := encodeValue(buf, b.End); err != nil {
		return err
	}
	for _, f := range Fields(n) {
		name := f.Name
		if name == "" {
			name = "value"
		}
		buf.WriteByte(',')
		if err := encodeValue(buf, name); err != nil {
			return err
		}
		buf.WriteByte(':')
		switch {
		case f.Flag:
			buf.WriteString("true")
		case f.Nodes == nil:
			if err := encodeValue(buf, f.Text); err != nil {
				return err
			}
		case f.Repeated:
			buf.WriteByte('[')
			for i, c := range f.Nodes {
				if i != 0 {
					buf.WriteByte(',')
				}
				if err := encodeNode(buf, c); err != nil {
					return err
				}
			}
			buf.WriteByte(']')
		default:
			if err := encodeNode(buf, f.Nodes[0]); err != nil {
				return err
			}
		}
	}
	if _, isErr := n.(*ErrorNode); !isErr && len(b.Errors) != 0 {
		buf.WriteString(`,"errors":[`)
		for i, e := range b.Errors {
			if i != 0 {
				buf.WriteByte(',')
			}
			if err := encodeNode(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	}
	if len(b.Comments) != 0 {
		buf.WriteString(`,"comments":`)
		if err := encodeValue(buf, b.Comments); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func encodeValue(buf *bytes.Buffer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}
