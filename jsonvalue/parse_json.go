package jsonvalue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/calculisto/json-validator/schemaerrors"
)

// jsonDecoder decodes one JSON document from a token stream.
type jsonDecoder struct {
	data []byte
	dec  *json.Decoder
}

func parseJSON(data []byte) (Value, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	d := &jsonDecoder{data: data, dec: dec}

	tok, err := d.token()
	if err != nil {
		return Value{}, err
	}
	v, err := d.value(tok, 0)
	if err != nil {
		return Value{}, err
	}

	offset := dec.InputOffset()
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, d.errorAt(offset, "unexpected content after the document")
	}
	return v, nil
}

// token reads the next token, turning decoder errors into ParseErrors.
func (d *jsonDecoder) token() (json.Token, error) {
	tok, err := d.dec.Token()
	if err == nil {
		return tok, nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, d.errorAt(int64(len(d.data)), "unexpected end of document")
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		pe := d.errorAt(syntaxErr.Offset, "invalid JSON")
		pe.Cause = err
		return nil, pe
	}
	return nil, &schemaerrors.ParseError{Message: "invalid JSON", Cause: err}
}

func (d *jsonDecoder) value(tok json.Token, depth int) (Value, error) {
	if depth > maxNestingDepth {
		return Value{}, d.errorAt(d.dec.InputOffset(), fmt.Sprintf("document nesting exceeds %d levels", maxNestingDepth))
	}

	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return d.number(t)
	case json.Delim:
		switch t {
		case '{':
			return d.object(depth)
		case '[':
			return d.array(depth)
		}
	}
	return Value{}, d.errorAt(d.dec.InputOffset(), fmt.Sprintf("unexpected token %v", tok))
}

func (d *jsonDecoder) object(depth int) (Value, error) {
	var members []Member
	seen := make(map[string]struct{})
	for d.dec.More() {
		tok, err := d.token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, d.errorAt(d.dec.InputOffset(), "object keys must be strings")
		}
		if _, dup := seen[key]; dup {
			return Value{}, d.errorAt(d.dec.InputOffset(), fmt.Sprintf("duplicate key %q", key))
		}
		seen[key] = struct{}{}

		tok, err = d.token()
		if err != nil {
			return Value{}, err
		}
		val, err := d.value(tok, depth+1)
		if err != nil {
			return Value{}, err
		}
		members = append(members, Member{Key: key, Value: val})
	}
	// Closing '}'.
	if _, err := d.token(); err != nil {
		return Value{}, err
	}
	return Object(members...), nil
}

func (d *jsonDecoder) array(depth int) (Value, error) {
	var items []Value
	for d.dec.More() {
		tok, err := d.token()
		if err != nil {
			return Value{}, err
		}
		val, err := d.value(tok, depth+1)
		if err != nil {
			return Value{}, err
		}
		items = append(items, val)
	}
	// Closing ']'.
	if _, err := d.token(); err != nil {
		return Value{}, err
	}
	return Array(items...), nil
}

// number keeps integer literals exact and degrades integers beyond 64 bits
// to the nearest float, as the YAML path does.
func (d *jsonDecoder) number(n json.Number) (Value, error) {
	text := n.String()
	if !strings.ContainsAny(text, ".eE") {
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return Int(i), nil
		}
		if u, err := strconv.ParseUint(text, 10, 64); err == nil {
			return Uint(u), nil
		}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return Value{}, d.errorAt(d.dec.InputOffset(), fmt.Sprintf("invalid number %q", text))
	}
	return Float(f), nil
}

// errorAt builds a ParseError positioned at a byte offset of the input.
func (d *jsonDecoder) errorAt(offset int64, msg string) *schemaerrors.ParseError {
	if offset > int64(len(d.data)) {
		offset = int64(len(d.data))
	}
	prefix := d.data[:offset]
	line := bytes.Count(prefix, []byte("\n")) + 1
	col := int(offset) - bytes.LastIndexByte(prefix, '\n')
	return &schemaerrors.ParseError{Line: line, Column: col, Message: msg}
}
