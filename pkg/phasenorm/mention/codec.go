package mention

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/cognicore/phasenorm/pkg/phasenorm/internalerr"
)

const maxLineBytes = 16 << 20

// Decode reads either a JSON array of records or JSON Lines. Blank lines are
// skipped. The first malformed record aborts decoding with an error naming
// its index.
func Decode(r io.Reader) ([]Mention, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read mentions: %w", err)
	}

	if first == '[' {
		return decodeArray(br)
	}
	return decodeLines(br)
}

func decodeArray(r io.Reader) ([]Mention, error) {
	var raws []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raws); err != nil {
		return nil, fmt.Errorf("decode mention array: %w: %v", internalerr.ErrInvalidInput, err)
	}
	out := make([]Mention, 0, len(raws))
	for i, raw := range raws {
		m, err := decodeAt(i, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func decodeLines(r io.Reader) ([]Mention, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var out []Mention
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		m, err := decodeAt(len(out), line)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read mention lines: %w", err)
	}
	return out, nil
}

func decodeAt(index int, raw []byte) (Mention, error) {
	var m Mention
	if err := json.Unmarshal(raw, &m); err != nil {
		var fe *FieldError
		if errors.As(err, &fe) {
			return Mention{}, &FieldError{Index: index, Field: fe.Field, Problem: fe.Problem}
		}
		return Mention{}, fmt.Errorf("mention %d: %w: %v", index, internalerr.ErrInvalidInput, err)
	}
	return m, nil
}

// Encode writes records as JSON Lines or as an indented JSON array.
func Encode(w io.Writer, ms []Mention, jsonl bool) error {
	if jsonl {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		for i, m := range ms {
			if err := enc.Encode(m); err != nil {
				return fmt.Errorf("encode mention %d: %w", i, err)
			}
		}
		return nil
	}

	if ms == nil {
		ms = []Mention{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ms); err != nil {
		return fmt.Errorf("encode mentions: %w", err)
	}
	return nil
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		if err := br.UnreadByte(); err != nil {
			return 0, err
		}
		return b, nil
	}
}
