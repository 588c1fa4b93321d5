package ingest

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"scouthook/internal/schemas"
)

// Input is everything the transport hands the router for one submission:
// parsed form values (when the body was form-encoded), the materialized raw
// body, or a lazy body reader. Decode strategies are tried against it in
// fixed priority order.
type Input struct {
	Form   url.Values
	Body   []byte
	Reader io.Reader
}

type strategy struct {
	name    string
	applies func(Input) bool
	decode  func(Input) (schemas.Record, error)
}

// The clients submit the same JSON payload three different ways depending on
// transport quirks: as a form field named "payload", as the raw body (either
// bare JSON or "payload="-prefixed and URL-encoded), or behind a body handle
// that still needs reading. First applicable strategy wins; once chosen, its
// parse failure fails the whole request rather than falling through.
var strategies = []strategy{
	{
		name:    "form payload",
		applies: func(in Input) bool { return in.Form.Get("payload") != "" },
		decode: func(in Input) (schemas.Record, error) {
			return schemas.ParseRecord([]byte(in.Form.Get("payload")))
		},
	},
	{
		name:    "raw body",
		applies: func(in Input) bool { return len(in.Body) > 0 },
		decode: func(in Input) (schemas.Record, error) {
			return decodeRaw(string(in.Body))
		},
	},
	{
		name:    "body stream",
		applies: func(in Input) bool { return in.Reader != nil },
		decode: func(in Input) (schemas.Record, error) {
			raw, err := io.ReadAll(in.Reader)
			if err != nil {
				return nil, err
			}
			return decodeRaw(string(raw))
		},
	},
}

// Decode turns one inbound request into a canonical record, or fails with a
// *DecodeError.
func Decode(in Input) (schemas.Record, error) {
	for _, s := range strategies {
		if !s.applies(in) {
			continue
		}
		rec, err := s.decode(in)
		if err != nil {
			return nil, &DecodeError{fmt.Errorf("could not parse %s: %w", s.name, err)}
		}
		return rec, nil
	}
	return nil, &DecodeError{errors.New("No data received")}
}

func decodeRaw(raw string) (schemas.Record, error) {
	if strings.HasPrefix(raw, "payload=") {
		decoded, err := url.QueryUnescape(strings.TrimPrefix(raw, "payload="))
		if err != nil {
			return nil, err
		}
		raw = decoded
	}
	return schemas.ParseRecord([]byte(raw))
}
