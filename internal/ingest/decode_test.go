package ingest

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFormPayload(t *testing.T) {
	in := Input{Form: url.Values{"payload": {`{"teamCode":"knights","matchNumber":7}`}}}

	rec, err := Decode(in)
	require.NoError(t, err)
	assert.Equal(t, "knights", rec.Str("teamCode"))
	assert.Equal(t, float64(7), rec["matchNumber"])
}

func TestDecodeRawBody(t *testing.T) {
	t.Run("bare JSON", func(t *testing.T) {
		rec, err := Decode(Input{Body: []byte(`{"teamCode":"knights"}`)})
		require.NoError(t, err)
		assert.Equal(t, "knights", rec.Str("teamCode"))
	})

	t.Run("payload= prefixed and URL-encoded", func(t *testing.T) {
		body := "payload=" + url.QueryEscape(`{"teamCode":"knights","comments":"fast & loose"}`)
		rec, err := Decode(Input{Body: []byte(body)})
		require.NoError(t, err)
		assert.Equal(t, "knights", rec.Str("teamCode"))
		assert.Equal(t, "fast & loose", rec.Str("comments"))
	})
}

func TestDecodeStreamBody(t *testing.T) {
	rec, err := Decode(Input{Reader: strings.NewReader(`{"teamCode":"knights"}`)})
	require.NoError(t, err)
	assert.Equal(t, "knights", rec.Str("teamCode"))
}

func TestDecodePrecedence(t *testing.T) {
	// The form payload wins even when a raw body is also present.
	in := Input{
		Form: url.Values{"payload": {`{"source":"form"}`}},
		Body: []byte(`{"source":"body"}`),
	}
	rec, err := Decode(in)
	require.NoError(t, err)
	assert.Equal(t, "form", rec.Str("source"))
}

func TestDecodeNoFallbackAfterChosenStrategy(t *testing.T) {
	// The form payload is chosen and fails; the valid raw body must not be
	// consulted.
	in := Input{
		Form: url.Values{"payload": {`{broken`}},
		Body: []byte(`{"source":"body"}`),
	}
	_, err := Decode(in)
	require.Error(t, err)
	var de *DecodeError
	assert.ErrorAs(t, err, &de)
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name string
		in   Input
	}{
		{"no data", Input{}},
		{"malformed JSON body", Input{Body: []byte(`not json`)}},
		{"JSON scalar instead of object", Input{Body: []byte(`"just a string"`)}},
		{"null payload", Input{Body: []byte(`null`)}},
		{"bad URL escape", Input{Body: []byte(`payload=%zz`)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.in)
			require.Error(t, err)
			var de *DecodeError
			assert.ErrorAs(t, err, &de)
		})
	}
}

func TestDecodeNoDataMessage(t *testing.T) {
	_, err := Decode(Input{})
	require.EqualError(t, err, "No data received")
}
