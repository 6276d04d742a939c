package api

import (
	"encoding/json"
	"testing"
)

// Fixture builders for generate responses. The wire format is newline
// framing with the payload envelope on the fourth line; inside it the body
// is a JSON-encoded string at [0][2] (or [4][2] for the alternate routing).

// frameBody wraps an already-marshaled body document in the full framing
// with the body at the primary position.
func frameBody(t *testing.T, bodyJSON string) []byte {
	t.Helper()
	envelope := []interface{}{
		[]interface{}{"wrb.fr", nil, bodyJSON},
	}
	return frameEnvelope(t, envelope)
}

// frameBodySecondary places the body at the secondary position, leaving the
// primary slot without candidate data.
func frameBodySecondary(t *testing.T, bodyJSON string) []byte {
	t.Helper()
	envelope := []interface{}{
		[]interface{}{"wrb.fr", nil, "[]"},
		nil, nil, nil,
		[]interface{}{"wrb.fr", nil, bodyJSON},
	}
	return frameEnvelope(t, envelope)
}

func frameEnvelope(t *testing.T, envelope interface{}) []byte {
	t.Helper()
	line, err := json.Marshal(envelope)
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return []byte(")]}'\n\n12345\n" + string(line) + "\n25\n")
}

// makeBody marshals a decoded-body document from metadata and candidate
// entries.
func makeBody(t *testing.T, metadata []interface{}, candidates ...[]interface{}) string {
	t.Helper()
	list := make([]interface{}, 0, len(candidates))
	for _, c := range candidates {
		list = append(list, c)
	}
	doc := []interface{}{nil, metadata, nil, nil, list}
	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return string(b)
}

// candidateEntry builds a minimal candidate with an rcid and a text.
func candidateEntry(rcid, text string) []interface{} {
	return []interface{}{rcid, []interface{}{text}}
}

// padTo extends a candidate entry with nils so a value can sit at index n.
func padTo(entry []interface{}, n int) []interface{} {
	for len(entry) < n {
		entry = append(entry, nil)
	}
	return entry
}

// webImageEntry builds one web image in the candidate's image list.
func webImageEntry(url, title, alt string) []interface{} {
	return []interface{}{
		[]interface{}{[]interface{}{url}, nil, nil, nil, alt},
		nil,
		title,
	}
}

// generatedImageEntry builds one generated image entry.
func generatedImageEntry(url, num string, alts ...interface{}) []interface{} {
	return []interface{}{
		[]interface{}{nil, nil, nil, []interface{}{nil, nil, nil, url}},
		nil, nil,
		[]interface{}{nil, nil, nil, nil, nil, alts, num},
	}
}

// withWebImages attaches web images at the candidate's image position.
func withWebImages(entry []interface{}, images ...[]interface{}) []interface{} {
	entry = padTo(entry, 5)
	list := make([]interface{}, 0, len(images))
	for _, img := range images {
		list = append(list, img)
	}
	entry[4] = list
	return entry
}

// withGeneratedImages attaches generated images at the candidate's
// generation block.
func withGeneratedImages(entry []interface{}, images ...[]interface{}) []interface{} {
	entry = padTo(entry, 13)
	list := make([]interface{}, 0, len(images))
	for _, img := range images {
		list = append(list, img)
	}
	block := make([]interface{}, 8)
	block[7] = []interface{}{list}
	entry[12] = block
	return entry
}
