package api

import (
	"strings"

	"github.com/tidwall/gjson"

	apierrors "github.com/dmateus/gemweb/internal/errors"
	"github.com/dmateus/gemweb/internal/models"
)

// decodeResponseBody peels the two framing layers off a generate response:
// the newline framing around the payload envelope, then the JSON-encoded
// string holding the real body. The body carrying candidate data may live at
// the primary or the secondary position depending on upstream routing, so
// both are probed in order.
func decodeResponseBody(raw []byte, modelName string) (gjson.Result, error) {
	envelope, err := payloadEnvelope(raw)
	if err != nil {
		return gjson.Result{}, err
	}

	if code := envelope.Get(pathEnvelopeError); code.Exists() && code.Int() != 0 {
		return gjson.Result{}, apierrors.FromErrorCode(apierrors.ErrorCode(code.Int()), models.EndpointGenerate, modelName)
	}

	primary, perr := decodeInner(envelope.Get(pathPrimaryBody), pathPrimaryBody)
	sawEmptyList := false
	if perr == nil {
		hasList, populated := candidateListState(primary)
		if populated {
			return primary, nil
		}
		if hasList {
			sawEmptyList = true
		}
	}

	secondaryElem := envelope.Get(pathSecondaryBody)
	if secondaryElem.Exists() && secondaryElem.Type != gjson.Null {
		secondary, serr := decodeInner(secondaryElem, pathSecondaryBody)
		if serr != nil {
			return gjson.Result{}, serr
		}
		hasList, populated := candidateListState(secondary)
		if populated {
			return secondary, nil
		}
		if hasList {
			sawEmptyList = true
		}
	}

	if sawEmptyList {
		return gjson.Result{}, apierrors.NewNoCandidates("candidate list is empty at every position", pathCandidateList)
	}
	if perr != nil {
		return gjson.Result{}, perr
	}
	return gjson.Result{}, apierrors.NewEmptyBody("no candidate data at primary or secondary position")
}

// payloadEnvelope isolates the payload line from the newline framing and
// parses it as JSON.
func payloadEnvelope(raw []byte) (gjson.Result, error) {
	lines := strings.Split(string(raw), "\n")
	if len(lines) <= responsePayloadLine {
		return gjson.Result{}, apierrors.NewMalformedResponse("response has no payload line")
	}
	line := strings.TrimSpace(lines[responsePayloadLine])
	if line == "" || !gjson.Valid(line) {
		return gjson.Result{}, apierrors.NewMalformedResponse("payload line is not valid JSON")
	}
	return gjson.Parse(line), nil
}

// decodeInner parses the double-encoded body element: a JSON string whose
// contents are themselves JSON.
func decodeInner(elem gjson.Result, path string) (gjson.Result, error) {
	if !elem.Exists() || elem.Type == gjson.Null {
		return gjson.Result{}, apierrors.NewMalformedResponseAt("body element missing", path)
	}
	if elem.Type != gjson.String {
		return gjson.Result{}, apierrors.NewMalformedResponseAt("body element is not a string", path)
	}
	inner := elem.String()
	if !gjson.Valid(inner) {
		return gjson.Result{}, apierrors.NewMalformedResponse("inner body is not valid JSON")
	}
	return gjson.Parse(inner), nil
}

// candidateListState classifies a decoded body's candidate block. An
// existing-but-empty list is falsy for routing, so decoding falls through
// to the secondary position before giving up. A list of some non-array
// type counts as populated; the extractor reports the broken shape.
func candidateListState(body gjson.Result) (hasList, populated bool) {
	list := body.Get(pathCandidateList)
	if !list.Exists() || list.Type == gjson.Null {
		return false, false
	}
	if !list.IsArray() {
		return true, true
	}
	return true, len(list.Array()) > 0
}
