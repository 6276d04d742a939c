package api

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	apierrors "github.com/dmateus/gemweb/internal/errors"
	"github.com/dmateus/gemweb/internal/models"
)

// Speech synthesizes the given text through the speech RPC and returns the
// raw audio bytes (WAV). lang is a BCP-47 tag like "en-US"; empty means the
// account default.
func (c *Client) Speech(text, lang string) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	var langField interface{}
	if lang != "" {
		langField = lang
	}
	inner, err := json.Marshal([]interface{}{nil, text, langField, nil, 2})
	if err != nil {
		return nil, fmt.Errorf("failed to build speech payload: %w", err)
	}

	responses, err := c.BatchExecute([]RPCData{{
		RPCID:      models.RPCSpeech,
		Payload:    string(inner),
		Identifier: "generic",
	}})
	if err != nil {
		return nil, err
	}
	if len(responses) == 0 || responses[0].Data == "" {
		return nil, apierrors.NewEmptyBody("speech response carries no data")
	}

	// Data is a JSON string whose first element holds base64 audio
	data := gjson.Parse(responses[0].Data)
	encoded := data.Get("0").String()
	if encoded == "" {
		return nil, apierrors.NewMalformedResponseAt("no audio in speech response", "0")
	}

	audio, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, apierrors.NewMalformedResponse("speech audio is not valid base64")
	}
	return audio, nil
}
