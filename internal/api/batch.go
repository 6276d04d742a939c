package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/dmateus/gemweb/internal/errors"
	"github.com/dmateus/gemweb/internal/models"
)

// RPCData is one RPC call inside a batchexecute request.
type RPCData struct {
	RPCID      string // RPC method id, e.g. "XqA3Ic" for speech
	Payload    string // JSON payload as a string
	Identifier string // used to match the call to its response part
}

// Serialize renders the call in the wire shape [rpcid, payload, null, identifier].
func (r *RPCData) Serialize() []interface{} {
	return []interface{}{r.RPCID, r.Payload, nil, r.Identifier}
}

// BatchResponse is one response part of a batchexecute call.
type BatchResponse struct {
	Identifier string
	Data       string // JSON string with the response data
	Error      error
}

// BatchExecute runs one or more RPC calls in a single HTTP request against
// the batchexecute endpoint.
func (c *Client) BatchExecute(requests []RPCData) ([]BatchResponse, error) {
	if c.IsClosed() {
		return nil, fmt.Errorf("client is closed")
	}
	if len(requests) == 0 {
		return nil, fmt.Errorf("no requests provided")
	}

	// Wire shape is three brackets deep: [[[rpc1], [rpc2], ...]]
	var serialized []interface{}
	for _, req := range requests {
		serialized = append(serialized, req.Serialize())
	}
	payload, err := json.Marshal([]interface{}{serialized})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal batch payload: %w", err)
	}

	form := url.Values{}
	form.Set("at", c.GetAccessToken())
	form.Set("f.req", string(payload))

	req, err := http.NewRequest(
		http.MethodPost,
		models.EndpointBatchExec,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}
	applyAuthCookies(req, c.GetCookies())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierrors.NewNetworkErrorWithEndpoint("batch execute", models.EndpointBatchExec, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode != 200 {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, apierrors.NewAPIErrorWithBody(resp.StatusCode, models.EndpointBatchExec, "batch execute failed", string(errorBody))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.NewNetworkErrorWithEndpoint("read batch response", models.EndpointBatchExec, err)
	}

	return parseBatchResponse(body, requests)
}

// parseBatchResponse matches response parts back to their requests.
// The endpoint answers with an anti-XSSI prefix and then envelopes shaped
// [["wrb.fr","RPCID","data_json",null,null,null,"identifier"],...].
func parseBatchResponse(body []byte, requests []RPCData) ([]BatchResponse, error) {
	var jsonLine string
	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == ")]}" || line == ")]}'" {
			continue
		}
		if gjson.Valid(line) {
			jsonLine = line
			break
		}
	}
	if jsonLine == "" {
		return nil, apierrors.NewMalformedResponse("no valid JSON in batch response")
	}

	parsed := gjson.Parse(jsonLine)

	responses := make([]BatchResponse, len(requests))
	for i, req := range requests {
		responses[i] = BatchResponse{Identifier: req.Identifier}
	}

	parsed.ForEach(func(_, part gjson.Result) bool {
		if !part.IsArray() {
			return true
		}
		arr := part.Array()
		if len(arr) < 3 {
			return true
		}

		data := ""
		if arr[2].Type == gjson.String {
			data = arr[2].String()
		}

		// The identifier echoes back in one of the trailing positions
		var identifier string
		for i := len(arr) - 1; i >= 3 && identifier == ""; i-- {
			if arr[i].Type != gjson.String || arr[i].String() == "" {
				continue
			}
			for _, req := range requests {
				if arr[i].String() == req.Identifier {
					identifier = req.Identifier
					break
				}
			}
		}
		if identifier == "" {
			return true
		}

		for i := range responses {
			if responses[i].Identifier == identifier {
				responses[i].Data = data
				break
			}
		}
		return true
	})

	return responses, nil
}
