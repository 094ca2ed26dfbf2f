// Package client is the Go client for the renewal tracking API. It mirrors
// the behavior the web dashboard relies on: envelope normalization, token
// handling, and graceful fallbacks for older server builds.
package client

import "encoding/json"

// Envelope is the normalized response every call returns. Payload holds the
// raw JSON of the data portion for the caller to decode.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Payload json.RawMessage `json:"data"`
}

// NormalizeEnvelope reconciles the three body conventions deployed servers
// have used:
//
//  1. {"success": bool, "message": ..., "data": ...} passes through;
//  2. {"data": ...} without a success flag wraps as success with that data;
//  3. anything else wraps as success with the whole body as data.
//
// A body that is not a JSON object always falls into case 3.
func NormalizeEnvelope(body []byte) Envelope {
	var peek map[string]json.RawMessage
	if err := json.Unmarshal(body, &peek); err != nil {
		return Envelope{Success: true, Payload: append(json.RawMessage(nil), body...)}
	}

	if rawSuccess, ok := peek["success"]; ok {
		var success bool
		if err := json.Unmarshal(rawSuccess, &success); err == nil {
			env := Envelope{Success: success, Payload: peek["data"]}
			if rawMsg, ok := peek["message"]; ok {
				json.Unmarshal(rawMsg, &env.Message)
			}
			return env
		}
	}

	if data, ok := peek["data"]; ok {
		return Envelope{Success: true, Payload: data}
	}

	return Envelope{Success: true, Payload: append(json.RawMessage(nil), body...)}
}
