package corebank

import "encoding/json"

// unmarshal decodes a core-bank response body, treating an empty body as an
// empty result rather than an error.
func unmarshal(body []byte, v any) error {
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, v)
}
