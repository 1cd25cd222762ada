package webhook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"pixrelay/validation"
)

func decodeInbound(body []byte) (InboundWebhook, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	var inbound InboundWebhook
	if err := dec.Decode(&inbound); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level JSON object")
	}
	if inbound == nil {
		return nil, errors.New("payload must be a JSON object")
	}
	return inbound, nil
}

func (p Profile) missingField(inbound InboundWebhook) (string, bool) {
	return validation.FirstMissing(inbound, p.RequiredFields)
}

// buildPayload applies the mapping table. Keys that are not in the table,
// such as ispb, never reach the outbound payload.
func (p Profile) buildPayload(inbound InboundWebhook) OutboundPayload {
	payload := make(OutboundPayload, len(p.Fields))
	for _, field := range p.Fields {
		payload[field.Dest] = field.Default
		for _, source := range field.Sources {
			if value, ok := inbound[source]; ok && value != nil {
				payload[field.Dest] = value
				break
			}
		}
	}
	return payload
}

func transactionID(inbound InboundWebhook) string {
	return validation.StringFromAny(inbound["idTransaction"])
}

// callbackResponse keeps a JSON answer as JSON and anything else as text.
func callbackResponse(body []byte) interface{} {
	if len(bytes.TrimSpace(body)) == 0 {
		return ""
	}
	var decoded interface{}
	if err := json.Unmarshal(body, &decoded); err == nil {
		return decoded
	}
	return string(body)
}

func rawBodyForLog(body []byte) string {
	var compacted bytes.Buffer
	if err := json.Compact(&compacted, body); err == nil {
		return compacted.String()
	}
	return fmt.Sprintf("%q", body)
}
