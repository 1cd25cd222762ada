package eventlog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the timestamp format written between brackets on every line.
const TimeLayout = time.RFC3339

type Kind string

const (
	KindReceived        Kind = "WEBHOOK_RECEIVED"
	KindRawBody         Kind = "WEBHOOK_RAW"
	KindSent            Kind = "WEBHOOK_ENVIADO"
	KindSendError       Kind = "ERRO_ENVIO"
	KindHTTPError       Kind = "ERRO_HTTP"
	KindFatal           Kind = "ERRO_FATAL"
	KindError           Kind = "ERRO"
	KindJSONError       Kind = "ERRO_JSON"
	KindValidationError Kind = "ERRO_VALIDACAO"
	KindMethodError     Kind = "ERRO_METODO"
	KindTLSInsecure     Kind = "CONFIG_TLS_INSECURE"
)

// Event is one audit record. Data is either text (string or []byte) or any
// value that encodes to JSON.
type Event struct {
	Time time.Time
	Kind Kind
	Data any
}

// Line renders the event as "[timestamp] KIND: data" without the trailing newline.
func (e Event) Line() (string, error) {
	content, err := encodeData(e.Data)
	if err != nil {
		return "", fmt.Errorf("encode %s data: %w", e.Kind, err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Time.Local().Format(TimeLayout), e.Kind, content), nil
}

var lineBreaks = strings.NewReplacer("\r\n", `\n`, "\n", `\n`, "\r", `\n`)

func encodeData(data any) (string, error) {
	switch v := data.(type) {
	case nil:
		return "", nil
	case string:
		return lineBreaks.Replace(v), nil
	case []byte:
		return lineBreaks.Replace(string(v)), nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
