package webhook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"pixrelay/infra/metrics"
	"pixrelay/internal/eventlog"
	"pixrelay/internal/forwarder"
)

type InterfaceService interface {
	Process(ctx context.Context, method string, body io.Reader) (Result, error)
}

type InterfaceForwarder interface {
	Forward(ctx context.Context, payload any) (forwarder.Response, error)
}

type InterfaceEventLogger interface {
	Log(ctx context.Context, kind eventlog.Kind, data any)
}

type Service struct {
	profile   Profile
	forwarder InterfaceForwarder
	events    InterfaceEventLogger
	metrics   *metrics.Metrics
}

func NewWebhookService(profile Profile, forwarder InterfaceForwarder, events InterfaceEventLogger, metrics *metrics.Metrics) *Service {
	return &Service{
		profile:   profile,
		forwarder: forwarder,
		events:    events,
		metrics:   metrics,
	}
}

// Process runs receive, validate, transform and forward for one request.
// Pipeline failures come back as *Error; any other error is unexpected.
func (s *Service) Process(ctx context.Context, method string, body io.Reader) (Result, error) {
	inbound, err := s.ReadRequest(ctx, method, body)
	if err != nil {
		return Result{}, err
	}

	payload, err := s.Validate(ctx, inbound)
	if err != nil {
		return Result{}, err
	}

	return s.Forward(ctx, inbound, payload)
}

// ReadRequest rejects non-POST methods and empty or oversized bodies and
// decodes the JSON object.
func (s *Service) ReadRequest(ctx context.Context, method string, body io.Reader) (InboundWebhook, error) {
	if method != http.MethodPost {
		perr := errMethodNotAllowed(method)
		s.events.Log(ctx, eventlog.KindMethodError, perr.Message)
		return nil, perr
	}

	raw, err := io.ReadAll(io.LimitReader(body, MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("read request body: %w", err)
	}
	if len(raw) > MaxBodySize {
		perr := errBodyTooLarge()
		s.events.Log(ctx, eventlog.KindError, perr.Message)
		return nil, perr
	}

	if s.profile.AuditRawBody {
		s.events.Log(ctx, eventlog.KindRawBody, rawBodyForLog(raw))
	}

	if len(raw) == 0 {
		perr := errEmptyBody()
		s.events.Log(ctx, eventlog.KindError, perr.Message)
		return nil, perr
	}

	inbound, err := decodeInbound(raw)
	if err != nil {
		perr := errInvalidJSON(err.Error())
		s.events.Log(ctx, eventlog.KindJSONError, perr.Message)
		return nil, perr
	}

	return inbound, nil
}

// Validate checks required fields, logs the accepted payload and maps it.
func (s *Service) Validate(ctx context.Context, inbound InboundWebhook) (OutboundPayload, error) {
	if field, missing := s.profile.missingField(inbound); missing {
		perr := errMissingField(field)
		s.events.Log(ctx, eventlog.KindValidationError, map[string]any{
			"message":       perr.Message,
			"field":         field,
			"idTransaction": transactionID(inbound),
		})
		return nil, perr
	}

	s.events.Log(ctx, eventlog.KindReceived, inbound)

	return s.profile.buildPayload(inbound), nil
}

// Forward posts the payload once. The call is detached from the inbound
// request: a caller hanging up does not abort it, only the client timeout does.
func (s *Service) Forward(ctx context.Context, inbound InboundWebhook, payload OutboundPayload) (Result, error) {
	ctx = context.WithoutCancel(ctx)
	id := transactionID(inbound)

	start := time.Now()
	resp, err := s.forwarder.Forward(ctx, payload)
	if err != nil {
		s.metrics.ObserveForward(metrics.OutcomeTransportError, time.Since(start))
		perr := errForwardTransport(err)
		s.events.Log(ctx, eventlog.KindSendError, map[string]any{
			"error":         perr.Details,
			"idTransaction": id,
		})
		return Result{}, perr
	}

	if !resp.Accepted() {
		s.metrics.ObserveForward(metrics.OutcomeRejected, time.Since(start))
		s.events.Log(ctx, eventlog.KindHTTPError, map[string]any{
			"http_code":     resp.StatusCode,
			"response":      string(resp.Body),
			"idTransaction": id,
		})
		return Result{}, errForwardRejected(resp.StatusCode)
	}

	s.metrics.ObserveForward(metrics.OutcomeForwarded, time.Since(start))
	result := Result{
		TransactionID:    id,
		ForwardStatus:    resp.StatusCode,
		Payload:          payload,
		CallbackResponse: callbackResponse(resp.Body),
	}
	s.events.Log(ctx, eventlog.KindSent, map[string]any{
		"idTransaction":     id,
		"http_code":         resp.StatusCode,
		"payload_enviado":   payload,
		"callback_response": result.CallbackResponse,
	})
	return result, nil
}

// AsPipelineError reports whether err is a pipeline error.
func AsPipelineError(err error) (*Error, bool) {
	var perr *Error
	if errors.As(err, &perr) {
		return perr, true
	}
	return nil, false
}
