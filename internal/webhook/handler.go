package webhook

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pixrelay/infra/metrics"
)

type Handler struct {
	InterfaceService InterfaceService
	metrics          *metrics.Metrics
}

func NewWebhookHandler(InterfaceService InterfaceService, metrics *metrics.Metrics) *Handler {
	return &Handler{
		InterfaceService: InterfaceService,
		metrics:          metrics,
	}
}

// ReceiveWebhook godoc
// @Summary Receber webhook Pix
// @Description Valida o payload do provedor, remapeia os campos e encaminha para o callback interno.
// @Tags Webhook
// @Accept json
// @Produce json
// @Param payload body object true "Payload do provedor"
// @Success 200 {object} Response "Encaminhado"
// @Failure 400 {object} ErrorResponse "Requisição Inválida"
// @Failure 405 {object} ErrorResponse "Método não permitido"
// @Failure 413 {object} ErrorResponse "Corpo muito grande"
// @Failure 500 {object} ErrorResponse "Falha no envio"
// @Failure 502 {object} ErrorResponse "Destino recusou"
// @Router /webhook [post]
func (h *Handler) ReceiveWebhook(c echo.Context) error {
	req := c.Request()

	result, err := h.InterfaceService.Process(req.Context(), req.Method, req.Body)
	if err != nil {
		perr, ok := AsPipelineError(err)
		if !ok {
			// unexpected: the error handler logs it and answers a generic 500
			return err
		}
		h.metrics.ObserveRequest(string(perr.Kind))

		response := ErrorResponse{}
		response.ParseFromError(perr)
		return c.JSON(perr.StatusCode(), response)
	}

	h.metrics.ObserveRequest(metrics.OutcomeForwarded)

	response := Response{}
	response.ParseFromResult(result)
	return c.JSON(http.StatusOK, response)
}
