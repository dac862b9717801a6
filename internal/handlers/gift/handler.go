package gift

import (
	"giftlist/infras/otel"
	"giftlist/internal/domains/gift/model/dto"
	giftService "giftlist/internal/domains/gift/service"
	reservationDto "giftlist/internal/domains/reservation/model/dto"
	reservationService "giftlist/internal/domains/reservation/service"
	"giftlist/shared/constant"
	"giftlist/shared/validator"
	"giftlist/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	keyGifts = "gifts"
	keyGift  = "gift"

	messageGiftsRetrieved = "gifts retrieved successfully"
)

// Handler serves the guest facing endpoints.
type Handler struct {
	gifts        giftService.Gift
	reservations reservationService.Reservation
	otel         otel.Otel
}

func New(gifts giftService.Gift, reservations reservationService.Reservation, otel otel.Otel) Handler {
	return Handler{
		gifts:        gifts,
		reservations: reservations,
		otel:         otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/gifts", handler.GetGifts)
	router.Post("/reserve", handler.Reserve)
}

// GetGifts lists the catalog.
// @Summary List gifts
// @Description List every gift, optionally narrowed by status and category.
// @Tags Gift
// @Produce json
// @Param status query string false "available or reserved"
// @Param category query string false "Exact category"
// @Success 200 {object} response.Envelope{gifts=[]dto.GiftResponse}
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /gifts [get]
func (handler *Handler) GetGifts(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGifts")
	defer scope.End()

	filter := dto.ListFilter{}
	filter.FromRequest(request)

	gifts, err := handler.gifts.ListAll(ctx, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list gifts")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Gifts retrieved successfully")

	response.WithData(writer, http.StatusOK, messageGiftsRetrieved, keyGifts, gifts)
}

// Reserve claims a gift for a guest.
// @Summary Reserve a gift
// @Description Reserve an available gift. Only the first of several concurrent requests wins.
// @Tags Gift
// @Accept json
// @Produce json
// @Param request body reservationDto.ReserveRequest true "Reserve Request"
// @Success 200 {object} response.Envelope{gift=dto.GiftResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /reserve [post]
func (handler *Handler) Reserve(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Reserve")
	defer scope.End()

	req := reservationDto.ReserveRequest{}

	if err := validator.Decode(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode request body")

		response.WithError(writer, reservationDto.ErrIncompleteData)

		return
	}

	gift, err := handler.reservations.Reserve(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Int64("gift_id", int64(req.GiftID)).Msg("failed to reserve gift")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Gift reserved successfully")

	response.WithData(writer, http.StatusOK, reservationDto.MessageReserved, keyGift, gift)
}
