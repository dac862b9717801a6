package admin

import (
	"giftlist/config"
	"giftlist/infras/otel"
	authDto "giftlist/internal/domains/auth/model/dto"
	authService "giftlist/internal/domains/auth/service"
	"giftlist/internal/domains/gift/model"
	"giftlist/internal/domains/gift/model/dto"
	giftService "giftlist/internal/domains/gift/service"
	reservationDto "giftlist/internal/domains/reservation/model/dto"
	reservationService "giftlist/internal/domains/reservation/service"
	"giftlist/shared/constant"
	gDto "giftlist/shared/dto"
	"giftlist/shared/validator"
	"giftlist/transport/http/middleware"
	"giftlist/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	keyGifts     = "gifts"
	keyGift      = "gift"
	keyToken     = "token"
	keyExpiresIn = "expires_in"
	keyAdminID   = "admin_id"

	messageLoginSuccessful = "login successful"

	formOverheadBytes = 64 << 10
)

// Handler serves the admin endpoints. Everything except login sits behind the auth middleware.
type Handler struct {
	auth           authService.Auth
	gifts          giftService.Gift
	reservations   reservationService.Reservation
	authMiddleware middleware.Auth
	otel           otel.Otel
	bodyLimiter    func(http.Handler) http.Handler
}

func New(
	auth authService.Auth,
	gifts giftService.Gift,
	reservations reservationService.Reservation,
	authMiddleware middleware.Auth,
	appMiddleware middleware.AppMiddleware,
	cfg *config.Config,
	otel otel.Otel,
) Handler {
	return Handler{
		auth:           auth,
		gifts:          gifts,
		reservations:   reservations,
		authMiddleware: authMiddleware,
		otel:           otel,
		bodyLimiter:    appMiddleware.MaxBodySize(uploadLimit(cfg)),
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/admin", func(routerGroup chi.Router) {
		routerGroup.Post("/login", handler.Login)

		routerGroup.Group(func(protected chi.Router) {
			protected.Use(handler.authMiddleware.Auth)

			protected.Get("/verify", handler.Verify)

			protected.Route("/gifts", func(gifts chi.Router) {
				gifts.Get("/", handler.GetGifts)
				gifts.With(handler.bodyLimiter).Post("/", handler.CreateGift)
				gifts.Get("/{id}", handler.GetGift)
				gifts.With(handler.bodyLimiter).Put("/{id}", handler.UpdateGift)
				gifts.Delete("/{id}", handler.DeleteGift)
				gifts.Patch("/{id}/status", handler.UpdateStatus)
				gifts.Patch("/{id}/reserved-by", handler.UpdateReservedBy)
			})
		})
	})
}

// uploadLimit caps gift payloads at the image size limit plus room for the text fields.
func uploadLimit(cfg *config.Config) int64 {
	return int64(cfg.App.Upload.MaxSizeMB*constant.BytesPerMegabyte) + formOverheadBytes
}

// Login exchanges the admin password for a bearer token.
// @Summary Admin login
// @Description Verify the admin password and issue a signed token.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body authDto.LoginRequest true "Login Request"
// @Success 200 {object} response.Envelope{token=string,expires_in=int}
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /admin/login [post]
func (handler *Handler) Login(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	req := authDto.LoginRequest{}

	if err := validator.Decode(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode request body")

		response.WithError(writer, authDto.ErrPasswordRequired)

		return
	}

	res, err := handler.auth.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("admin login failed")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Admin logged in")

	response.WithFields(writer, http.StatusOK, messageLoginSuccessful, map[string]any{
		keyToken:     res.Token,
		keyExpiresIn: res.ExpiresIn,
	})
}

// Verify reports the admin behind the bearer token.
// @Summary Verify token
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope{admin_id=int}
// @Failure 401 {object} response.Envelope
// @Router /admin/verify [get]
// @Security BearerAuth
func (handler *Handler) Verify(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Verify")
	defer scope.End()

	adminID := middleware.AdminID(ctx)
	scope.SetAttribute(keyAdminID, adminID)

	response.WithFields(writer, http.StatusOK, constant.Empty, map[string]any{
		keyAdminID: adminID,
	})
}

// GetGifts lists the whole catalog for the dashboard.
// @Summary List gifts
// @Tags Admin
// @Produce json
// @Param status query string false "available or reserved"
// @Param category query string false "Exact category"
// @Success 200 {object} response.Envelope{gifts=[]dto.GiftResponse}
// @Failure 401 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /admin/gifts [get]
// @Security BearerAuth
func (handler *Handler) GetGifts(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AdminGetGifts")
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

	response.WithData(writer, http.StatusOK, constant.Empty, keyGifts, gifts)
}

// GetGift returns one gift.
// @Summary Get a gift
// @Tags Admin
// @Produce json
// @Param id path int true "Gift ID"
// @Success 200 {object} response.Envelope{gift=dto.GiftResponse}
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/gifts/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetGift(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGift")
	defer scope.End()

	id, err := gDto.PathID(request, constant.RequestParamID)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	gift, err := handler.gifts.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("gift_id", id).Msg("failed to get gift")

		response.WithError(writer, err)

		return
	}

	response.WithData(writer, http.StatusOK, constant.Empty, keyGift, gift)
}

// CreateGift adds a gift to the catalog.
// @Summary Create a gift
// @Description Accepts JSON, or a multipart form with the fields (or a data JSON field) and an optional image file.
// @Tags Admin
// @Accept json,mpfd
// @Produce json
// @Param request body dto.CreateGiftRequest true "Create Gift Request"
// @Success 201 {object} response.Envelope{gift=dto.GiftResponse}
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 413 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /admin/gifts [post]
// @Security BearerAuth
func (handler *Handler) CreateGift(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateGift")
	defer scope.End()

	req := dto.CreateGiftRequest{}

	image, release, err := decodeGiftPayload(request, &req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read gift payload")

		response.WithError(writer, err)

		return
	}
	defer release()

	gift, err := handler.gifts.Create(ctx, req, image)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create gift")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Gift created successfully")

	response.WithData(writer, http.StatusCreated, dto.MessageCreated, keyGift, gift)
}

// UpdateGift edits a gift. Absent fields keep their value.
// @Summary Update a gift
// @Tags Admin
// @Accept json,mpfd
// @Produce json
// @Param id path int true "Gift ID"
// @Param request body dto.UpdateGiftRequest true "Update Gift Request"
// @Success 200 {object} response.Envelope{gift=dto.GiftResponse}
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /admin/gifts/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateGift(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateGift")
	defer scope.End()

	id, err := gDto.PathID(request, constant.RequestParamID)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.UpdateGiftRequest{}

	image, release, err := decodeGiftPayload(request, &req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read gift payload")

		response.WithError(writer, err)

		return
	}
	defer release()

	gift, err := handler.gifts.Update(ctx, id, req, image)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("gift_id", id).Msg("failed to update gift")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Gift updated successfully")

	response.WithData(writer, http.StatusOK, dto.MessageUpdated, keyGift, gift)
}

// DeleteGift removes a gift and its stored image.
// @Summary Delete a gift
// @Tags Admin
// @Produce json
// @Param id path int true "Gift ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/gifts/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteGift(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteGift")
	defer scope.End()

	id, err := gDto.PathID(request, constant.RequestParamID)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	if err := handler.gifts.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("gift_id", id).Msg("failed to delete gift")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Gift removed successfully")

	response.WithMessage(writer, http.StatusOK, dto.MessageRemoved)
}

// UpdateStatus marks a gift reserved or releases it.
// @Summary Override reservation status
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "Gift ID"
// @Param request body reservationDto.UpdateStatusRequest true "Update Status Request"
// @Success 200 {object} response.Envelope{gift=dto.GiftResponse}
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/gifts/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateStatus(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateStatus")
	defer scope.End()

	id, err := gDto.PathID(request, constant.RequestParamID)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := reservationDto.UpdateStatusRequest{}

	if err := validator.Decode(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, reservationDto.ErrInvalidStatus)

		return
	}

	gift, err := handler.reservations.UpdateStatus(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("gift_id", id).Msg("failed to update gift status")

		response.WithError(writer, err)

		return
	}

	message := reservationDto.MessageReleased
	if gift.Status == model.StatusReserved {
		message = reservationDto.MessageMarkedReserved
	}

	scope.AddEvent(message)

	response.WithData(writer, http.StatusOK, message, keyGift, gift)
}

// UpdateReservedBy renames the holder of a reserved gift.
// @Summary Update reservation holder
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "Gift ID"
// @Param request body reservationDto.UpdateReservedByRequest true "Update Reserved By Request"
// @Success 200 {object} response.Envelope{gift=dto.GiftResponse}
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/gifts/{id}/reserved-by [patch]
// @Security BearerAuth
func (handler *Handler) UpdateReservedBy(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateReservedBy")
	defer scope.End()

	id, err := gDto.PathID(request, constant.RequestParamID)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := reservationDto.UpdateReservedByRequest{}

	if err := validator.Decode(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, reservationDto.ErrNameTooShort)

		return
	}

	gift, err := handler.reservations.UpdateReservedBy(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("gift_id", id).Msg("failed to update reserved_by")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Reserved by updated")

	response.WithData(writer, http.StatusOK, reservationDto.MessageReservedByUpdate, keyGift, gift)
}
