package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/shopcenter/internal/api/dto"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db/model"
	"github.com/RoyceAzure/lab/shopcenter/internal/service"
	"github.com/RoyceAzure/lab/shopcenter/internal/util"
	"github.com/RoyceAzure/lab/shopcenter/internal/util/er"
	"github.com/RoyceAzure/lab/shopcenter/pkg/api"
)

type CheckoutHandler struct {
	checkoutService service.ICheckoutService
}

func NewCheckoutHandler(checkoutService service.ICheckoutService) *CheckoutHandler {
	if checkoutService == nil {
		panic("checkoutService cannot be nil")
	}
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// @Summary payment gateway client token
// @Tags checkout
// @Produce json
// @Success 200 {object} api.Response{data=dto.ClientTokenResponse} "success"
// @Failure 500 {object} api.Response "Internal server error"
// @Router /product/braintree/token [get]
func (c *CheckoutHandler) ClientToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clientToken, err := c.checkoutService.ClientToken(ctx)
	if err != nil {
		if appErr, ok := err.(*er.AppError); ok {
			api.ErrorJSON(w, appErr.HttpStatus(), appErr, appErr.Message)
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, dto.ClientTokenResponse{ClientToken: clientToken}, "")
}

// @Summary checkout: charge, create order, clear cart
// @Tags checkout
// @Accept json
// @Produce json
// @Param payment body dto.PaymentDTO true "nonce, cart items and idempotency key"
// @Success 200 {object} api.Response{data=dto.OrderDTO} "success"
// @Failure 400 {object} api.Response "InvalidArgumentCode"
// @Failure 402 {object} api.Response "PaymentFailedCode"
// @Failure 409 {object} api.Response "ConflictCode"
// @Security     ApiKeyAuth
// @Router /product/braintree/payment [post]
func (c *CheckoutHandler) Payment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		api.ErrorJSON(w, int(er.UnauthenticatedCode), nil, er.ErrStrMap[er.UnauthenticatedCode])
		return
	}

	var paymentDTO dto.PaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&paymentDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), nil, er.ErrStrMap[er.BadRequestCode])
		return
	}

	items := make([]model.CartItem, 0, len(paymentDTO.Cart))
	for _, item := range paymentDTO.Cart {
		items = append(items, model.CartItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := c.checkoutService.Payment(ctx, payload.UserID, paymentDTO.Nonce, items, paymentDTO.IdempotencyKey)
	if err != nil {
		if appErr, ok := err.(*er.AppError); ok {
			api.ErrorJSON(w, appErr.HttpStatus(), appErr, appErr.Message)
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertOrderModelToDTO(order), "payment successful")
}
