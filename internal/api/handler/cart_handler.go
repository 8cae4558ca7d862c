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

type CartHandler struct {
	cartService service.ICartService
}

func NewCartHandler(cartService service.ICartService) *CartHandler {
	if cartService == nil {
		panic("cartService cannot be nil")
	}
	return &CartHandler{
		cartService: cartService,
	}
}

func convertCartModelToDTO(cart *model.Cart) dto.CartDTO {
	items := make([]dto.CartItemDTO, 0, len(cart.CartItems))
	for _, item := range cart.CartItems {
		items = append(items, dto.CartItemDTO{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return dto.CartDTO{
		CartID: cart.CartID.String(),
		Items:  items,
		Amount: cart.Amount,
	}
}

// @Summary get own cart, empty cart when none
// @Tags cart
// @Produce json
// @Success 200 {object} api.Response{data=dto.CartDTO} "success"
// @Failure 401 {object} api.Response "UnauthenticatedCode"
// @Security     ApiKeyAuth
// @Router /cart [get]
func (c *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		api.ErrorJSON(w, int(er.UnauthenticatedCode), nil, er.ErrStrMap[er.UnauthenticatedCode])
		return
	}

	cart, err := c.cartService.GetCart(ctx, payload.UserID)
	if err != nil {
		if appErr, ok := err.(*er.AppError); ok {
			api.ErrorJSON(w, appErr.HttpStatus(), appErr, appErr.Message)
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertCartModelToDTO(cart), "")
}

// @Summary replace cart contents, amount recalculated from catalog prices
// @Tags cart
// @Accept json
// @Produce json
// @Param cart body dto.UpdateCartDTO true "cart items"
// @Success 200 {object} api.Response{data=dto.CartDTO} "success"
// @Failure 400 {object} api.Response "InvalidArgumentCode"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Security     ApiKeyAuth
// @Router /cart [put]
func (c *CartHandler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		api.ErrorJSON(w, int(er.UnauthenticatedCode), nil, er.ErrStrMap[er.UnauthenticatedCode])
		return
	}

	var cartDTO dto.UpdateCartDTO
	if err := json.NewDecoder(r.Body).Decode(&cartDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), nil, er.ErrStrMap[er.BadRequestCode])
		return
	}

	items := make([]model.CartItem, 0, len(cartDTO.Items))
	for _, item := range cartDTO.Items {
		items = append(items, model.CartItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	cart, err := c.cartService.UpdateCart(ctx, payload.UserID, items)
	if err != nil {
		if appErr, ok := err.(*er.AppError); ok {
			api.ErrorJSON(w, appErr.HttpStatus(), appErr, appErr.Message)
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertCartModelToDTO(cart), "cart updated")
}

// @Summary clear own cart
// @Tags cart
// @Produce json
// @Success 200 {object} api.Response "success"
// @Failure 401 {object} api.Response "UnauthenticatedCode"
// @Security     ApiKeyAuth
// @Router /cart [delete]
func (c *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		api.ErrorJSON(w, int(er.UnauthenticatedCode), nil, er.ErrStrMap[er.UnauthenticatedCode])
		return
	}

	if err := c.cartService.ClearCart(ctx, payload.UserID); err != nil {
		if appErr, ok := err.(*er.AppError); ok {
			api.ErrorJSON(w, appErr.HttpStatus(), appErr, appErr.Message)
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, nil, "cart cleared")
}
