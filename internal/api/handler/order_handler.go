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
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orderService service.IOrderService
}

func NewOrderHandler(orderService service.IOrderService) *OrderHandler {
	if orderService == nil {
		panic("orderService cannot be nil")
	}
	return &OrderHandler{
		orderService: orderService,
	}
}

func convertOrderModelToDTO(order *model.Order) dto.OrderDTO {
	items := make([]dto.OrderItemDTO, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		items = append(items, dto.OrderItemDTO{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Price:       item.Price,
			Quantity:    item.Quantity,
		})
	}

	orderDTO := dto.OrderDTO{
		ID:     order.OrderID.String(),
		Status: string(order.Status),
		Amount: order.Amount,
		Payment: dto.OrderPaymentDTO{
			TransactionID: order.TransactionID,
			Status:        order.PaymentStatus,
			Success:       order.PaymentSuccess,
		},
		Items:     items,
		CreatedAt: order.CreatedAt,
	}
	if order.Buyer != nil {
		orderDTO.Buyer = &dto.OrderBuyerDTO{
			ID:   order.Buyer.UserID.String(),
			Name: order.Buyer.Name,
		}
	}
	return orderDTO
}

func convertOrderModelsToDTOs(orders []model.Order) []dto.OrderDTO {
	orderDTOs := make([]dto.OrderDTO, 0, len(orders))
	for i := range orders {
		orderDTOs = append(orderDTOs, convertOrderModelToDTO(&orders[i]))
	}
	return orderDTOs
}

// @Summary buyer's own orders
// @Tags order
// @Produce json
// @Success 200 {object} api.Response{data=[]dto.OrderDTO} "success"
// @Failure 401 {object} api.Response "UnauthenticatedCode"
// @Security     ApiKeyAuth
// @Router /auth/orders [get]
func (o *OrderHandler) GetBuyerOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payload := util.GetTokenPayloadFromContext(ctx)
	if payload == nil {
		api.ErrorJSON(w, int(er.UnauthenticatedCode), nil, er.ErrStrMap[er.UnauthenticatedCode])
		return
	}

	orders, err := o.orderService.GetBuyerOrders(ctx, payload.UserID)
	if err != nil {
		if appErr, ok := err.(*er.AppError); ok {
			api.ErrorJSON(w, appErr.HttpStatus(), appErr, appErr.Message)
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertOrderModelsToDTOs(orders), "")
}

// @Summary all orders, newest first
// @Tags order
// @Produce json
// @Success 200 {object} api.Response{data=[]dto.OrderDTO} "success"
// @Failure 403 {object} api.Response "UnauthorizedCode"
// @Security     ApiKeyAuth
// @Router /auth/all-orders [get]
func (o *OrderHandler) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orders, err := o.orderService.GetAllOrders(ctx)
	if err != nil {
		if appErr, ok := err.(*er.AppError); ok {
			api.ErrorJSON(w, appErr.HttpStatus(), appErr, appErr.Message)
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertOrderModelsToDTOs(orders), "")
}

// @Summary update order status
// @Tags order
// @Accept json
// @Produce json
// @Param orderId path string true "order id"
// @Param status body dto.UpdateOrderStatusDTO true "new status"
// @Success 200 {object} api.Response{data=dto.OrderDTO} "success"
// @Failure 400 {object} api.Response "InvalidArgumentCode"
// @Failure 404 {object} api.Response "NotFoundCode"
// @Security     ApiKeyAuth
// @Router /auth/order-status/{orderId} [put]
func (o *OrderHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "orderId"))
	if err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), nil, er.ErrStrMap[er.BadRequestCode])
		return
	}

	var statusDTO dto.UpdateOrderStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&statusDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), nil, er.ErrStrMap[er.BadRequestCode])
		return
	}

	ctx := r.Context()

	order, err := o.orderService.UpdateOrderStatus(ctx, orderID, statusDTO.Status)
	if err != nil {
		if appErr, ok := err.(*er.AppError); ok {
			api.ErrorJSON(w, appErr.HttpStatus(), appErr, appErr.Message)
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertOrderModelToDTO(order), "order status updated")
}
