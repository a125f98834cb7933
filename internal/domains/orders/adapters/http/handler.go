// Package orderhttp exposes the order board over gin.
package orderhttp

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/order-board/internal/domains/orders/adapters/http/mapper"
	"github.com/Apurer/order-board/internal/domains/orders/application"
	"github.com/Apurer/order-board/internal/domains/orders/ports"
	"github.com/Apurer/order-board/internal/domains/orders/query"
	apierrors "github.com/Apurer/order-board/internal/shared/errors"
)

// OrdersAPI wires HTTP transport with the order board service.
type OrdersAPI struct {
	service   ports.Service
	responder *apierrors.Responder
}

// NewOrdersAPI creates an OrdersAPI backed by the provided service.
func NewOrdersAPI(service ports.Service) *OrdersAPI {
	return &OrdersAPI{
		service:   service,
		responder: apierrors.NewResponder(mapOrderError),
	}
}

// NewRouter builds a gin engine with every board route registered.
func NewRouter(api *OrdersAPI, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware...)
	api.RegisterRoutes(router)
	return router
}

// RegisterRoutes mounts the /v1 board routes and the health probe.
func (api *OrdersAPI) RegisterRoutes(router gin.IRouter) {
	router.GET("/healthz", api.Healthz)

	v1 := router.Group("/v1")
	v1.GET("/orders", api.ListOrders)
	v1.GET("/orders/:orderId", api.GetOrder)

	board := v1.Group("/board")
	board.GET("", api.GetBoard)
	board.PUT("/criteria", api.SetCriteria)
	board.POST("/sort/:column", api.ToggleSort)
	board.POST("/selection/details/:orderId", api.OpenDetails)
	board.POST("/selection/status-change/:orderId", api.OpenStatusChange)
	board.PUT("/selection/pending", api.UpdatePending)
	board.POST("/selection/commit", api.Commit)
	board.POST("/selection/cancel", api.Cancel)
}

// Get /healthz
func (api *OrdersAPI) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Get /v1/orders
// Lists the visible rows for the query string criteria
func (api *OrdersAPI) ListOrders(c *gin.Context) {
	var payload mapper.Criteria
	if err := c.ShouldBindQuery(&payload); err != nil {
		api.responder.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	rows, err := api.service.ListOrders(c.Request.Context(), mapper.ToCriteria(payload))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainOrders(rows))
}

// Get /v1/orders/:orderId
func (api *OrdersAPI) GetOrder(c *gin.Context) {
	id, ok := api.orderIDParam(c)
	if !ok {
		return
	}
	order, err := api.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		api.respondOrderError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainOrder(order))
}

// Get /v1/board
func (api *OrdersAPI) GetBoard(c *gin.Context) {
	view, err := api.service.Board(c.Request.Context())
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromBoard(view))
}

// Put /v1/board/criteria
func (api *OrdersAPI) SetCriteria(c *gin.Context) {
	var payload mapper.Criteria
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	criteria, err := api.service.SetCriteria(c.Request.Context(), mapper.ToCriteria(payload))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromCriteria(criteria))
}

// Post /v1/board/sort/:column
// Applies a column header click
func (api *OrdersAPI) ToggleSort(c *gin.Context) {
	column, ok := query.ParseSortKey(c.Param("column"))
	if !ok {
		api.responder.Respond(c, apierrors.ErrValidation.
			WithDetail("unknown sort column").
			WithExtension("column", c.Param("column")))
		return
	}
	criteria, err := api.service.ToggleSort(c.Request.Context(), column)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromCriteria(criteria))
}

// Post /v1/board/selection/details/:orderId
func (api *OrdersAPI) OpenDetails(c *gin.Context) {
	id, ok := api.orderIDParam(c)
	if !ok {
		return
	}
	state, err := api.service.OpenDetails(c.Request.Context(), id)
	if err != nil {
		api.respondOrderError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromSelection(state))
}

// Post /v1/board/selection/status-change/:orderId
func (api *OrdersAPI) OpenStatusChange(c *gin.Context) {
	id, ok := api.orderIDParam(c)
	if !ok {
		return
	}
	state, err := api.service.OpenStatusChange(c.Request.Context(), id)
	if err != nil {
		api.respondOrderError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromSelection(state))
}

// Put /v1/board/selection/pending
// Stages the status the next commit will write
func (api *OrdersAPI) UpdatePending(c *gin.Context) {
	var payload mapper.PendingStatus
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	state, err := api.service.UpdatePending(c.Request.Context(), payload.Status)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromSelection(state))
}

// Post /v1/board/selection/commit
func (api *OrdersAPI) Commit(c *gin.Context) {
	result, err := api.service.Commit(c.Request.Context())
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromCommitResult(result))
}

// Post /v1/board/selection/cancel
func (api *OrdersAPI) Cancel(c *gin.Context) {
	state, err := api.service.Cancel(c.Request.Context())
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromSelection(state))
}

func (api *OrdersAPI) orderIDParam(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Param("orderId"))
	if id == "" {
		api.responder.Respond(c, apierrors.ErrBadRequest.WithDetail("orderId is required"))
		return "", false
	}
	return id, true
}

// respondOrderError names the requested id in not-found problems.
func (api *OrdersAPI) respondOrderError(c *gin.Context, id string, err error) {
	if errors.Is(err, ports.ErrNotFound) {
		api.responder.Respond(c, apierrors.NewNotFoundProblem("order", id))
		return
	}
	api.responder.RespondError(c, err)
}

func mapOrderError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "order"), true
	case errors.Is(err, application.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	default:
		return apierrors.ProblemDetail{}, false
	}
}
