package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/staxpay/gateway/internal/app/service/webhook"
	"github.com/staxpay/gateway/pkg/response"
	"github.com/gin-gonic/gin"
)

func webhookErrCode(err error) response.APIResponseCode {
	for _, bad := range []error{
		webhook.ErrSubscriptionNotFound,
		webhook.ErrUnknownEvent,
		webhook.ErrInvalidEndpoint,
	} {
		if errors.Is(err, bad) {
			return response.APIResponseCodeBadRequest
		}
	}
	return response.APIResponseCodeError
}

// @Summary      Create Webhook Subscription
// @Description  Registers a merchant endpoint for event delivery. The signing secret is returned only in this response.
// @Tags         Webhook
// @Accept       json
// @Produce      json
// @Param        X-Merchant-ID header string true "Merchant ID"
// @Param        request body webhook.CreateSubscriptionRequest true "Subscription creation request"
// @Success      200  {object}  handlers.RespCreateSubscription
// @Router       /api/v1/webhooks/subscriptions [post]
func ApiCreateSubscription(subs webhook.Subscriptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		merchantID, ok := requireMerchant(c)
		if !ok {
			return
		}
		var req webhook.CreateSubscriptionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		req.MerchantID = merchantID

		res, err := subs.CreateSubscription(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](webhookErrCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Update Webhook Subscription
// @Description  Updates the endpoint URL, subscribed events, or active flag of a subscription.
// @Tags         Webhook
// @Accept       json
// @Produce      json
// @Param        X-Merchant-ID header string true "Merchant ID"
// @Param        id path string true "Subscription ID"
// @Param        request body webhook.UpdateSubscriptionRequest true "Fields to update; omitted fields keep their value"
// @Success      200  {object}  handlers.RespSubscription
// @Router       /api/v1/webhooks/subscriptions/{id} [post]
func ApiUpdateSubscription(subs webhook.Subscriptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		merchantID, ok := requireMerchant(c)
		if !ok {
			return
		}
		var req webhook.UpdateSubscriptionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		req.MerchantID = merchantID
		req.SubscriptionID = c.Param("id")

		sub, err := subs.UpdateSubscription(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](webhookErrCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(sub))
	}
}

// @Summary      List Webhook Subscriptions
// @Description  Lists the merchant's webhook subscriptions, newest first. Secrets are never included.
// @Tags         Webhook
// @Produce      json
// @Param        X-Merchant-ID header string true "Merchant ID"
// @Success      200  {object}  handlers.RespListSubscriptions
// @Router       /api/v1/webhooks/subscriptions [get]
func ApiListSubscriptions(subs webhook.Subscriptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		merchantID, ok := requireMerchant(c)
		if !ok {
			return
		}
		items, err := subs.ListSubscriptions(c.Request.Context(), merchantID)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](webhookErrCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(items))
	}
}

// @Summary      List Webhook Deliveries
// @Description  Retrieves the delivery audit trail, optionally scoped to one subscription.
// @Tags         Webhook
// @Produce      json
// @Param        X-Merchant-ID header string true "Merchant ID"
// @Param        subscription_id query string false "Filter by subscription"
// @Param        from query int false "Pagination offset"
// @Param        size query int false "Page size"
// @Success      200  {object}  handlers.RespListDeliveries
// @Router       /api/v1/webhooks/deliveries [get]
func ApiListDeliveries(subs webhook.Subscriptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		merchantID, ok := requireMerchant(c)
		if !ok {
			return
		}
		// Read pagination from query params
		from := 0
		if v := c.Query("from"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				from = n
			}
		}
		size := 10
		if v := c.Query("size"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				size = n
			} else {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "invalid size"))
				return
			}
		}

		req := &webhook.ListDeliveriesRequest{
			MerchantID:     merchantID,
			SubscriptionID: c.Query("subscription_id"),
			From:           from,
			Size:           size,
		}
		res, err := subs.ListDeliveries(c.Request.Context(), req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](webhookErrCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func RegisterWebhookRoutes(r gin.IRouter, subs webhook.Subscriptions) {
	r.POST("/subscriptions", ApiCreateSubscription(subs))
	r.GET("/subscriptions", ApiListSubscriptions(subs))
	r.POST("/subscriptions/:id", ApiUpdateSubscription(subs))
	r.GET("/deliveries", ApiListDeliveries(subs))
}
