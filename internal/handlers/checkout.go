// internal/handlers/checkout.go
package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/digivault/shop-backend/internal/checkout"
	"github.com/digivault/shop-backend/internal/i18n"
	"github.com/digivault/shop-backend/internal/models"
	"github.com/digivault/shop-backend/internal/services"
	"github.com/digivault/shop-backend/internal/utils"
)

type CheckoutHandler struct {
	checkoutService *services.CheckoutService
}

type checkoutDetailsRequest struct {
	PaymentMethod string `json:"payment_method"`
	FullName      string `json:"full_name"`
	Phone         string `json:"phone"`
	DeliveryEmail string `json:"delivery_email"`
	AcceptTerms   bool   `json:"accept_terms"`
}

func NewCheckoutHandler(checkoutService *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// POST /checkout
func (h *CheckoutHandler) Start(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	state, err := h.checkoutService.Start(userID)
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyCartEmpty), nil)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyCheckoutStarted),
		"checkout": state,
	})
}

// GET /checkout
func (h *CheckoutHandler) State(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	state, err := h.checkoutService.State(userID)
	if err != nil {
		utils.NotFoundResponse(c, i18n.KeyCheckoutNotInProgress)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"checkout": state,
	})
}

// POST /checkout/details
func (h *CheckoutHandler) SubmitDetails(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req checkoutDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	state, err := h.checkoutService.SubmitDetails(userID, checkout.Details{
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
		FullName:      req.FullName,
		Phone:         req.Phone,
		DeliveryEmail: req.DeliveryEmail,
		AcceptTerms:   req.AcceptTerms,
	})
	if err != nil {
		h.writeCheckoutError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyCheckoutDetailsSaved),
		"checkout": state,
	})
}

// POST /checkout/back
func (h *CheckoutHandler) Back(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	state, err := h.checkoutService.Back(userID)
	if err != nil {
		h.writeCheckoutError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"checkout": state,
	})
}

// POST /checkout/proof
func (h *CheckoutHandler) SubmitProof(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	transactionRef := c.PostForm("transaction_ref")

	file, header, err := c.Request.FormFile("proof")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "proof"), err.Error())
		return
	}
	defer file.Close()

	order, err := h.checkoutService.SubmitProof(c.Request.Context(), userID, checkout.Proof{
		TransactionRef: transactionRef,
		Filename:       header.Filename,
		File:           file,
	})
	if err != nil {
		h.writeCheckoutError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCheckoutOrderPlaced),
		"order":   order,
	})
}

// DELETE /checkout
func (h *CheckoutHandler) Cancel(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	h.checkoutService.Cancel(userID)

	utils.SuccessResponse(c, gin.H{
		"cancelled": true,
	})
}

func (h *CheckoutHandler) writeCheckoutError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	switch {
	case errors.Is(err, checkout.ErrWrongStep):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyCheckoutInvalidStep))
	case errors.Is(err, checkout.ErrInvalidDetails), errors.Is(err, checkout.ErrInvalidProof):
		utils.BadRequestResponse(c, err.Error(), nil)
	case strings.Contains(err.Error(), "no checkout in progress"):
		utils.NotFoundResponse(c, i18n.KeyCheckoutNotInProgress)
	case strings.Contains(err.Error(), "failed to upload"):
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyCheckoutUploadFailed))
	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}
