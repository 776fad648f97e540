// Package ledgerdelivery manages delivery layer of the ledger.
package ledgerdelivery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/lendbook/internal/domain"
	"github.com/go-petr/lendbook/internal/sharelink"
	"github.com/go-petr/lendbook/pkg/errorspkg"
	"github.com/go-petr/lendbook/pkg/web"
)

// Service provides service layer interface needed by ledger delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package ledgerdelivery
type Service interface {
	Accounts(ctx context.Context) []domain.Account
	AddTransaction(ctx context.Context, arg domain.CreateTransactionParams) (domain.Account, error)
	AddPayment(ctx context.Context, accountID string, arg domain.CreatePaymentParams) (domain.Account, error)
	DeleteTransaction(ctx context.Context, accountID, transactionID string) error
	DeleteAccount(ctx context.Context, accountID string) error
	Export(ctx context.Context) ([]byte, error)
	Import(ctx context.Context, blob []byte) error
	MergeShared(ctx context.Context, account domain.Account) (domain.Account, error)
}

// Handler facilitates ledger delivery layer logic.
type Handler struct {
	service Service
	appURL  string
}

// NewHandler returns ledger handler.
func NewHandler(ls Service, appURL string) Handler {
	return Handler{service: ls, appURL: appURL}
}

// accountView is an account enriched with its derived balance.
type accountView struct {
	domain.Account
	Balance string `json:"balance"`
}

func viewOf(a domain.Account) accountView {
	return accountView{Account: a, Balance: a.Balance().String()}
}

type dataAccount struct {
	Account accountView `json:"account"`
}
type response struct {
	Data dataAccount `json:"data,omitempty"`
}

type dataAccounts struct {
	Accounts []accountView `json:"accounts"`
}
type responseAccounts struct {
	Data dataAccounts `json:"data,omitempty"`
}

// List handles http request to list all accounts with balances.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	accounts := h.service.Accounts(ctx)

	views := make([]accountView, len(accounts))
	for i, a := range accounts {
		views[i] = viewOf(a)
	}

	gctx.JSON(http.StatusOK, responseAccounts{Data: dataAccounts{views}})
}

type createTransactionRequest struct {
	Amount string `json:"amount" binding:"required,numeric"`
	Party  string `json:"party" binding:"required"`
	Type   string `json:"type" binding:"required,txtype"`
	Date   string `json:"date" binding:"required,datetime=2006-01-02"`
}

// CreateTransaction handles http request to record a loan or a borrowing.
func (h *Handler) CreateTransaction(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req createTransactionRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	account, err := h.service.AddTransaction(ctx, domain.CreateTransactionParams{
		Amount: req.Amount,
		Party:  req.Party,
		Type:   req.Type,
		Date:   req.Date,
	})
	if err != nil {
		switch err {
		case domain.ErrInvalidAmount, domain.ErrInvalidTransactionType, domain.ErrInvalidParty:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, response{Data: dataAccount{viewOf(account)}})
}

type accountURI struct {
	ID string `uri:"id" binding:"required"`
}

type createPaymentRequest struct {
	Amount string `json:"amount" binding:"required,numeric"`
	Date   string `json:"date" binding:"required,datetime=2006-01-02"`
}

// CreatePayment handles http request to record a payment against an account.
func (h *Handler) CreatePayment(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var uri accountURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	var req createPaymentRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	account, err := h.service.AddPayment(ctx, uri.ID, domain.CreatePaymentParams{
		Amount: req.Amount,
		Date:   req.Date,
	})
	if err != nil {
		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrInvalidAmount:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, response{Data: dataAccount{viewOf(account)}})
}

// DeleteAccount handles http request to delete an account and its history.
func (h *Handler) DeleteAccount(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var uri accountURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	if err := h.service.DeleteAccount(ctx, uri.ID); err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.Status(http.StatusNoContent)
}

type transactionURI struct {
	ID            string `uri:"id" binding:"required"`
	TransactionID string `uri:"tid" binding:"required"`
}

// DeleteTransaction handles http request to delete a single transaction.
func (h *Handler) DeleteTransaction(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var uri transactionURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	if err := h.service.DeleteTransaction(ctx, uri.ID, uri.TransactionID); err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.Status(http.StatusNoContent)
}

// Export handles http request to download the full ledger as a JSON backup.
func (h *Handler) Export(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	blob, err := h.service.Export(ctx)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	filename := fmt.Sprintf("lendbook-backup-%s.json", time.Now().Format("2006-01-02"))
	gctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	gctx.Data(http.StatusOK, "application/json", blob)
}

// Import handles http request to replace the ledger with an uploaded backup.
func (h *Handler) Import(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	blob, err := io.ReadAll(gctx.Request.Body)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	if err := h.service.Import(ctx, blob); err != nil {
		if err == domain.ErrInvalidLedger {
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	accounts := h.service.Accounts(ctx)

	views := make([]accountView, len(accounts))
	for i, a := range accounts {
		views[i] = viewOf(a)
	}

	gctx.JSON(http.StatusOK, responseAccounts{Data: dataAccounts{views}})
}

type dataShare struct {
	ShareURL string `json:"share_url"`
	Payload  string `json:"payload"`
}
type responseShare struct {
	Data dataShare `json:"data,omitempty"`
}

// Share handles http request to build a share link for one account.
func (h *Handler) Share(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var uri accountURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	for _, account := range h.service.Accounts(ctx) {
		if account.ID != uri.ID {
			continue
		}

		payload, err := sharelink.Encode(account)
		if err != nil {
			l.Error().Err(err).Send()
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

			return
		}

		url, err := sharelink.URL(h.appURL, account)
		if err != nil {
			l.Error().Err(err).Send()
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

			return
		}

		gctx.JSON(http.StatusOK, responseShare{Data: dataShare{ShareURL: url, Payload: payload}})

		return
	}

	gctx.JSON(http.StatusNotFound, web.Error(domain.ErrAccountNotFound))
}

type importSharedRequest struct {
	Payload string `json:"payload"`
	URL     string `json:"url"`
}

// ImportShared handles http request to merge a shared account payload.
func (h *Handler) ImportShared(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req importSharedRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	link := req.Payload
	if link == "" {
		link = req.URL
	}

	if link == "" {
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidSharedAccount))
		return
	}

	account, err := sharelink.FromURL(link)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	merged, err := h.service.MergeShared(ctx, account)
	if err != nil {
		if err == domain.ErrInvalidSharedAccount {
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, response{Data: dataAccount{viewOf(merged)}})
}
