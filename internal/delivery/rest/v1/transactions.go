package v1

import (
	"net/http"

	"kairopay/internal/chains"
	"kairopay/internal/domain"
	"kairopay/internal/repository"

	"github.com/gin-gonic/gin"
)

// GET /apps/:app_id/transactions
func (h *Handler) transactionList(c *gin.Context) {
	auth := authContext(c)
	limit, offset := parsePagination(c)

	filter := repository.TxFilter{
		AppID:  auth.AppID,
		Chain:  c.Query("chain"),
		Asset:  c.Query("asset"),
		Limit:  limit,
		Offset: offset,
	}
	if raw := c.Query("status"); raw != "" {
		status, ok := domain.StrToTxStatus(raw)
		if !ok {
			respondBadRequest(c, "unknown status filter")
			return
		}
		filter.Status = &status
	}

	transactions, total, volume, err := h.services.Orders.ListTransactions(h.db, filter)
	if err != nil {
		respondErr(c, err)
		return
	}

	respondData(c, http.StatusOK, responseTxList{
		Transactions:      transactions,
		TotalTransactions: total,
		TotalVolumeUSD:    volume.Round(2),
		Limit:             limit,
		Offset:            offset,
		HasMore:           int64(offset+limit) < total,
	})
}

// GET /apps/:app_id/balances
func (h *Handler) appBalances(c *gin.Context) {
	auth := authContext(c)

	balances, err := h.services.Stats.AppBalances(h.db, auth.AppID)
	if err != nil {
		respondErr(c, err)
		return
	}

	respondData(c, http.StatusOK, balances)
}

// validateChainFields applies per-chain format checks to a submitted
// transaction. Unknown chains pass.
func (h *Handler) validateChainFields(chain, txHash, fromAddr, toAddr string) error {
	if err := chains.ValidateTxHash(chain, txHash); err != nil {
		return err
	}
	if fromAddr != "" {
		if err := chains.ValidateAddress(chain, fromAddr); err != nil {
			return err
		}
	}
	if toAddr != "" {
		if err := chains.ValidateAddress(chain, toAddr); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) initTransactionRoutes(g *gin.RouterGroup) {
	g.GET("/apps/:app_id/transactions", h.authMiddleware(), h.transactionList)
	g.GET("/apps/:app_id/balances", h.authMiddleware(), h.appBalances)
}
