package server

import (
	"net/http"

	"erc20indexer/display"
	"erc20indexer/indexer"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type Handler struct {
	session   *indexer.Session
	connector indexer.Connector
}

func NewHandler(session *indexer.Session, connector indexer.Connector) *Handler {
	return &Handler{session: session, connector: connector}
}

type stateResponse struct {
	Phase            string        `json:"phase"`
	Busy             bool          `json:"busy"`
	ConnectedAddress string        `json:"connectedAddress,omitempty"`
	Address          string        `json:"address,omitempty"`
	Pending          int           `json:"pending,omitempty"`
	Queried          bool          `json:"queried"`
	Error            string        `json:"error,omitempty"`
	Tokens           []display.Row `json:"tokens"`
}

func newStateResponse(st indexer.State) stateResponse {
	return stateResponse{
		Phase:            st.Phase.String(),
		Busy:             st.Busy,
		ConnectedAddress: st.ConnectedAddress,
		Address:          st.Address,
		Pending:          st.Pending,
		Queried:          st.Queried,
		Error:            indexer.UserMessage(st.Err),
		Tokens:           display.Rows(st.Results),
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, indexer.ErrInvalidAddress):
		return http.StatusBadRequest
	case errors.Is(err, indexer.ErrNoBalances):
		return http.StatusNotFound
	case errors.Is(err, indexer.ErrProviderNotFound):
		return http.StatusPreconditionFailed
	default:
		return http.StatusBadGateway
	}
}

// State returns the current snapshot
// GET /api/v1/state
func (h *Handler) State(c *gin.Context) {
	c.JSON(http.StatusOK, newStateResponse(h.session.State()))
}

// Connect connects the wallet and queries its balances
// POST /api/v1/connect
func (h *Handler) Connect(c *gin.Context) {
	if err := h.session.Connect(c.Request.Context(), h.connector); err != nil {
		c.JSON(statusFor(err), gin.H{"error": indexer.UserMessage(err)})
		return
	}
	c.JSON(http.StatusOK, newStateResponse(h.session.State()))
}

// Balances runs a query for the address and publishes it to the session
// POST /api/v1/balances/:address
func (h *Handler) Balances(c *gin.Context) {
	address := c.Param("address")

	holdings, err := h.session.Query(c.Request.Context(), address)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": indexer.UserMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"address": h.session.State().Address,
		"count":   len(holdings),
		"tokens":  display.Rows(holdings),
	})
}

// Page renders the current snapshot
// GET /
func (h *Handler) Page(c *gin.Context) {
	c.HTML(http.StatusOK, pageTemplateName, newStateResponse(h.session.State()))
}

// ConnectForm POST /connect
func (h *Handler) ConnectForm(c *gin.Context) {
	// the failure is kept in the session state and shown by the page
	_ = h.session.Connect(c.Request.Context(), h.connector)
	c.Redirect(http.StatusSeeOther, "/")
}

// QueryForm POST /query
func (h *Handler) QueryForm(c *gin.Context) {
	_, _ = h.session.Query(c.Request.Context(), c.PostForm("address"))
	c.Redirect(http.StatusSeeOther, "/")
}
