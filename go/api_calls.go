package storefrontserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	callsmapper "github.com/Apurer/go-gin-storefront/internal/domains/calls/adapters/http/mapper"
	callstypes "github.com/Apurer/go-gin-storefront/internal/domains/calls/application/types"
	callsports "github.com/Apurer/go-gin-storefront/internal/domains/calls/ports"
)

// CallAPI exposes outbound calling and conversation transcripts.
type CallAPI struct {
	service callsports.Service
}

// NewCallAPI creates a CallAPI backed by the provided service.
func NewCallAPI(service callsports.Service) CallAPI {
	return CallAPI{service: service}
}

// Post /api/call
// Asks the voice service to dial a customer (admin only)
func (api *CallAPI) TriggerCall(c *gin.Context) {
	var payload callsmapper.TriggerCall
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	call, err := api.service.TriggerCall(c.Request.Context(), callstypes.TriggerCallInput{Phone: payload.Phone})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Call triggered", "call": callsmapper.FromCall(call)})
}

// Get /api/calls
func (api *CallAPI) RecentCalls(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondBadRequest(c, err)
			return
		}
		limit = parsed
	}
	calls, err := api.service.RecentCalls(c.Request.Context(), callstypes.RecentCallsInput{Limit: limit})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, callsmapper.FromCalls(calls))
}

// Post /api/save-conversation
// Receives a transcript from the voice service
func (api *CallAPI) SaveConversation(c *gin.Context) {
	var payload callsmapper.Conversation
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	saved, err := api.service.SaveConversation(c.Request.Context(), callsmapper.ToSaveInput(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Conversation saved", "id": saved.ID})
}

// Get /api/conversations
func (api *CallAPI) ListConversations(c *gin.Context) {
	list, err := api.service.ListConversations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, callsmapper.FromConversations(list))
}
