package apis

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/supakorn-kn/peponi-admin/errors"
	"github.com/supakorn-kn/peponi-admin/idmask"
)

type maskRequest struct {
	ID     json.RawMessage `json:"id"`
	Action string          `json:"action"`
}

// rawID accepts the identifier both as a JSON string and as a JSON number.
func (r maskRequest) rawID() string {

	var text string
	if err := json.Unmarshal(r.ID, &text); err == nil {
		return strings.TrimSpace(text)
	}

	var number json.Number
	if err := json.Unmarshal(r.ID, &number); err == nil {
		return number.String()
	}

	return ""
}

// RegisterIDMaskAPI serves POST {id, action} answering {maskedID} or {unmaskedID}.
func RegisterIDMaskAPI(masker *idmask.Masker, group *gin.RouterGroup) {

	group.POST("", func(ctx *gin.Context) {

		var req maskRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			WriteErrorJSON(ctx, errors.IDMaskRequiredError.New())
			return
		}

		id := req.rawID()
		if id == "" || req.Action == "" {
			WriteErrorJSON(ctx, errors.IDMaskRequiredError.New())
			return
		}

		switch req.Action {

		case idmask.ActionMask:
			token, err := masker.MaskString(ctx.Request.Context(), id)
			if err != nil {
				WriteErrorJSON(ctx, err)
				return
			}

			ctx.JSON(http.StatusOK, gin.H{"maskedID": token})

		case idmask.ActionUnmask:
			unmasked, err := masker.Unmask(ctx.Request.Context(), id)
			if err != nil {
				WriteErrorJSON(ctx, err)
				return
			}

			ctx.JSON(http.StatusOK, gin.H{"unmaskedID": strconv.FormatInt(unmasked, 10)})

		default:
			WriteErrorJSON(ctx, errors.IDMaskActionInvalidError.New())
		}
	})
}
