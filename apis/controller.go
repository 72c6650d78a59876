package apis

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/supakorn-kn/peponi-admin/errors"
	"github.com/supakorn-kn/peponi-admin/objects"
)

func RegisterCrudAPI[Item objects.Record](api CrudAPI[Item], group *gin.RouterGroup) {

	group.POST("", func(ctx *gin.Context) {

		item, err := api.Insert(ctx)
		if err != nil {
			WriteErrorJSON(ctx, err)
			return
		}

		ctx.JSON(http.StatusCreated, CRUDResponse{Result: item})
	})

	group.GET(":id", func(ctx *gin.Context) {

		itemID := ctx.Param("id")

		item, err := api.ReadOne(itemID, ctx)
		if err != nil {
			WriteErrorJSON(ctx, err)
			return
		}

		ctx.JSON(http.StatusOK, CRUDResponse{Result: item})
	})

	group.GET("", func(ctx *gin.Context) {

		paginateResult, err := api.Read(ctx)

		if err != nil {
			WriteErrorJSON(ctx, err)
			return
		}

		ctx.JSON(http.StatusOK, CRUDResponse{Result: paginateResult})
	})

	group.PUT(":id", func(ctx *gin.Context) {

		err := api.Update(ctx.Param("id"), ctx)
		if err != nil {
			WriteErrorJSON(ctx, err)
			return
		}

		ctx.JSON(http.StatusNoContent, nil)
	})

	group.PUT(":id/status", func(ctx *gin.Context) {

		err := api.SetStatus(ctx.Param("id"), ctx)
		if err != nil {
			WriteErrorJSON(ctx, err)
			return
		}

		ctx.JSON(http.StatusOK, OKResponse)
	})

	group.DELETE(":id", func(ctx *gin.Context) {

		err := api.Delete(ctx.Param("id"), ctx)
		if err != nil {
			WriteErrorJSON(ctx, err)
			return
		}

		ctx.JSON(http.StatusNoContent, nil)
	})
}

// StatusCode maps a coded error to the HTTP status it is answered with.
func StatusCode(err error) int {

	assertedError, ok := errors.TryAssertError(err)
	if !ok {
		return http.StatusInternalServerError
	}

	switch assertedError.Code {
	case errors.ObjectIDNotFoundErrorCode, errors.EntityNotFoundErrorCode, errors.IDMaskTokenNotFoundErrorCode:
		return http.StatusNotFound
	case errors.DuplicatedObjectIDErrorCode, errors.DataAlreadyInUsedErrorCode:
		return http.StatusConflict
	case errors.UnauthorizedErrorCode:
		return http.StatusUnauthorized
	case errors.TooManyRequestsErrorCode:
		return http.StatusTooManyRequests
	case errors.BackendRequestFailedErrorCode, errors.BackendResponseInvalidCode:
		return http.StatusBadGateway
	case errors.UnknownErrorCode, errors.IDMaskFailedErrorCode:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func WriteErrorJSON(ctx *gin.Context, err error) {

	assertedError, ok := errors.TryAssertError(err)
	if !ok {

		slog.Error("unexpected error", "path", ctx.Request.URL.Path, "error", err)
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, CRUDResponse{Error: errors.UnknownError.New(err)})
		return
	}

	ctx.AbortWithStatusJSON(StatusCode(assertedError), CRUDResponse{Error: assertedError})
}
