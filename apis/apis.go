package apis

import (
	"github.com/gin-gonic/gin"
	"github.com/supakorn-kn/peponi-admin/errors"
	"github.com/supakorn-kn/peponi-admin/models"
	"github.com/supakorn-kn/peponi-admin/objects"
)

type CRUDResponse struct {
	Result any              `json:"result,omitempty"`
	Error  errors.BaseError `json:"error,omitempty"`
}

type CrudAPI[Item objects.Record] interface {
	Insert(ctx *gin.Context) (Item, error)
	ReadOne(itemID string, ctx *gin.Context) (*Item, error)
	Read(ctx *gin.Context) (*models.PaginationData[Item], error)
	Update(itemID string, ctx *gin.Context) error
	Delete(itemID string, ctx *gin.Context) error
	SetStatus(itemID string, ctx *gin.Context) error
}

var OKResponse = CRUDResponse{Result: map[string]any{"status": "OK"}}
