package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"bsn-backend/internal/dto"
	"bsn-backend/internal/services"
	"bsn-backend/pkg/apperrors"
	"bsn-backend/pkg/utils"
)

// RecordController is the single generic handler behind every /data/:table
// route. It owns no table knowledge itself; the services reject anything
// outside the registry before the store is touched.
type RecordController struct {
	recordService *services.RecordService
	bulkService   *services.BulkService
	logger        *zap.Logger
}

func NewRecordController(recordService *services.RecordService, bulkService *services.BulkService, logger *zap.Logger) *RecordController {
	return &RecordController{
		recordService: recordService,
		bulkService:   bulkService,
		logger:        logger,
	}
}

func (c *RecordController) List(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	identity, err := utils.GetIdentityFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	records, err := c.recordService.List(
		reqCtx,
		identity,
		ctx.Param("table"),
		ctx.QueryParam("filter"),
		utils.ParseSortParam(ctx.QueryParam("sort")),
		utils.ParseLimitParam(ctx.QueryParam("limit")),
	)
	if err != nil {
		c.logger.Error("list failed", zap.String("table", ctx.Param("table")), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, records, "records fetched", http.StatusOK)
}

func (c *RecordController) Find(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	identity, err := utils.GetIdentityFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	record, err := c.recordService.Get(reqCtx, identity, ctx.Param("table"), ctx.Param("id"))
	if err != nil {
		c.logger.Error("find failed", zap.String("table", ctx.Param("table")), zap.String("id", ctx.Param("id")), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, record, "record fetched", http.StatusOK)
}

func (c *RecordController) Create(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	identity, err := utils.GetIdentityFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var fields map[string]interface{}
	if err := ctx.Bind(&fields); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("request body must be a JSON object"), c.logger)
	}

	record, err := c.recordService.Create(reqCtx, identity, ctx.Param("table"), fields)
	if err != nil {
		c.logger.Error("create failed", zap.String("table", ctx.Param("table")), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, record, "record created", http.StatusCreated)
}

func (c *RecordController) Update(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	identity, err := utils.GetIdentityFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var fields map[string]interface{}
	if err := ctx.Bind(&fields); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("request body must be a JSON object"), c.logger)
	}

	record, err := c.recordService.Update(reqCtx, identity, ctx.Param("table"), ctx.Param("id"), fields)
	if err != nil {
		c.logger.Error("update failed", zap.String("table", ctx.Param("table")), zap.String("id", ctx.Param("id")), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, record, "record updated", http.StatusOK)
}

func (c *RecordController) Delete(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	identity, err := utils.GetIdentityFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.recordService.Delete(reqCtx, identity, ctx.Param("table"), ctx.Param("id")); err != nil {
		c.logger.Error("delete failed", zap.String("table", ctx.Param("table")), zap.String("id", ctx.Param("id")), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "record deleted", http.StatusOK)
}

// Bulk always answers 200 on a processed request; per-item failures are data
// in the result body, not an error status.
func (c *RecordController) Bulk(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	identity, err := utils.GetIdentityFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var req dto.BulkRequestDTO
	if err := ctx.Bind(&req); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("invalid bulk request body"), c.logger)
	}
	if err := ctx.Validate(&req); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	result, err := c.bulkService.Run(reqCtx, identity, ctx.Param("table"), req)
	if err != nil {
		c.logger.Error("bulk operation failed",
			zap.String("table", ctx.Param("table")),
			zap.String("operation", req.Operation),
			zap.Error(err),
		)
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, result, "bulk operation processed", http.StatusOK)
}
