package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/martijn/resultsapi/internal/api/dto"
	"github.com/martijn/resultsapi/internal/api/middleware"
	"github.com/martijn/resultsapi/internal/api/util"
	"github.com/martijn/resultsapi/internal/core/domain"
	"github.com/martijn/resultsapi/internal/core/service"
)

const (
	ResultsPath = "/api/v1/results"

	allowCollection = "GET,POST,OPTIONS"
	allowItem       = "GET,PUT,DELETE,OPTIONS"
)

// "42", "42.json" or "42.xml"
var resultRef = regexp.MustCompile(`^(\d+)(?:\.(json|xml))?$`)

type ResultHandler struct {
	resultService *service.ResultService
}

func NewResultHandler(resultService *service.ResultService) *ResultHandler {
	return &ResultHandler{
		resultService: resultService,
	}
}

// ListResults godoc
// @Summary      List results
// @Description  Sort is one of id, email, roles, result, time and is given as /api/v1/results.{format}/{sort}.
// @Tags         results
// @Produce      json,xml
// @Security     BearerAuth
// @Param        If-None-Match  header    string  false  "ETag of a cached collection"
// @Success      200            {object}  dto.ResultListResponse
// @Success      304
// @Failure      400            {object}  dto.ErrorResponse
// @Failure      401            {object}  dto.ErrorResponse
// @Failure      404            {object}  dto.ErrorResponse
// @Router       /api/v1/results [get]
func (h *ResultHandler) ListResults(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	results, err := h.resultService.List(c.Request.Context(), principal, c.Param("sort"))
	if err != nil {
		respondError(c, err)
		return
	}

	h.renderCached(c, dto.NewResultListResponse(results))
}

// CreateResult godoc
// @Summary      Create a result
// @Description  Non-admin users may only create results they own.
// @Tags         results
// @Accept       json
// @Produce      json,xml
// @Security     BearerAuth
// @Param        body  body      dto.CreateResultRequest  true  "result, time (YYYY-MM-DD HH:MM:SS) and owner email"
// @Success      201   {object}  dto.ResultEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/v1/results [post]
func (h *ResultHandler) CreateResult(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	var req dto.CreateResultRequest
	if err := bindBody(c, &req); err != nil {
		util.RenderError(c, http.StatusBadRequest, err.Error())
		return
	}

	if req.Result == nil || req.Time == nil || req.User == nil {
		util.RenderError(c, http.StatusUnprocessableEntity, service.MsgMissingData)
		return
	}

	value, err := parseValue(*req.Result)
	if err != nil {
		util.RenderError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	at, err := domain.ParseTime(*req.Time)
	if err != nil {
		util.RenderError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.resultService.Create(c.Request.Context(), principal, service.CreateResultInput{
		Value:      value,
		Time:       at,
		OwnerEmail: *req.User,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	body := dto.NewResultEnvelope(result)
	etag, err := util.ETag(body)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Header("Location", resultURL(c, result.ID))
	c.Header("ETag", util.QuoteETag(etag))
	c.Header("Vary", "Accept")
	util.Render(c, http.StatusCreated, body)
}

// GetResult godoc
// @Summary      Get a result
// @Tags         results
// @Produce      json,xml
// @Security     BearerAuth
// @Param        id             path      int     true   "result id, optionally suffixed with .json or .xml"
// @Param        If-None-Match  header    string  false  "ETag of a cached copy"
// @Success      200            {object}  dto.ResultEnvelope
// @Success      304
// @Failure      401            {object}  dto.ErrorResponse
// @Failure      403            {object}  dto.ErrorResponse
// @Failure      404            {object}  dto.ErrorResponse
// @Router       /api/v1/results/{id} [get]
func (h *ResultHandler) GetResult(c *gin.Context) {
	id, ok := parseResultRef(c)
	if !ok {
		util.RenderError(c, http.StatusNotFound, service.MsgNotFound)
		return
	}
	principal, _ := middleware.GetPrincipal(c)

	result, err := h.resultService.Get(c.Request.Context(), principal, id)
	if err != nil {
		respondError(c, err)
		return
	}

	h.renderCached(c, dto.NewResultEnvelope(result))
}

// UpdateResult godoc
// @Summary      Update a result
// @Description  Requires If-Match with the current ETag. Only result and time can change.
// @Tags         results
// @Accept       json
// @Produce      json,xml
// @Security     BearerAuth
// @Param        id        path      int                      true  "result id"
// @Param        If-Match  header    string                   true  "current ETag"
// @Param        body      body      dto.UpdateResultRequest  true  "fields to change"
// @Success      200       {object}  dto.ResultEnvelope
// @Failure      400       {object}  dto.ErrorResponse
// @Failure      401       {object}  dto.ErrorResponse
// @Failure      403       {object}  dto.ErrorResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Failure      412       {object}  dto.ErrorResponse
// @Failure      422       {object}  dto.ErrorResponse
// @Router       /api/v1/results/{id} [put]
func (h *ResultHandler) UpdateResult(c *gin.Context) {
	id, ok := parseResultRef(c)
	if !ok {
		util.RenderError(c, http.StatusNotFound, service.MsgNotFound)
		return
	}
	principal, _ := middleware.GetPrincipal(c)

	current, err := h.resultService.Load(c.Request.Context(), principal, id)
	if err != nil {
		respondError(c, err)
		return
	}

	etag, err := util.ETag(dto.NewResultEnvelope(current))
	if err != nil {
		_ = c.Error(err)
		return
	}

	ifMatch := c.GetHeader("If-Match")
	if ifMatch == "" {
		util.RenderError(c, http.StatusPreconditionFailed, "Precondition Failed: If-Match header is required")
		return
	}
	if !util.MatchesETag(ifMatch, etag) {
		util.RenderError(c, http.StatusPreconditionFailed, service.MsgPrecondition)
		return
	}

	var req dto.UpdateResultRequest
	if err := bindBody(c, &req); err != nil {
		util.RenderError(c, http.StatusBadRequest, err.Error())
		return
	}

	var in service.UpdateResultInput
	if req.Result != nil {
		value, err := parseValue(*req.Result)
		if err != nil {
			util.RenderError(c, http.StatusUnprocessableEntity, err.Error())
			return
		}
		in.Value = &value
	}
	if req.Time != nil {
		at, err := domain.ParseTime(*req.Time)
		if err != nil {
			util.RenderError(c, http.StatusBadRequest, err.Error())
			return
		}
		in.Time = &at
	}

	updated, err := h.resultService.Update(c.Request.Context(), principal, current, in)
	if err != nil {
		respondError(c, err)
		return
	}

	body := dto.NewResultEnvelope(updated)
	newETag, err := util.ETag(body)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Header("ETag", util.QuoteETag(newETag))
	c.Header("Vary", "Accept")
	util.Render(c, http.StatusOK, body)
}

// DeleteResult godoc
// @Summary      Delete a result
// @Tags         results
// @Security     BearerAuth
// @Param        id   path  int  true  "result id"
// @Success      204
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/results/{id} [delete]
func (h *ResultHandler) DeleteResult(c *gin.Context) {
	id, ok := parseResultRef(c)
	if !ok {
		util.RenderError(c, http.StatusNotFound, service.MsgNotFound)
		return
	}
	principal, _ := middleware.GetPrincipal(c)

	if err := h.resultService.Delete(c.Request.Context(), principal, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// OptionsCollection answers OPTIONS on the collection paths.
func (h *ResultHandler) OptionsCollection(c *gin.Context) {
	writeAllow(c, allowCollection)
}

// OptionsItem answers OPTIONS on a result path. Id 0 stands for the collection.
func (h *ResultHandler) OptionsItem(c *gin.Context) {
	if m := resultRef.FindStringSubmatch(c.Param("ref")); m != nil && strings.TrimLeft(m[1], "0") == "" {
		writeAllow(c, allowCollection)
		return
	}
	if _, ok := parseResultRef(c); !ok {
		util.RenderError(c, http.StatusNotFound, service.MsgNotFound)
		return
	}
	writeAllow(c, allowItem)
}

// renderCached answers 304 when If-None-Match names body's ETag, otherwise
// 200 with the body and caching headers.
func (h *ResultHandler) renderCached(c *gin.Context, body interface{}) {
	etag, err := util.ETag(body)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Header("ETag", util.QuoteETag(etag))
	c.Header("Vary", "Accept")
	if util.MatchesETag(c.GetHeader("If-None-Match"), etag) {
		c.Status(http.StatusNotModified)
		return
	}

	c.Header("Cache-Control", "private")
	util.Render(c, http.StatusOK, body)
}

func writeAllow(c *gin.Context, methods string) {
	c.Header("Allow", methods)
	c.Header("Cache-Control", "public, immutable")
	c.Status(http.StatusNoContent)
}

func parseResultRef(c *gin.Context) (int64, bool) {
	m := resultRef.FindStringSubmatch(c.Param("ref"))
	if m == nil {
		return 0, false
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// bindBody decodes a JSON body into obj. An empty body leaves obj untouched.
func bindBody(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("malformed JSON body: %w", err)
	}
	return nil
}

func parseValue(raw json.RawMessage) (int64, error) {
	var value int64
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, fmt.Errorf("result must be an integer")
	}
	return value, nil
}

func resultURL(c *gin.Context, id int64) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	} else if proto := strings.ToLower(c.GetHeader("X-Forwarded-Proto")); proto == "http" || proto == "https" {
		scheme = proto
	}
	return fmt.Sprintf("%s://%s%s/%d", scheme, c.Request.Host, ResultsPath, id)
}
