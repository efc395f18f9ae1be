package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/martijn/resultsapi/internal/api/dto"
	"github.com/martijn/resultsapi/internal/core/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Authorize godoc
// @Summary      Exchange credentials for an authorization code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.AuthorizeRequest  true  "email and password"
// @Success      200   {object}  dto.AuthorizeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /auth/authorize [post]
func (h *AuthHandler) Authorize(c *gin.Context) {
	var req dto.AuthorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad Request",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	authCode, err := h.authService.AuthorizeUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthorizeResponse{
		Code: authCode.Code,
	})
}

// Token godoc
// @Summary      Issue an access token
// @Description  grant_type "authorization_code" takes code, "password" takes username and password.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.TokenRequest  true  "grant"
// @Success      200   {object}  dto.TokenResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /auth/token [post]
func (h *AuthHandler) Token(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad Request",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	var token string
	var err error

	switch req.GrantType {
	case "authorization_code":
		if req.Code == "" {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Bad Request",
				Message: "code is required for authorization_code grant type",
				Code:    http.StatusBadRequest,
			})
			return
		}

		token, err = h.authService.ExchangeAuthCode(c.Request.Context(), req.Code)

	case "password":
		if req.Username == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Bad Request",
				Message: "username and password are required for password grant type",
				Code:    http.StatusBadRequest,
			})
			return
		}

		token, err = h.authService.AuthenticatePassword(c.Request.Context(), req.Username, req.Password)

	default:
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid grant_type. Must be 'authorization_code' or 'password'",
			Code:    http.StatusBadRequest,
		})
		return
	}

	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(service.TokenExpiration.Seconds()),
	})
}
