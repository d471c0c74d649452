package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"charity-merch-api/internal/dto"
	"charity-merch-api/internal/model"
	"charity-merch-api/internal/repository"
	"charity-merch-api/internal/service"
)

func respondData(c *gin.Context, code int, data any) {
	c.JSON(code, dto.Response{Success: true, Data: data})
}

func respondList(c *gin.Context, data any, count int) {
	c.JSON(http.StatusOK, dto.Response{Success: true, Data: data, Count: &count})
}

func respondMessage(c *gin.Context, code int, msg string) {
	c.JSON(code, dto.Response{Success: true, Message: msg})
}

func respondErrorMsg(c *gin.Context, code int, msg string) {
	c.JSON(code, dto.Response{Success: false, Message: msg})
}

// respondError maps business errors onto the HTTP error taxonomy:
// validation 400, auth 401/403, unknown id 404, everything else 500.
func respondError(c *gin.Context, err error) {
	switch {
	case isValidationError(err):
		respondErrorMsg(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		respondErrorMsg(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden):
		respondErrorMsg(c, http.StatusForbidden, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		respondErrorMsg(c, http.StatusNotFound, "not found")
	default:
		respondErrorMsg(c, http.StatusInternalServerError, err.Error())
	}
}

func isValidationError(err error) bool {
	for _, v := range []error{
		model.ErrNoItems,
		model.ErrInvalidQuantity,
		model.ErrNegativePrice,
		model.ErrNegativeDiscount,
		model.ErrNegativeTotal,
		service.ErrUnknownStatus,
		service.ErrInvalidTransition,
		service.ErrTerminalState,
		service.ErrUnknownProduct,
		repository.ErrEmailTaken,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
