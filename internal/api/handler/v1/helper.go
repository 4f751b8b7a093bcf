package v1

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

func parseUintParam(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%v is not a valid %v", raw, name)
	}

	return uint(id), nil
}

func parseUintQuery(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return 0, fmt.Errorf("query parameter %v is required", name)
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%v is not a valid %v", raw, name)
	}

	return uint(id), nil
}
