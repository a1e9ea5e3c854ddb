package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetIDParam parses a positive numeric path parameter.
func GetIDParam(ctx *gin.Context, name, label string) (uint, error) {
	raw := ctx.Param(name)

	if raw == "" {
		return 0, fmt.Errorf("%s not found", label)
	}

	id, err := strconv.ParseUint(raw, 10, 32)

	if err != nil || id == 0 {
		return 0, fmt.Errorf("Invalid %s", label)
	}

	return uint(id), nil
}

func GetProjectID(ctx *gin.Context) (uint, error) {
	return GetIDParam(ctx, "id", "Project ID")
}

func GetThreadID(ctx *gin.Context) (uint, error) {
	return GetIDParam(ctx, "id", "Thread ID")
}

// GetProjectThreadID reads both ids of an assignment route.
func GetProjectThreadID(ctx *gin.Context) (uint, uint, error) {
	projectID, err := GetProjectID(ctx)

	if err != nil {
		return 0, 0, err
	}

	threadID, err := GetIDParam(ctx, "thread_id", "Thread ID")

	if err != nil {
		return 0, 0, err
	}

	return projectID, threadID, nil
}
