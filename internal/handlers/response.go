package handlers

import "github.com/gin-gonic/gin"

const (
	msgInvalidInput        = "invalid request body"
	msgInternalServerError = "internal server error"
	msgNotFound            = "record not found"
	msgUnauthorized        = "authentication required"
	msgForbidden           = "insufficient permissions"
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}
