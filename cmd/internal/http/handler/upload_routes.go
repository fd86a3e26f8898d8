package handler

import (
	"context"
	"mime/multipart"
	"net/http"

	"byteapi/cmd/internal/contract"
	"byteapi/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type UploadService interface {
	UploadImage(ctx context.Context, fileHeader *multipart.FileHeader) (*contract.UploadResponse, apierror.ErrorResponse)
}

type DefaultUploadRoute struct {
	UploadService UploadService
}

func NewUploadRoute(uploadService UploadService) *DefaultUploadRoute {
	return &DefaultUploadRoute{UploadService: uploadService}
}

func (u *DefaultUploadRoute) UploadImage(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MissingUploadFileError)
	}

	resp, apierr := u.UploadService.UploadImage(c.Request().Context(), fileHeader)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, contract.Data(resp))
}
