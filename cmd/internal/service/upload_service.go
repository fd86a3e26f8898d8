package service

import (
	"context"
	"io"
	"mime/multipart"
	"strings"

	"byteapi/cmd/internal/contract"
	"byteapi/cmd/internal/infrastructure/aws/storage"
	"byteapi/cmd/internal/utils"
	"byteapi/cmd/internal/utils/apierror"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

type UploadService struct {
	S3 storage.S3Client
}

func NewUploadService(s3 storage.S3Client) *UploadService {
	return &UploadService{S3: s3}
}

// UploadImage stores an image under a random key and returns where it can
// be fetched from. The extension and the sniffed content must both be images.
func (u *UploadService) UploadImage(ctx context.Context, fileHeader *multipart.FileHeader) (*contract.UploadResponse, apierror.ErrorResponse) {
	if apierr := checkUploadFile(fileHeader); apierr != nil {
		return nil, apierr
	}

	data, apierr := readUploadFile(fileHeader)
	if apierr != nil {
		return nil, apierr
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		log.Debugf("rejected upload %q sniffed as %s", fileHeader.Filename, mtype.String())
		return nil, apierror.InvalidUploadTypeError
	}

	ext, _ := utils.CheckFileExt(fileHeader.Filename, contract.ValidUploadFileTypes)
	key, err := u.S3.UploadFile(ctx, data, uuid.NewString()+ext, mtype.String())
	if err != nil {
		log.Errorf("failed to upload file: %v", err)
		return nil, apierror.NewServerError("Failed to upload file")
	}

	return &contract.UploadResponse{
		Key: key,
		URL: u.S3.PublicURL(key),
	}, nil
}

func checkUploadFile(fileHeader *multipart.FileHeader) apierror.ErrorResponse {
	if fileHeader.Size > contract.MaxUploadFileSizeBytes {
		return apierror.UploadTooLargeError
	}

	if strings.TrimSpace(fileHeader.Filename) == "" {
		return apierror.InvalidUploadTypeError
	}

	if _, ok := utils.CheckFileExt(fileHeader.Filename, contract.ValidUploadFileTypes); !ok {
		return apierror.InvalidUploadTypeError
	}
	return nil
}

func readUploadFile(fileHeader *multipart.FileHeader) ([]byte, apierror.ErrorResponse) {
	file, err := fileHeader.Open()
	if err != nil {
		log.Errorf("failed to open file: %v", err)
		return nil, apierror.InternalServerError
	}
	defer file.Close()

	// Size in the header is client supplied, never read past the cap.
	data, err := io.ReadAll(io.LimitReader(file, contract.MaxUploadFileSizeBytes+1))
	if err != nil {
		log.Errorf("failed to read file: %v", err)
		return nil, apierror.InternalServerError
	}

	if len(data) > contract.MaxUploadFileSizeBytes {
		return nil, apierror.UploadTooLargeError
	}
	return data, nil
}
