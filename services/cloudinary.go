package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"taja-backend/utils"
)

// CloudinaryService uploads profile images to Cloudinary and returns their
// hosted URLs.
type CloudinaryService struct {
	client *cloudinary.Cloudinary
	folder string
}

// UploadResult is the subset of the upload response the workflow consumes.
type UploadResult struct {
	SecureURL string
	PublicID  string
}

// NewCloudinaryService configures the client from CLOUDINARY_URL
func NewCloudinaryService() (*CloudinaryService, error) {
	client, err := cloudinary.New()
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %w", err)
	}
	return &CloudinaryService{
		client: client,
		folder: fmt.Sprintf("%s/users", strings.ToLower(utils.ProjectName())),
	}, nil
}

// UploadImage uploads a local file and returns its durable URL
func (s *CloudinaryService) UploadImage(ctx context.Context, localPath string) (*UploadResult, error) {
	resp, err := s.client.Upload.Upload(ctx, localPath, uploader.UploadParams{
		Folder:       s.folder,
		ResourceType: "image",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}
	return &UploadResult{
		SecureURL: resp.SecureURL,
		PublicID:  resp.PublicID,
	}, nil
}
