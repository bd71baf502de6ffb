package utils

import (
	"context"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// AssetUploader sends a binary to the external asset host and returns a
// secure URL. Swappable so tests never hit the network.
type AssetUploader interface {
	Upload(file interface{}, publicID string, folder string) (string, error)
}

// Uploader is the process-wide asset uploader.
var Uploader AssetUploader = cloudinaryUploader{}

type cloudinaryUploader struct{}

func initCloudinary() (*cloudinary.Cloudinary, error) {
	err := godotenv.Load()
	if err != nil {
		logrus.Warn("Error loading .env file. Using environment variables directly.")
	}

	return cloudinary.NewFromParams(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"))
}

func (cloudinaryUploader) Upload(file interface{}, publicID string, folder string) (string, error) {
	cld, err := initCloudinary()
	if err != nil {
		return "", err
	}

	ctx := context.Background()
	resp, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:     publicID,
		Folder:       folder,
		UploadPreset: os.Getenv("CLOUDINARY_UPLOAD_PRESET"),
	})
	if err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}

// UploadAsset uploads through the configured Uploader.
func UploadAsset(file interface{}, publicID string, folder string) (string, error) {
	return Uploader.Upload(file, publicID, folder)
}
