package services

import (
	"context"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// UploadImages pushes the uploaded files to Cloudinary and returns their
// secure URLs.
func UploadImages(ctx context.Context, cld *cloudinary.Cloudinary, files []*multipart.FileHeader, folder string) ([]string, error) {
	var urls []string
	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			return nil, err
		}

		resp, err := cld.Upload.Upload(ctx, src, uploader.UploadParams{Folder: folder})
		src.Close()
		if err != nil {
			return nil, err
		}
		urls = append(urls, resp.SecureURL)
	}
	return urls, nil
}
