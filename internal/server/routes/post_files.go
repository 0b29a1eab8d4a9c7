package routes

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkoukk/tiktoken-go"

	"github.com/joeyoneill/CapHackathon2024-Backend-1/internal/ingest"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/internal/server/middleware"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/extract"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/logger"
)

// UploadFilesHandler ingests uploaded files (multipart/form-data). Each
// file runs through the full pipeline independently; one failing file does
// not stop the others.
func UploadFilesHandler(c echo.Context) error {
	type fileResult struct {
		FileName string `json:"file_name"`
		State    string `json:"state"`
		Error    string `json:"error,omitempty"`
	}

	type uploadResponse struct {
		Message string       `json:"message"`
		Files   []fileResult `json:"files,omitempty"`
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, uploadResponse{
			Message: "Invalid request body",
		})
	}
	uploads := form.File["files"]
	if len(uploads) == 0 {
		return c.JSON(http.StatusBadRequest, uploadResponse{
			Message: "No files provided",
		})
	}

	user := c.(*middleware.AppContext).User
	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	encoder, err := tiktoken.GetEncoding("o200k_base")
	if err != nil {
		logger.Warn("Failed to load token encoder", "err", err)
	}

	// The first failing file aborts the request; earlier files stay
	// ingested and are reported in the response.
	results := make([]fileResult, 0, len(uploads))
	for _, file := range uploads {
		src, err := file.Open()
		if err != nil {
			results = append(results, fileResult{
				FileName: file.Filename,
				State:    string(ingest.StateStarted),
				Error:    "could not open file",
			})
			return c.JSON(http.StatusBadRequest, uploadResponse{
				Message: fmt.Sprintf("Could not open %s", file.Filename),
				Files:   results,
			})
		}
		content, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			results = append(results, fileResult{
				FileName: file.Filename,
				State:    string(ingest.StateStarted),
				Error:    "could not read file",
			})
			return c.JSON(http.StatusBadRequest, uploadResponse{
				Message: fmt.Sprintf("Could not read %s", file.Filename),
				Files:   results,
			})
		}

		if encoder != nil {
			logger.Info(
				"File received",
				"file", file.Filename,
				"bytes", len(content),
				"tokens", len(encoder.Encode(string(content), nil, nil)),
			)
		}

		state, err := app.Ingest.Run(ctx, ingest.Params{
			Email:     user.Email,
			Container: user.Container,
			FileName:  file.Filename,
			Content:   content,
		})
		result := fileResult{
			FileName: file.Filename,
			State:    string(state),
		}
		if err != nil {
			if errors.Is(err, extract.ErrUnsupportedType) {
				result.Error = "unsupported file type"
				results = append(results, result)
				return c.JSON(http.StatusBadRequest, uploadResponse{
					Message: fmt.Sprintf("Unsupported file type: %s", file.Filename),
					Files:   results,
				})
			}
			logger.Error("Failed to ingest file", "file", file.Filename, "err", err)
			result.Error = "ingestion failed"
			results = append(results, result)
			return c.JSON(http.StatusInternalServerError, uploadResponse{
				Message: fmt.Sprintf("Failed to ingest %s", file.Filename),
				Files:   results,
			})
		}
		results = append(results, result)
	}

	return c.JSON(http.StatusOK, uploadResponse{
		Message: "Files ingested successfully",
		Files:   results,
	})
}
