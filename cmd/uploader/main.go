// The uploader is a small companion CLI that pushes a video, and optionally
// its thumbnail and label, into the bucket the backend lists. It is the
// producer of the naming convention the aggregator relies on: every object
// is stored under the source file's base name plus extension, so related
// files correlate when their base names match.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
	"vidgate/internal/config"
	"vidgate/internal/storage"
)

func main() {
	app := &cli.Command{
		Name:      "uploader",
		Usage:     "Upload a video (with optional thumbnail and label) to the object store",
		ArgsUsage: "<video-file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "endpoint",
				Usage:   "object store endpoint",
				Value:   "localhost:9000",
				Sources: cli.EnvVars("STORAGE_ENDPOINT"),
			},
			&cli.StringFlag{
				Name:    "access-key",
				Usage:   "object store access key",
				Sources: cli.EnvVars("STORAGE_ACCESS_KEY_ID"),
			},
			&cli.StringFlag{
				Name:    "secret-key",
				Usage:   "object store secret key",
				Sources: cli.EnvVars("STORAGE_SECRET_ACCESS_KEY"),
			},
			&cli.StringFlag{
				Name:    "bucket",
				Usage:   "target bucket",
				Value:   "streaming-site-video-data",
				Sources: cli.EnvVars("STORAGE_BUCKET_NAME"),
			},
			&cli.StringFlag{
				Name:    "region",
				Usage:   "bucket region",
				Value:   "us-east-1",
				Sources: cli.EnvVars("STORAGE_REGION"),
			},
			&cli.BoolFlag{
				Name:    "ssl",
				Usage:   "use TLS for the store connection",
				Sources: cli.EnvVars("STORAGE_USE_SSL"),
			},
			&cli.StringFlag{
				Name:  "thumbnail",
				Usage: "thumbnail image to upload alongside the video",
			},
			&cli.StringFlag{
				Name:  "label",
				Usage: "display label, stored as a .txt object next to the video",
			},
		},
		Action: upload,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func upload(ctx context.Context, cmd *cli.Command) error {
	videoPath := cmd.Args().First()
	if videoPath == "" {
		return errors.New("a video file argument is required")
	}

	client, err := storage.New(config.StorageConfig{
		Endpoint:        cmd.String("endpoint"),
		AccessKeyID:     cmd.String("access-key"),
		SecretAccessKey: cmd.String("secret-key"),
		BucketName:      cmd.String("bucket"),
		Region:          cmd.String("region"),
		UseSSL:          cmd.Bool("ssl"),
	})
	if err != nil {
		return err
	}

	videoKey := filepath.Base(videoPath)
	baseName := strings.TrimSuffix(videoKey, filepath.Ext(videoKey))

	fmt.Printf("Uploading %s as %s...\n", videoPath, videoKey)
	if err := client.UploadFile(ctx, videoKey, videoPath); err != nil {
		return fmt.Errorf("video upload failed: %w", err)
	}

	if thumbPath := cmd.String("thumbnail"); thumbPath != "" {
		// The thumbnail key takes the video's base name so the two group
		thumbKey := baseName + strings.ToLower(filepath.Ext(thumbPath))
		fmt.Printf("Uploading %s as %s...\n", thumbPath, thumbKey)
		if err := client.UploadFile(ctx, thumbKey, thumbPath); err != nil {
			return fmt.Errorf("thumbnail upload failed: %w", err)
		}
	}

	if label := cmd.String("label"); label != "" {
		labelKey := baseName + ".txt"
		fmt.Printf("Uploading label as %s...\n", labelKey)
		reader := strings.NewReader(label)
		if err := client.Upload(ctx, labelKey, reader, int64(reader.Len()), "text/plain"); err != nil {
			return fmt.Errorf("label upload failed: %w", err)
		}
	}

	fmt.Println("Upload complete.")
	return nil
}
