package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/MiniCooper40/ecommerce-website/placeholder"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	logger, err := newLogger(params.jsonLogs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %s\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, params, logger); err != nil {
		logger.Error("seeding failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, params commandParams, logger *zap.Logger) error {
	outputDir, err := filepath.Abs(params.outputDir)
	if err != nil {
		return err
	}
	specs := placeholder.Catalog()

	renderer := placeholder.NewRenderer(placeholder.DefaultFontFiles())
	logger.Info("generating placeholder product images",
		zap.Int("count", len(specs)), zap.String("font", renderer.FontName()))

	count, err := placeholder.Generate(ctx, outputDir, specs, renderer,
		func(done, total int, filename string) {
			logger.Info(fmt.Sprintf("[%d/%d] created %s", done, total, filename))
		})
	if err != nil {
		return err
	}
	logger.Info("generated placeholder images", zap.Int("count", count), zap.String("location", outputDir))

	if params.upload.Endpoint == "" {
		logger.Info("next steps",
			zap.String("review", outputDir),
			zap.String("replace", "replace with actual product images if desired"),
			zap.String("restart", "docker-compose restart minio-setup"))
		return nil
	}

	uploader, err := placeholder.NewUploader(params.upload)
	if err != nil {
		return err
	}
	if err := uploader.EnsureBucket(ctx); err != nil {
		return err
	}
	uploaded, err := uploader.UploadDir(ctx, outputDir, specs,
		func(done, total int, filename string) {
			logger.Debug("uploaded image", zap.String("object", uploader.ObjectName(filename)))
		})
	if err != nil {
		return err
	}
	logger.Info("uploaded placeholder images",
		zap.Int("count", uploaded),
		zap.String("endpoint", params.upload.Endpoint),
		zap.String("bucket", params.upload.Bucket))
	return nil
}

func newLogger(jsonLogs bool) (*zap.Logger, error) {
	if jsonLogs {
		return zap.NewProduction()
	}
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
	config.DisableStacktrace = true
	return config.Build()
}
