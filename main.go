// main.go
package main

import (
	"log"

	"face-onboarding/cmd"
	"face-onboarding/internal/data/repository"
	"face-onboarding/internal/mailer"
	"face-onboarding/internal/storage"
	"face-onboarding/internal/token"
	"face-onboarding/internal/vision"
	"face-onboarding/internal/wire"
	"face-onboarding/pkg/database"
	"face-onboarding/pkg/utils"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/rekognition"
	"github.com/aws/aws-sdk-go/service/s3"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// AWS session shared by Rekognition and S3
	sess, err := newAWSSession(config.AWS)
	if err != nil {
		logger.Fatal("Failed to create AWS session", zap.Error(err))
	}

	analyzer := vision.NewRekognitionAnalyzer(rekognition.New(sess), logger)
	store := storage.NewS3Gateway(s3.New(sess), config.AWS, logger)
	issuer := token.NewIssuer(config.JWT)
	sender := mailer.NewSMTPSender(config.Email, logger)

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, analyzer, store, issuer, sender, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}

func newAWSSession(config utils.AWSConfig) (*session.Session, error) {
	awsConfig := aws.Config{
		Region: aws.String(config.Region),
	}

	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
	}

	if config.AccessKey != "" && config.SecretKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(config.AccessKey, config.SecretKey, "")
	}

	return session.NewSession(&awsConfig)
}
