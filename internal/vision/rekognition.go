package vision

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/rekognition"
	"github.com/aws/aws-sdk-go/service/rekognition/rekognitioniface"
	"go.uber.org/zap"
)

// ErrNoFaceDetected is returned when the detection service finds no face in
// the submitted image.
var ErrNoFaceDetected = errors.New("no face detected in image")

// FaceAnalysis carries the attributes retained from a detection run: the
// fields persisted on the customer record plus the full archival report.
type FaceAnalysis struct {
	Confidence float64
	Gender     string
	AgeRange   string
	Report     string
}

// Analyzer submits an image to the facial detection service.
type Analyzer interface {
	Analyze(ctx context.Context, username string, image []byte) (*FaceAnalysis, error)
}

type rekognitionAnalyzer struct {
	client rekognitioniface.RekognitionAPI
	log    *zap.Logger
}

func NewRekognitionAnalyzer(client rekognitioniface.RekognitionAPI, log *zap.Logger) Analyzer {
	return &rekognitionAnalyzer{
		client: client,
		log:    log,
	}
}

// Analyze runs DetectFaces with all attribute categories and keeps the first
// detected face. Returns ErrNoFaceDetected when the service reports none.
func (ra *rekognitionAnalyzer) Analyze(ctx context.Context, username string, image []byte) (*FaceAnalysis, error) {
	input := &rekognition.DetectFacesInput{
		Image: &rekognition.Image{
			Bytes: image,
		},
		Attributes: []*string{aws.String(rekognition.AttributeAll)},
	}

	result, err := ra.client.DetectFacesWithContext(ctx, input)
	if err != nil {
		ra.log.Error("DetectFaces call failed",
			zap.Error(err),
			zap.String("username", username),
		)
		return nil, fmt.Errorf("detect faces: %w", err)
	}

	if len(result.FaceDetails) == 0 {
		ra.log.Warn("No face detected", zap.String("username", username))
		return nil, ErrNoFaceDetected
	}

	// First result wins when multiple faces are present
	face := result.FaceDetails[0]

	analysis := &FaceAnalysis{
		Confidence: aws.Float64Value(face.Confidence),
		Report:     BuildReport(face, username),
	}

	if face.Gender != nil {
		analysis.Gender = aws.StringValue(face.Gender.Value)
	}
	if face.AgeRange != nil {
		analysis.AgeRange = fmt.Sprintf("%d-%d",
			aws.Int64Value(face.AgeRange.Low), aws.Int64Value(face.AgeRange.High))
	}

	ra.log.Info("Face analysis completed",
		zap.String("username", username),
		zap.Float64("confidence", analysis.Confidence),
		zap.String("gender", analysis.Gender),
		zap.String("age_range", analysis.AgeRange),
	)

	return analysis, nil
}
