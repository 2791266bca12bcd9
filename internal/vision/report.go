package vision

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/rekognition"
)

// BuildReport renders every detected attribute category into the archival
// text report stored alongside the customer record.
func BuildReport(face *rekognition.FaceDetail, username string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "************************ ANALYSIS RESULT FOR %s *************************\n\n", username)

	if face.AgeRange != nil {
		fmt.Fprintf(&b, "Age range: %d-%d\n",
			aws.Int64Value(face.AgeRange.Low), aws.Int64Value(face.AgeRange.High))
	}

	if face.Beard != nil {
		fmt.Fprintf(&b, "Beard: %t; confidence=%g\n",
			aws.BoolValue(face.Beard.Value), aws.Float64Value(face.Beard.Confidence))
	}

	if bb := face.BoundingBox; bb != nil {
		fmt.Fprintf(&b, "BoundingBox: left=%g, top=%g, width=%g, height=%g\n",
			aws.Float64Value(bb.Left), aws.Float64Value(bb.Top),
			aws.Float64Value(bb.Width), aws.Float64Value(bb.Height))
	}

	fmt.Fprintf(&b, "Confidence: %g\n", aws.Float64Value(face.Confidence))

	for _, emotion := range face.Emotions {
		fmt.Fprintf(&b, "Emotion: %s; confidence=%g\n",
			aws.StringValue(emotion.Type), aws.Float64Value(emotion.Confidence))
	}

	if face.Eyeglasses != nil {
		fmt.Fprintf(&b, "Eyeglasses: %t; confidence=%g\n",
			aws.BoolValue(face.Eyeglasses.Value), aws.Float64Value(face.Eyeglasses.Confidence))
	}

	if face.EyesOpen != nil {
		fmt.Fprintf(&b, "EyesOpen: %t; confidence=%g\n",
			aws.BoolValue(face.EyesOpen.Value), aws.Float64Value(face.EyesOpen.Confidence))
	}

	if face.Gender != nil {
		fmt.Fprintf(&b, "Gender: %s; confidence=%g\n",
			aws.StringValue(face.Gender.Value), aws.Float64Value(face.Gender.Confidence))
	}

	for _, lm := range face.Landmarks {
		fmt.Fprintf(&b, "Landmark: %s, x=%g; y=%g\n",
			aws.StringValue(lm.Type), aws.Float64Value(lm.X), aws.Float64Value(lm.Y))
	}

	if face.MouthOpen != nil {
		fmt.Fprintf(&b, "MouthOpen: %t; confidence=%g\n",
			aws.BoolValue(face.MouthOpen.Value), aws.Float64Value(face.MouthOpen.Confidence))
	}

	if face.Mustache != nil {
		fmt.Fprintf(&b, "Mustache: %t; confidence=%g\n",
			aws.BoolValue(face.Mustache.Value), aws.Float64Value(face.Mustache.Confidence))
	}

	if pose := face.Pose; pose != nil {
		fmt.Fprintf(&b, "Pose: pitch=%g; roll=%g; yaw=%g\n",
			aws.Float64Value(pose.Pitch), aws.Float64Value(pose.Roll), aws.Float64Value(pose.Yaw))
	}

	if q := face.Quality; q != nil {
		fmt.Fprintf(&b, "Quality: brightness=%g; sharpness=%g\n",
			aws.Float64Value(q.Brightness), aws.Float64Value(q.Sharpness))
	}

	if face.Smile != nil {
		fmt.Fprintf(&b, "Smile: %t; confidence=%g\n",
			aws.BoolValue(face.Smile.Value), aws.Float64Value(face.Smile.Confidence))
	}

	if face.Sunglasses != nil {
		fmt.Fprintf(&b, "Sunglasses: %t; confidence=%g\n",
			aws.BoolValue(face.Sunglasses.Value), aws.Float64Value(face.Sunglasses.Confidence))
	}

	return b.String()
}
