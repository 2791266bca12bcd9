package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// ==================== UUID ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func GenerateUUIDString() string {
	return uuid.New().String()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// ==================== OBJECT NAMES ====================

// GenerateReportName builds the archival object name for a facial analysis
// report. Format: {username}**analysefaciale**human**{uuid}.txt
func GenerateReportName(username string) string {
	return fmt.Sprintf("%s**analysefaciale**human**%s.txt", username, uuid.New().String())
}

// GeneratePhotoName prefixes the uploaded photo name with the username and a
// random id so repeated uploads never collide.
func GeneratePhotoName(username, imageName string) string {
	return fmt.Sprintf("%s**photo**%s**%s", username, uuid.New().String(), imageName)
}
