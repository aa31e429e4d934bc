package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// ==================== UUID & TOKEN ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(uuidStr))
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// ==================== SLUG ====================

// GenerateUniqueSlug builds a slug from name and appends -1, -2, ... until
// exists reports the candidate as free.
func GenerateUniqueSlug(name string, exists func(candidate string) (bool, error)) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = "movie"
	}

	result := base
	for i := 1; ; i++ {
		taken, err := exists(result)
		if err != nil {
			return "", err
		}
		if !taken {
			return result, nil
		}
		result = fmt.Sprintf("%s-%d", base, i)
	}
}
