package newsroom

import (
	"context"
	"strings"

	"github.com/google/uuid"

	apperrors "localpress-ai-api/pkg/errors"
)

// SlugChecker slug 占用查询
type SlugChecker interface {
	SlugExists(ctx context.Context, tenantID, slug string) (bool, error)
}

// DefaultSlugMaxAttempts slug 冲突重试上限
const DefaultSlugMaxAttempts = 5

// ResolveSlug 解决 slug 冲突
// 精确匹配查询，冲突则追加随机短后缀重试，达到上限后整单失败，
// 宁可报错也不冒静默覆盖的风险。
func ResolveSlug(ctx context.Context, checker SlugChecker, tenantID, candidate string, maxAttempts int) (string, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultSlugMaxAttempts
	}

	slug := candidate
	for attempt := 0; attempt < maxAttempts; attempt++ {
		exists, err := checker.SlugExists(ctx, tenantID, slug)
		if err != nil {
			return "", apperrors.Wrap(err, apperrors.CodeDatabaseError, "slug existence check failed")
		}
		if !exists {
			return slug, nil
		}
		slug = candidate + "-" + shortSuffix()
	}

	return "", apperrors.ErrSlugExhausted
}

func shortSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
}
